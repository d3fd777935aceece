package annotate

import "fmt"

// Prompts for the free-text flows. Kept verbatim stable so simulated and
// live providers behave comparably in tests.
const (
	// CaptionPrompt describes an attached image in one sentence.
	CaptionPrompt = "Describe this image in one concise, descriptive sentence (10-15 words). Focus on the main subject, setting, and mood."

	// TranscriptionPrompt transcribes an attached audio file.
	TranscriptionPrompt = "Transcribe the audio file accurately. Return only the transcribed text, nothing else."

	// OCRPrompt extracts readable text from an attached image.
	OCRPrompt = "Extract all readable text from this image. Return only the extracted text, preserving line breaks. If there is no text, return an empty response."
)

// EntryAnalysisPrompt builds the structured analysis prompt for an entry.
func EntryAnalysisPrompt(title, content string) string {
	return fmt.Sprintf(`Analyze this journal entry:

Title: %s
Content: %s

Return JSON with:
1. suggested_tags: Array of 5-8 relevant tags (lowercase, single words or short phrases)
2. summary: If content is over 500 characters, provide a 2-3 sentence summary. Otherwise null.
3. emotions: Array of detected emotions (e.g., joy, stress, sadness, hope, anxiety, gratitude, excitement, worry, peace, frustration, love, fear)
4. key_themes: Array of 2-3 main themes discussed

Be accurate and insightful.`, title, content)
}

// EntryAnalysisRequest builds the full structured analysis request.
func EntryAnalysisRequest(title, content string) Request {
	return Request{
		Prompt:         EntryAnalysisPrompt(title, content),
		ResponseSchema: EntryAnalysisSchema,
	}
}
