package query

import (
	"strings"

	"github.com/Mohameddacar/xasuusqor/internal/models"
	"github.com/Mohameddacar/xasuusqor/internal/richtext"
)

// SentimentLabel classifies a set of entries.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// Fixed word lists for the naive sentiment heuristic. This is a cheap
// substring count, deliberately separate from the annotation service's
// LLM-based emotion detection: different confidence, different cost.
var (
	positiveWords = []string{"happy", "great", "amazing", "wonderful", "excited", "grateful", "joy", "love"}
	negativeWords = []string{"sad", "difficult", "hard", "struggle", "worried", "anxious", "stress", "tired"}
)

// SentimentResult carries the classification and the raw counts behind it.
type SentimentResult struct {
	Label         SentimentLabel `json:"label"`
	PositiveCount int            `json:"positive_count"`
	NegativeCount int            `json:"negative_count"`
}

// Sentiment classifies entries by counting positive-list vs negative-list
// word occurrences in entry content (case-insensitive substring presence,
// counted once per entry per word, not tokenized). Ties and empty input
// classify as neutral.
func Sentiment(entries []*models.JournalEntry) SentimentResult {
	var positive, negative int
	for _, e := range entries {
		content := strings.ToLower(richtext.ExtractText(e.Content))
		for _, word := range positiveWords {
			if strings.Contains(content, word) {
				positive++
			}
		}
		for _, word := range negativeWords {
			if strings.Contains(content, word) {
				negative++
			}
		}
	}

	label := SentimentNeutral
	switch {
	case positive > negative:
		label = SentimentPositive
	case negative > positive:
		label = SentimentNegative
	}
	return SentimentResult{Label: label, PositiveCount: positive, NegativeCount: negative}
}

// Insights is the aggregate view backing the insights surface.
type Insights struct {
	TotalEntries int                 `json:"total_entries"`
	Sentiment    SentimentResult     `json:"sentiment"`
	Summary      string              `json:"summary"`
	Themes       []string            `json:"themes"`
	Emotions     []string            `json:"emotions"`
	MoodCounts   map[models.Mood]int `json:"mood_counts"`
}

// BuildInsights composes sentiment, top themes and emotions, and the mood
// distribution over a set of entries. rangeLabel names the window for the
// summary text ("week", "month", "year").
func BuildInsights(entries []*models.JournalEntry, rangeLabel string) Insights {
	if len(entries) == 0 {
		return Insights{
			Sentiment: SentimentResult{Label: SentimentNeutral},
			Summary:   "No entries found for the selected time period.",
			Themes:    []string{},
			Emotions:  []string{},
		}
	}

	sentiment := Sentiment(entries)
	themes := AllTags(entries)
	if len(themes) > 3 {
		themes = themes[:3]
	}
	emotions := AllEmotions(entries)
	if len(emotions) > 5 {
		emotions = emotions[:5]
	}

	return Insights{
		TotalEntries: len(entries),
		Sentiment:    sentiment,
		Summary:      sentimentSummary(sentiment.Label, rangeLabel),
		Themes:       themes,
		Emotions:     emotions,
		MoodCounts:   MoodCounts(entries),
	}
}

func sentimentSummary(label SentimentLabel, rangeLabel string) string {
	switch label {
	case SentimentPositive:
		return "This " + rangeLabel + " has shown a generally positive sentiment, with a focus on happiness and gratitude for family and health. The entries suggest an overall upbeat mood, albeit with limited detail due to the brevity of entries."
	case SentimentNegative:
		return "This " + rangeLabel + " has shown some challenges and difficulties. The entries reflect a more contemplative mood with various concerns and struggles being processed."
	default:
		return "This " + rangeLabel + " has shown a balanced mix of experiences and emotions. The entries reflect a thoughtful approach to daily life with both positive and challenging moments."
	}
}
