// Package richtext tests for markdown rendering and HTML text extraction.
package richtext

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("# Heading\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}
	if !strings.Contains(html, "<h1") {
		t.Errorf("missing heading in output: %q", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("missing bold span in output: %q", html)
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	html, err := RenderMarkdown("")
	if err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}
	if strings.TrimSpace(html) != "" {
		t.Errorf("empty input should render to empty output, got %q", html)
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain text passes through", "just words", "just words"},
		{"strips tags", "<p>Hello <b>world</b></p>", "Hello world"},
		{"block elements separate words", "<p>one</p><p>two</p>", "one two"},
		{"inline split stays joined", "<p>bea</p>", "bea"},
		{"skips script", "<p>text</p><script>alert(1)</script>", "text"},
		{"collapses whitespace", "<p>  a   b  </p>", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractText(tt.in); got != tt.want {
				t.Errorf("ExtractText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractTextInlineWordNotSplit(t *testing.T) {
	got := ExtractText("<p>We reached the <b>bea</b>ch at noon.</p>")
	if !strings.Contains(got, "beach") {
		t.Errorf("inline markup must not split words: %q", got)
	}
}
