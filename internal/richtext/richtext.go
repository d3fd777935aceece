// Package richtext converts between the formats entry content moves
// through: markdown (templates, email ingestion) to HTML for storage, and
// HTML to plain text for search and the sentiment heuristic.
package richtext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
)

var markdown = goldmark.New()

// RenderMarkdown converts markdown to the rich-text HTML format entries
// are stored in.
func RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// ExtractText strips HTML markup from rich-text content, returning the
// visible text with tags removed. Malformed HTML degrades to the raw
// input rather than failing; text matching must never throw.
func ExtractText(content string) string {
	if content == "" {
		return ""
	}
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return content
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			case "p", "div", "br", "li", "h1", "h2", "h3", "h4", "h5", "h6":
				b.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(b.String()), " ")
}
