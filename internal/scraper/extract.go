package scraper

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

const (
	minParagraphChars = 20
	maxParagraphs     = 50
)

// ExtractParagraphs pulls the trimmed text of every <p> element longer than
// 20 characters, in document order, capped at 50 paragraphs so a huge page
// cannot overwhelm the classifier. An unparseable or paragraph-free page
// yields an empty slice, which the pipeline treats as a no-content result.
func ExtractParagraphs(page string) []string {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil
	}

	var paragraphs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			text := strings.TrimSpace(nodeText(n))
			if utf8.RuneCountInString(text) > minParagraphChars {
				paragraphs = append(paragraphs, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(paragraphs) > maxParagraphs {
		paragraphs = paragraphs[:maxParagraphs]
	}

	return paragraphs
}

func nodeText(n *html.Node) string {
	var buf strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)

	return buf.String()
}
