package archive

import (
	"strings"

	"golang.org/x/net/html"
)

// PageSummary is the readable content of a mirrored HTML page, used when
// drafting a post from an external source.
type PageSummary struct {
	Title string
	Text  string
}

// ExtractPage parses HTML and pulls out the title and visible text.
func ExtractPage(htmlContent string) (*PageSummary, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	summary := &PageSummary{}

	var walk func(*html.Node, bool)
	walk = func(n *html.Node, skip bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if summary.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					summary.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "script", "style", "noscript":
				skip = true
			}
		}

		if n.Type == html.TextNode && !skip {
			if text := strings.TrimSpace(n.Data); text != "" {
				if summary.Text != "" {
					summary.Text += " "
				}
				summary.Text += text
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, skip)
		}
	}

	walk(doc, false)

	return summary, nil
}

// Truncate bounds text to at most n runes, cutting at a word boundary.
func Truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	cut := string(runes[:n])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "…"
}
