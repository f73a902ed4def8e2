package scrape

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ExtractText parses a saved Wikisource page and returns the plain text of
// its main content division (class mw-parser-output), one trimmed text node
// per line, blank nodes dropped.
func ExtractText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	main := findMainContent(doc)
	if main == nil {
		return "", ErrMainContentNotFound
	}

	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				lines = append(lines, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(main)

	return strings.Join(lines, "\n"), nil
}

// findMainContent locates the first div carrying the mw-parser-output class.
func findMainContent(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "div" {
		for _, attr := range n.Attr {
			if attr.Key == "class" && hasClass(attr.Val, "mw-parser-output") {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findMainContent(c); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(classAttr, class string) bool {
	for _, c := range strings.Fields(classAttr) {
		if c == class {
			return true
		}
	}
	return false
}
