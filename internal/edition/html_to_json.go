package edition

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLToDocument builds a Document from an HTML transcript: every <p>
// element becomes one text body entry, in document order.
func HTMLToDocument(r io.Reader, meta Metadata) (*Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var body []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			body = append(body, elementText(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return &Document{Metadata: meta, TextBody: body}, nil
}

// elementText returns the trimmed text content of an element, inline markup
// included.
func elementText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
