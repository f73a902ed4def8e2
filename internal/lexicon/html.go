package lexicon

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ParseTables collects the rows of every <table> in the document, tables in
// the order they appear and rows within a table in document order. Each cell
// is kept as raw inner markup; tag handling is left to the extractor.
func ParseTables(r io.Reader) ([]Row, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var rows []Row
	for _, table := range findAll(doc, "table") {
		for _, tr := range findAll(table, "tr") {
			var cells []string
			for _, td := range findAll(tr, "td") {
				cells = append(cells, innerHTML(td))
			}
			rows = append(rows, Row{Cells: cells})
		}
	}
	return rows, nil
}

// findAll returns all descendant elements with the given tag name, in
// document order. The root itself is not considered. When searching for
// rows or cells, descent stops at a nested <table>: its rows belong to that
// table's own entry in the table list, not to the enclosing one.
func findAll(n *html.Node, tag string) []*html.Node {
	var found []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			if c.Data == tag {
				found = append(found, c)
			}
			if c.Data == "table" && tag != "table" {
				continue
			}
		}
		found = append(found, findAll(c, tag)...)
	}
	return found
}

func innerHTML(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		// Render errors only occur for unrenderable node types, which
		// cannot appear under a parsed element node.
		_ = html.Render(&sb, c)
	}
	return sb.String()
}
