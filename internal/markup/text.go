package markup

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// lineBreaking lists elements that start a new line in plain text.
var lineBreaking = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Li: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Blockquote: true, atom.Pre: true,
	atom.Tr: true, atom.Table: true, atom.Hr: true,
}

// PlainText strips all markup and returns one line per block, list item or
// line break. Whitespace inside a line is collapsed to single spaces and
// blank lines are dropped.
func PlainText(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}

	nodes, err := parseFragment(markup)
	if err != nil {
		return collapseSpace(markup)
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			if lineBreaking[n.DataAtom] {
				sb.WriteByte('\n')
			}
		default:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if lineBreaking[n.DataAtom] {
			sb.WriteByte('\n')
		}
	}
	for _, n := range nodes {
		walk(n)
	}

	lines := strings.Split(sb.String(), "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = collapseSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// collapseSpace trims s and replaces every whitespace run with one space.
func collapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// WordCount returns the number of whitespace-separated words in the plain
// text of markup.
func WordCount(markup string) int {
	return len(strings.Fields(PlainText(markup)))
}
