package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tagAliases maps elements the editor never produces onto the ones it does.
var tagAliases = map[atom.Atom]atom.Atom{
	atom.Del: atom.S,
	atom.Ins: atom.U,
	atom.H5:  atom.H4,
	atom.H6:  atom.H4,
}

// containers become paragraphs when they hold no block of their own.
var containers = map[atom.Atom]bool{
	atom.Div:     true,
	atom.Section: true,
	atom.Article: true,
}

var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Blockquote: true,
	atom.Table: true, atom.Pre: true, atom.Hr: true,
}

// NormalizeMarkup reshapes imported HTML for the markup parser. A full
// document is reduced to its body content, tag aliases are renamed
// (del to s, ins to u, h5 and h6 to h4) and leaf containers such as a
// div holding only text become paragraphs.
func NormalizeMarkup(content string) (string, error) {
	root, err := parseHTML(content)
	if err != nil {
		return "", err
	}
	normalizeNode(root)
	return renderChildren(root)
}

// parseHTML parses HTML content and returns a node whose children are the
// body content, for full documents and fragments alike.
func parseHTML(content string) (*html.Node, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	// Full document: starts with <!DOCTYPE or <html
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		if err != nil {
			return nil, err
		}
		if body := findBody(doc); body != nil {
			return body, nil
		}
		return doc, nil
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}

	// Wrap nodes in a container for uniform traversal
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

// renderChildren renders the children of n, without n itself.
func renderChildren(n *html.Node) (string, error) {
	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func normalizeNode(n *html.Node) {
	if n.Type == html.ElementNode {
		if to, ok := tagAliases[n.DataAtom]; ok {
			rename(n, to)
		} else if containers[n.DataAtom] && !hasBlockChild(n) {
			rename(n, atom.P)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		normalizeNode(c)
	}
}

func rename(n *html.Node, to atom.Atom) {
	n.DataAtom = to
	n.Data = to.String()
}

func hasBlockChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && blockElements[c.DataAtom] {
			return true
		}
	}
	return false
}
