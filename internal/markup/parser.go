package markup

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Degradation describes a fragment the parser could not map onto a
// supported block and handled best-effort instead.
type Degradation struct {
	Reason  string
	Snippet string
}

// maxSnippetLength bounds the text copied into a Degradation.
const maxSnippetLength = 80

// Option configures a Parser.
type Option func(*Parser)

// WithDegradedHandler registers fn to be called for every fragment that
// was handled best-effort. The parser never fails; this is the only way
// degradations become visible.
func WithDegradedHandler(fn func(Degradation)) Option {
	return func(p *Parser) {
		p.onDegraded = fn
	}
}

// Parser turns editor markup into blocks. The zero value is ready to use.
type Parser struct {
	onDegraded func(Degradation)
}

// NewParser creates a Parser with the given options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses markup with a default Parser.
func Parse(markup string) []Block {
	return (&Parser{}).Parse(markup)
}

// Parse returns the blocks of markup in document order. Malformed markup is
// repaired by the HTML5 tree builder; nothing is ever returned as an error.
func (p *Parser) Parse(markup string) []Block {
	if strings.TrimSpace(markup) == "" {
		return nil
	}

	nodes, err := parseFragment(markup)
	if err != nil {
		p.degraded("unparseable markup treated as plain paragraph", markup)
		return []Block{{Kind: KindParagraph, Runs: []Run{{Text: markup}}}}
	}

	blocks := make([]Block, 0, len(nodes))
	var loose []*html.Node
	flush := func() {
		if b, ok := p.looseBlock(loose); ok {
			blocks = append(blocks, b)
		}
		loose = loose[:0]
	}
	for _, n := range nodes {
		if isInline(n) {
			loose = append(loose, n)
			continue
		}
		flush()
		if n.Type == html.ElementNode {
			if b, ok := p.block(n); ok {
				blocks = append(blocks, b)
			}
		}
	}
	flush()
	return blocks
}

// isInline reports whether a root node belongs to a run of text that the
// editor left outside any block element.
func isInline(n *html.Node) bool {
	switch n.Type {
	case html.TextNode:
		return true
	case html.ElementNode:
		switch lookupTag(n) {
		case tagBold, tagStrong, tagItalic, tagEmphasis, tagStrike, tagStrikeLegacy, tagUnderline:
			return true
		case tagUnknown:
			return inlineAtoms[n.DataAtom]
		}
	}
	return false
}

// inlineAtoms are unsupported phrasing elements kept in a loose paragraph
// as plain runs.
var inlineAtoms = map[atom.Atom]bool{
	atom.Span: true,
	atom.A:    true,
	atom.Code: true,
	atom.Mark: true,
	atom.Sub:  true,
	atom.Sup:  true,
}

// looseBlock wraps consecutive root text and inline elements into one
// paragraph, one run per node, trimmed at both ends.
func (p *Parser) looseBlock(nodes []*html.Node) (Block, bool) {
	var runs []Run
	var sb strings.Builder
	for _, n := range nodes {
		if r, ok := childRun(n); ok {
			runs = append(runs, r)
			sb.WriteString(r.Text)
		}
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return Block{}, false
	}
	p.degraded("stray text at root treated as paragraph", text)

	runs[0].Text = strings.TrimLeftFunc(runs[0].Text, unicode.IsSpace)
	last := len(runs) - 1
	runs[last].Text = strings.TrimRightFunc(runs[last].Text, unicode.IsSpace)

	kept := runs[:0]
	for _, r := range runs {
		if r.Text != "" {
			kept = append(kept, r)
		}
	}
	return Block{Kind: KindParagraph, Runs: kept, Align: AlignJustified}, true
}

// parseFragment parses markup as the children of a <body> element, which
// mirrors how the editor surface interprets its content.
func parseFragment(markup string) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	return html.ParseFragment(strings.NewReader(markup), body)
}

// block maps one top-level element onto a Block. It returns false when the
// element carries nothing worth emitting.
func (p *Parser) block(n *html.Node) (Block, bool) {
	t := lookupTag(n)
	switch t {
	case tagUnorderedList, tagOrderedList:
		return listBlock(n, t)
	case tagBlockquote:
		return quoteBlock(n)
	case tagH1, tagH2, tagH3, tagH4:
		return runBlock(n, KindHeading, t.headingLevel())
	case tagParagraph:
		return runBlock(n, KindParagraph, 0)
	case tagBreak:
		return Block{}, false
	default:
		p.degraded("unsupported element <"+n.Data+"> treated as paragraph", textContent(n))
		return runBlock(n, KindParagraph, 0)
	}
}

// listBlock flattens every element child of a list into one plain item.
func listBlock(n *html.Node, t tag) (Block, bool) {
	kind := KindUnorderedList
	if t == tagOrderedList {
		kind = KindOrderedList
	}

	var items []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		items = append(items, textContent(c))
	}
	if len(items) == 0 {
		return Block{}, false
	}
	return Block{Kind: kind, Items: items}, true
}

// quoteBlock collapses a blockquote into one italic run.
func quoteBlock(n *html.Node) (Block, bool) {
	text := textContent(n)
	if strings.TrimSpace(text) == "" {
		return Block{}, false
	}
	return Block{
		Kind:  KindBlockquote,
		Runs:  []Run{{Text: text, Italic: true}},
		Align: resolveAlignment(n),
	}, true
}

// runBlock builds a paragraph or heading with one run per immediate child.
func runBlock(n *html.Node, kind Kind, level int) (Block, bool) {
	if strings.TrimSpace(textContent(n)) == "" {
		return Block{}, false
	}

	heading := kind == KindHeading
	var runs []Run
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r, ok := childRun(c)
		if !ok {
			continue
		}
		if heading {
			r.Bold = true
		}
		runs = append(runs, r)
	}
	if len(runs) == 0 {
		return Block{}, false
	}

	return Block{
		Kind:  kind,
		Level: level,
		Runs:  runs,
		Align: resolveAlignment(n),
	}, true
}

// childRun derives a run from an immediate child. Formatting comes from the
// child's own tag only; deeper nesting is flattened into its text.
func childRun(c *html.Node) (Run, bool) {
	switch c.Type {
	case html.TextNode:
		if c.Data == "" {
			return Run{}, false
		}
		return Run{Text: c.Data}, true
	case html.ElementNode:
		text := textContent(c)
		if text == "" {
			return Run{}, false
		}
		r := Run{Text: text}
		switch lookupTag(c) {
		case tagBold, tagStrong:
			r.Bold = true
		case tagItalic, tagEmphasis:
			r.Italic = true
		case tagStrike, tagStrikeLegacy:
			r.Strike = true
		case tagUnderline:
			r.Underline = true
		}
		return r, true
	}
	return Run{}, false
}

// textContent concatenates every descendant text node, like the DOM's
// textContent.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				sb.WriteString(c.Data)
			case html.ElementNode:
				walk(c)
			}
		}
	}
	walk(n)
	return sb.String()
}

// resolveAlignment reads the inline text-align style, then the legacy align
// attribute. Anything absent or unrecognized resolves to justified.
func resolveAlignment(n *html.Node) Alignment {
	var style, align string
	for _, a := range n.Attr {
		switch strings.ToLower(a.Key) {
		case "style":
			style = a.Val
		case "align":
			align = a.Val
		}
	}

	if v := styleProperty(style, "text-align"); v != "" {
		if a, ok := parseAlignment(v); ok {
			return a
		}
	}
	if a, ok := parseAlignment(align); ok {
		return a
	}
	return AlignJustified
}

// styleProperty extracts one property value from an inline style attribute.
func styleProperty(style, name string) string {
	for _, decl := range strings.Split(style, ";") {
		key, val, ok := strings.Cut(decl, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), name) {
			continue
		}
		val = strings.TrimSpace(val)
		val = strings.TrimSpace(strings.TrimSuffix(val, "!important"))
		return val
	}
	return ""
}

// parseAlignment maps a CSS text-align keyword onto an Alignment.
func parseAlignment(v string) (Alignment, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "left", "start":
		return AlignLeft, true
	case "center":
		return AlignCenter, true
	case "right", "end":
		return AlignRight, true
	case "justify":
		return AlignJustified, true
	}
	return AlignJustified, false
}

func (p *Parser) degraded(reason, snippet string) {
	if p.onDegraded == nil {
		return
	}
	snippet = strings.TrimSpace(snippet)
	if r := []rune(snippet); len(r) > maxSnippetLength {
		snippet = string(r[:maxSnippetLength]) + "..."
	}
	p.onDegraded(Degradation{Reason: reason, Snippet: snippet})
}
