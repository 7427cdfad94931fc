package markup

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   []Block
	}{
		{
			name:   "plain paragraph defaults to justified",
			markup: "<p>Hello</p>",
			want: []Block{
				{Kind: KindParagraph, Runs: []Run{{Text: "Hello"}}, Align: AlignJustified},
			},
		},
		{
			name:   "heading forces bold on every run",
			markup: "<h2>Title <i>x</i></h2>",
			want: []Block{
				{Kind: KindHeading, Level: 2, Runs: []Run{
					{Text: "Title ", Bold: true},
					{Text: "x", Bold: true, Italic: true},
				}},
			},
		},
		{
			name:   "inline formatting from immediate children",
			markup: "<p>a<b>b</b><strong>c</strong><i>d</i><em>e</em><s>f</s><strike>g</strike><u>h</u><span>i</span></p>",
			want: []Block{
				{Kind: KindParagraph, Runs: []Run{
					{Text: "a"},
					{Text: "b", Bold: true},
					{Text: "c", Bold: true},
					{Text: "d", Italic: true},
					{Text: "e", Italic: true},
					{Text: "f", Strike: true},
					{Text: "g", Strike: true},
					{Text: "h", Underline: true},
					{Text: "i"},
				}},
			},
		},
		{
			name:   "nested formatting keeps only the outer tag",
			markup: "<p><b><i>x</i></b></p>",
			want: []Block{
				{Kind: KindParagraph, Runs: []Run{{Text: "x", Bold: true}}},
			},
		},
		{
			name:   "unordered list flattens items",
			markup: "<ul><li>A</li><li>B</li></ul>",
			want: []Block{
				{Kind: KindUnorderedList, Items: []string{"A", "B"}},
			},
		},
		{
			name:   "ordered list drops item formatting",
			markup: "<ol><li><b>x</b> y</li><li>z</li></ol>",
			want: []Block{
				{Kind: KindOrderedList, Items: []string{"x y", "z"}},
			},
		},
		{
			name:   "blockquote collapses to one italic run",
			markup: "<blockquote>Some <b>text</b></blockquote>",
			want: []Block{
				{Kind: KindBlockquote, Runs: []Run{{Text: "Some text", Italic: true}}},
			},
		},
		{
			name:   "document order is preserved",
			markup: "<h1>A</h1><p>B</p><ul><li>C</li></ul><h3>D</h3>",
			want: []Block{
				{Kind: KindHeading, Level: 1, Runs: []Run{{Text: "A", Bold: true}}},
				{Kind: KindParagraph, Runs: []Run{{Text: "B"}}},
				{Kind: KindUnorderedList, Items: []string{"C"}},
				{Kind: KindHeading, Level: 3, Runs: []Run{{Text: "D", Bold: true}}},
			},
		},
		{
			name:   "unclosed paragraphs are repaired",
			markup: "<p>one<p>two",
			want: []Block{
				{Kind: KindParagraph, Runs: []Run{{Text: "one"}}},
				{Kind: KindParagraph, Runs: []Run{{Text: "two"}}},
			},
		},
		{
			name:   "unknown element becomes paragraph",
			markup: "<div>x</div>",
			want: []Block{
				{Kind: KindParagraph, Runs: []Run{{Text: "x"}}},
			},
		},
		{
			name:   "h5 is not a supported heading",
			markup: "<h5>x</h5>",
			want: []Block{
				{Kind: KindParagraph, Runs: []Run{{Text: "x"}}},
			},
		},
		{
			name:   "stray root text becomes paragraph",
			markup: "hello <p>x</p>",
			want: []Block{
				{Kind: KindParagraph, Runs: []Run{{Text: "hello"}}},
				{Kind: KindParagraph, Runs: []Run{{Text: "x"}}},
			},
		},
		{
			name:   "root inline markup joins the stray text",
			markup: "hello <b>x</b>",
			want: []Block{
				{Kind: KindParagraph, Runs: []Run{{Text: "hello "}, {Text: "x", Bold: true}}},
			},
		},
		{
			name:   "loose runs end at a block element",
			markup: "<i>a</i> <span>b</span><p>c</p><u>d</u>",
			want: []Block{
				{Kind: KindParagraph, Runs: []Run{{Text: "a", Italic: true}, {Text: " "}, {Text: "b"}}},
				{Kind: KindParagraph, Runs: []Run{{Text: "c"}}},
				{Kind: KindParagraph, Runs: []Run{{Text: "d", Underline: true}}},
			},
		},
		{
			name:   "root line break splits loose text",
			markup: "um<br>dois",
			want: []Block{
				{Kind: KindParagraph, Runs: []Run{{Text: "um"}}},
				{Kind: KindParagraph, Runs: []Run{{Text: "dois"}}},
			},
		},
		{
			name:   "line breaks between blocks are ignored",
			markup: "<p>a</p><br/><br/><p>b</p>",
			want: []Block{
				{Kind: KindParagraph, Runs: []Run{{Text: "a"}}},
				{Kind: KindParagraph, Runs: []Run{{Text: "b"}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Parse(tt.markup)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q)\n got  %+v\n want %+v", tt.markup, got, tt.want)
			}
		})
	}
}

func TestParse_SkipsEmptyBlocks(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"   ",
		"<p></p>",
		"<p><br></p>",
		"<p>   </p>",
		"<h1></h1>",
		"<blockquote> </blockquote>",
		"<ul></ul>",
		"<!-- comment -->",
	}

	for _, in := range inputs {
		if got := Parse(in); len(got) != 0 {
			t.Errorf("Parse(%q) = %+v, want no blocks", in, got)
		}
	}
}

func TestParse_Alignment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   Alignment
	}{
		{"no signal", "<p>x</p>", AlignJustified},
		{"style center", `<p style="text-align: center">x</p>`, AlignCenter},
		{"style right uppercase", `<p style="TEXT-ALIGN:RIGHT;">x</p>`, AlignRight},
		{"style left among others", `<p style="color: red; text-align: left">x</p>`, AlignLeft},
		{"style justify", `<p style="text-align: justify">x</p>`, AlignJustified},
		{"legacy align", `<p align="center">x</p>`, AlignCenter},
		{"style wins over attribute", `<p style="text-align: left" align="center">x</p>`, AlignLeft},
		{"unknown value falls back to attribute", `<p style="text-align: inherit" align="right">x</p>`, AlignRight},
		{"unknown value defaults to justified", `<p align="middle">x</p>`, AlignJustified},
		{"heading alignment", `<h2 style="text-align:center">x</h2>`, AlignCenter},
		{"blockquote alignment", `<blockquote align="right">x</blockquote>`, AlignRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			blocks := Parse(tt.markup)
			if len(blocks) != 1 {
				t.Fatalf("Parse(%q) returned %d blocks, want 1", tt.markup, len(blocks))
			}
			if blocks[0].Align != tt.want {
				t.Errorf("Parse(%q) align = %v, want %v", tt.markup, blocks[0].Align, tt.want)
			}
		})
	}
}

func TestParse_HeadingRunsAlwaysBold(t *testing.T) {
	t.Parallel()

	for _, level := range []string{"1", "2", "3", "4"} {
		markup := "<h" + level + ">plain <i>it</i> <u>un</u> <s>st</s></h" + level + ">"
		blocks := Parse(markup)
		if len(blocks) != 1 || blocks[0].Kind != KindHeading {
			t.Fatalf("Parse(%q) = %+v, want one heading", markup, blocks)
		}
		for i, r := range blocks[0].Runs {
			if !r.Bold {
				t.Errorf("h%s run %d (%q) not bold", level, i, r.Text)
			}
		}
	}
}

func TestParser_ReportsDegradations(t *testing.T) {
	t.Parallel()

	var got []Degradation
	p := NewParser(WithDegradedHandler(func(d Degradation) {
		got = append(got, d)
	}))

	blocks := p.Parse("loose text<div>boxed</div><p>fine</p>")
	if len(blocks) != 3 {
		t.Fatalf("Parse() returned %d blocks, want 3", len(blocks))
	}
	if len(got) != 2 {
		t.Fatalf("got %d degradations, want 2: %+v", len(got), got)
	}
	if !strings.Contains(got[0].Reason, "stray text") {
		t.Errorf("first degradation reason = %q, want stray text", got[0].Reason)
	}
	if !strings.Contains(got[1].Reason, "<div>") {
		t.Errorf("second degradation reason = %q, want <div>", got[1].Reason)
	}
}

func TestParser_TruncatesLongSnippets(t *testing.T) {
	t.Parallel()

	var got Degradation
	p := NewParser(WithDegradedHandler(func(d Degradation) { got = d }))
	p.Parse(strings.Repeat("á", 200))

	if n := len([]rune(got.Snippet)); n != maxSnippetLength+3 {
		t.Errorf("snippet length = %d runes, want %d", n, maxSnippetLength+3)
	}
}

func TestBlock_Text(t *testing.T) {
	t.Parallel()

	b := Block{Kind: KindParagraph, Runs: []Run{{Text: "a "}, {Text: "b", Bold: true}}}
	if got := b.Text(); got != "a b" {
		t.Errorf("Text() = %q, want %q", got, "a b")
	}

	l := Block{Kind: KindOrderedList, Items: []string{"x", "y"}}
	if got := l.Text(); got != "x\ny" {
		t.Errorf("Text() = %q, want %q", got, "x\ny")
	}
}
