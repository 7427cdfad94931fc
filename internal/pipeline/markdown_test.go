package pipeline

import (
	"strings"
	"testing"
)

func TestMarkdownWriter_ToMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"heading", `<h2>Contexto</h2>`, []string{"## Contexto"}},
		{"bold", `<p>Texto <strong>forte</strong></p>`, []string{"Texto **forte**"}},
		{"italic", `<p><em>leve</em></p>`, []string{"*leve*"}},
		{"strike", `<p><s>velho</s></p>`, []string{"~~velho~~"}},
		{"bullet list", `<ul><li>a</li><li>b</li></ul>`, []string{"- a", "- b"}},
		{"ordered list", `<ol><li>um</li><li>dois</li></ol>`, []string{"1. um", "2. dois"}},
		{"blockquote", `<blockquote>citação</blockquote>`, []string{"> citação"}},
	}

	w := NewMarkdownWriter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := w.ToMarkdown(tt.input)
			if err != nil {
				t.Fatalf("ToMarkdown: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("ToMarkdown(%q) = %q, want it to contain %q", tt.input, got, want)
				}
			}
		})
	}
}

func TestMarkdownWriter_Empty(t *testing.T) {
	t.Parallel()

	got, err := NewMarkdownWriter().ToMarkdown("")
	if err != nil {
		t.Fatalf("ToMarkdown: %v", err)
	}
	if got != "" {
		t.Errorf("ToMarkdown(\"\") = %q, want empty", got)
	}
}
