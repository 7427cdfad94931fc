package tccexport

import (
	"context"
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"docx", FormatDOCX, false},
		{"PDF", FormatPDF, false},
		{" md ", FormatMarkdown, false},
		{"markdown", FormatMarkdown, false},
		{"odt", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("ParseFormat(%q) error = %v, want ErrUnknownFormat", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestFormat_ContentType(t *testing.T) {
	t.Parallel()

	if got := FormatPDF.ContentType(); got != "application/pdf" {
		t.Errorf("pdf content type = %q", got)
	}
	if got := Format("x").ContentType(); got != "application/octet-stream" {
		t.Errorf("unknown content type = %q", got)
	}
}

func TestManuscript_Sorted(t *testing.T) {
	t.Parallel()

	m := Manuscript{Chapters: []Chapter{
		{ID: "a", Order: 3},
		{ID: "b", Order: 1},
		{ID: "c", Order: 3},
		{ID: "d", Order: -2},
	}}
	sorted := m.Sorted()

	var got string
	for _, ch := range sorted.Chapters {
		got += ch.ID
	}
	if got != "dbac" {
		t.Errorf("sorted order = %s, want dbac", got)
	}
	if m.Chapters[0].ID != "a" {
		t.Error("Sorted modified the receiver")
	}
}

func TestManuscript_Clone(t *testing.T) {
	t.Parallel()

	m := Manuscript{Title: "t", Chapters: []Chapter{{ID: "a", ContentMarkup: "<p>x</p>"}}}
	c := m.Clone()
	c.Chapters[0].ContentMarkup = "changed"
	c.Title = "other"

	if m.Chapters[0].ContentMarkup != "<p>x</p>" || m.Title != "t" {
		t.Error("Clone shares state with the original")
	}
}

func TestWordCount(t *testing.T) {
	t.Parallel()

	m := Manuscript{Chapters: []Chapter{
		{ContentMarkup: "<p>um dois <b>três</b></p>"},
		{ContentMarkup: "<ul><li>quatro</li><li>cinco</li></ul>"},
		{ContentMarkup: ""},
	}}
	if got := m.Chapters[0].WordCount(); got != 3 {
		t.Errorf("chapter word count = %d, want 3", got)
	}
	if got := m.WordCount(); got != 5 {
		t.Errorf("manuscript word count = %d, want 5", got)
	}
}

func TestStaticSource_Snapshot(t *testing.T) {
	t.Parallel()

	src := StaticSource(Manuscript{Title: "t", Chapters: []Chapter{{ID: "a"}}})
	m, err := src.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	m.Chapters[0].ID = "changed"
	if src.Chapters[0].ID != "a" {
		t.Error("snapshot shares chapters with the source")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Snapshot(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Snapshot() with cancelled context = %v", err)
	}
}
