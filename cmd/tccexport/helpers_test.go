package main

// Notes:
// - Test infrastructure shared by the command tests: an isolated
//   Environment with captured output, and manuscript fixtures on disk.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	tccexport "github.com/alnah/go-tccexport"
)

// ---------------------------------------------------------------------------
// Test Environment
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2024, time.June, 10, 9, 30, 0, 0, time.UTC)

// testEnv returns an Environment isolated from the process environment.
// Only vars are visible through Getenv and Environ.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return env, stdout, stderr
}

// ---------------------------------------------------------------------------
// Manuscript Fixtures
// ---------------------------------------------------------------------------

func sampleManuscript(title string) tccexport.Manuscript {
	return tccexport.Manuscript{
		Title:      title,
		CourseName: "Engenharia de Software",
		Chapters: []tccexport.Chapter{
			{ID: "intro", Title: "Introdução", ContentMarkup: "<p>Texto da <b>introdução</b>.</p>", Order: 1},
			{ID: "metodo", Title: "Metodologia", ContentMarkup: "<ol><li>coleta</li><li>análise</li></ol>", Order: 2},
		},
	}
}

const sampleYAML = `title: Impacto da IA
course: Pedagogia
chapters:
  - id: intro
    title: Introdução
    content: "<p>Texto da <b>introdução</b>.</p>"
    order: 1
  - id: conclusao
    title: Conclusão
    content: "<p>Fim.</p>"
    order: 2
`

// writeFile writes content under dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
