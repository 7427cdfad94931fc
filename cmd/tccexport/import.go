package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tccexport "github.com/alnah/go-tccexport"
	"github.com/alnah/go-tccexport/internal/hints"
)

// runImport imports an HTML or Markdown file into a manuscript file.
func runImport(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseImportFlags(args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: import takes exactly one manuscript file", ErrUsage)
	}
	if flags.from == "" {
		return fmt.Errorf("%w: --from is required", ErrUsage)
	}

	cfg, _, err := loadConfig(&flags.common, env)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, env)

	mode, err := tccexport.ParseImportMode(flags.mode)
	if err != nil {
		return err
	}
	sourceType, err := resolveSourceType(flags.sourceType, flags.from)
	if err != nil {
		return err
	}

	path := positional[0]
	m, err := readManuscript(path)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(flags.from) // #nosec G304 -- user-provided import path
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadSource, err)
	}

	id, err := m.Import(ctx, tccexport.ImportRequest{
		Mode:      mode,
		ChapterID: flags.chapter,
		Title:     flags.title,
		Content:   string(content),
		Type:      sourceType,
	})
	if err != nil {
		return err
	}
	if id == "" {
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Nothing to import from %s\n", flags.from)
		}
		return nil
	}

	out := flags.output
	if out == "" {
		out = path
	}
	if err := writeManuscript(out, m); err != nil {
		return err
	}
	logger.Debug("import applied", "mode", mode, "chapter", id, "source", flags.from, "type", sourceType)

	if !flags.common.quiet {
		verb := "Updated"
		if mode == tccexport.ImportNew {
			verb = "Created"
		}
		fmt.Fprintf(env.Stdout, "%s chapter %s in %s\n", verb, id, out)
	}
	return nil
}

// resolveSourceType picks the source type from --type, or from the file
// extension when the flag is unset.
func resolveSourceType(value, path string) (tccexport.SourceType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return tccexport.DetectSourceType(path), nil
	case "html", "htm":
		return tccexport.SourceHTML, nil
	case "md", "markdown":
		return tccexport.SourceMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q%s", tccexport.ErrUnknownSourceType, value, hints.ForImportSource())
}
