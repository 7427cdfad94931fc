// Package yamlutil is the one place the YAML library is imported. Config
// files, formatting profiles and manuscripts all decode through it; JSON
// manuscripts work unchanged since JSON is valid YAML.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// Size limits per kind of document.
const (
	MaxSettingsSize   = 1 << 20  // config files and profiles
	MaxManuscriptSize = 32 << 20 // manuscripts carry every chapter's markup
)

var (
	ErrEmpty     = errors.New("yaml: empty document")
	ErrNilTarget = errors.New("yaml: nil decode target")
	ErrTooLarge  = errors.New("yaml: document too large")
)

// Decode decodes a settings document into v. Unknown and duplicate keys
// are errors.
func Decode(data []byte, v any) error {
	return decode(data, v, MaxSettingsSize)
}

// DecodeFile reads at most limit bytes from path and decodes them like
// Decode. Open errors are returned unwrapped so callers can test for
// fs.ErrNotExist.
func DecodeFile(path string, v any, limit int) error {
	f, err := os.Open(path) // #nosec G304 -- callers pass user-selected files
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, int64(limit)+1))
	if err != nil {
		return fmt.Errorf("yaml: reading %s: %w", path, err)
	}
	return decode(data, v, limit)
}

func decode(data []byte, v any, limit int) error {
	switch {
	case v == nil:
		return ErrNilTarget
	case len(data) > limit:
		return fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	case len(bytes.TrimSpace(data)) == 0:
		return ErrEmpty
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	return nil
}

// Encode renders v with two-space indentation. Multi-line strings such
// as chapter markup are written as literal blocks.
func Encode(v any) ([]byte, error) {
	data, err := yaml.MarshalWithOptions(v,
		yaml.Indent(2),
		yaml.IndentSequence(true),
		yaml.UseLiteralStyleIfMultiline(true),
	)
	if err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return data, nil
}
