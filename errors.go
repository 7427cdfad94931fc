package tccexport

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	ErrSerialization = errors.New("serialization failed")
	ErrUnknownFormat = errors.New("unknown export format")
	ErrNilSource     = errors.New("manuscript source is nil")

	// Profile errors.
	ErrInvalidProfile   = errors.New("invalid formatting profile")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// Import errors.
	ErrEmptyChapterTitle = errors.New("chapter title cannot be empty")
	ErrChapterNotFound   = errors.New("chapter not found")
	ErrInvalidImportMode = errors.New("invalid import mode")
	ErrUnknownSourceType = errors.New("unknown import source type")
)

// ExportError is the single error type returned by export operations.
// Err carries the sentinel cause for errors.Is matching.
type ExportError struct {
	Format Format
	Op     string
	Err    error
}

func (e *ExportError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("export failed (%s): %v", e.Format, e.Err)
	}
	return fmt.Sprintf("export failed (%s): %s: %v", e.Format, e.Op, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

func exportError(format Format, op string, err error) error {
	return &ExportError{Format: format, Op: op, Err: err}
}
