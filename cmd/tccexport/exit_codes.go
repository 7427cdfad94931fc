package main

import (
	"errors"
	"os"

	tccexport "github.com/alnah/go-tccexport"
	"github.com/alnah/go-tccexport/internal/config"
	"github.com/alnah/go-tccexport/internal/store"
)

// Exit codes for the tccexport CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, store unavailable
	ExitExport  = 4 // Document generation failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadManuscript) ||
		errors.Is(err, ErrReadSource) ||
		errors.Is(err, ErrWriteArtifact) ||
		errors.Is(err, ErrWriteManuscript) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, store.ErrOpen) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrNoStore) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, tccexport.ErrUnknownFormat) ||
		errors.Is(err, tccexport.ErrInvalidProfile) ||
		errors.Is(err, tccexport.ErrProfileNotFound) ||
		errors.Is(err, tccexport.ErrInvalidAssetPath) ||
		errors.Is(err, tccexport.ErrEmptyChapterTitle) ||
		errors.Is(err, tccexport.ErrChapterNotFound) ||
		errors.Is(err, tccexport.ErrInvalidImportMode) ||
		errors.Is(err, tccexport.ErrUnknownSourceType) ||
		errors.Is(err, store.ErrNotFound) {
		return ExitUsage
	}

	// Export errors (exit 4)
	var exportErr *tccexport.ExportError
	if errors.As(err, &exportErr) {
		return ExitExport
	}

	return ExitGeneral
}
