package main

// Notes:
// - exitCodeFor: we test the sentinel errors from the CLI, config, store
//   and tccexport packages, plus wrapped errors to verify errors.Is() and
//   errors.As() chains work correctly.
// - Exit code constants: we verify Unix conventions (0=success, 1=general, 2=usage)
//   and custom codes are below 126.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	tccexport "github.com/alnah/go-tccexport"
	"github.com/alnah/go-tccexport/internal/config"
	"github.com/alnah/go-tccexport/internal/store"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	exportErr := &tccexport.ExportError{Format: tccexport.FormatPDF, Op: "render", Err: tccexport.ErrSerialization}

	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Export errors (exit 4)
		{"export error", exportErr, ExitExport},
		{"wrapped export error", fmt.Errorf("1 export(s) failed: %w", exportErr), ExitExport},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read manuscript", ErrReadManuscript, ExitIO},
		{"write manuscript", ErrWriteManuscript, ExitIO},
		{"read source", ErrReadSource, ExitIO},
		{"write artifact", ErrWriteArtifact, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"store open", store.ErrOpen, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"worker count", ErrInvalidWorkerCount, ExitUsage},
		{"no store", ErrNoStore, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"unknown format", tccexport.ErrUnknownFormat, ExitUsage},
		{"invalid profile", tccexport.ErrInvalidProfile, ExitUsage},
		{"profile not found", tccexport.ErrProfileNotFound, ExitUsage},
		{"invalid asset path", tccexport.ErrInvalidAssetPath, ExitUsage},
		{"empty chapter title", tccexport.ErrEmptyChapterTitle, ExitUsage},
		{"chapter not found", tccexport.ErrChapterNotFound, ExitUsage},
		{"import mode", tccexport.ErrInvalidImportMode, ExitUsage},
		{"source type", tccexport.ErrUnknownSourceType, ExitUsage},
		{"project not found", store.ErrNotFound, ExitUsage},
		{"wrapped usage", fmt.Errorf("parse: %w", ErrUsage), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("standard codes = %d/%d/%d, want 0/1/2", ExitSuccess, ExitGeneral, ExitUsage)
	}
	for _, code := range []int{ExitIO, ExitExport} {
		if code <= ExitUsage || code >= 126 {
			t.Errorf("custom code %d outside (2, 126)", code)
		}
	}
}
