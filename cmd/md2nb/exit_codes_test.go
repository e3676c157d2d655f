package main

import (
	"fmt"
	"os"
	"testing"

	md2nb "github.com/ConnorGray/md2nb"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"output exists", ErrOutputExists, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/validation errors (exit 2)
		{"no input", ErrNoInput, ExitUsage},
		{"too many args", ErrTooManyArgs, ExitUsage},
		{"empty markdown", md2nb.ErrEmptyMarkdown, ExitUsage},
		{"invalid utf-8", md2nb.ErrInvalidUTF8, ExitUsage},
		{"wrapped too many args", fmt.Errorf("parsing: %w", ErrTooManyArgs), ExitUsage},

		// General errors (exit 1)
		{"unresolved reference", md2nb.ErrUnresolvedReference, ExitGeneral},
		{"malformed tree", md2nb.ErrMalformedTree, ExitGeneral},
		{"unencodable character", md2nb.ErrUnencodableCharacter, ExitGeneral},
		{"arbitrary error", fmt.Errorf("something broke"), ExitGeneral},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodes - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodes(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}
	for _, code := range []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO} {
		if code < 0 || code > 125 {
			t.Errorf("exit code %d outside the portable range 0..125", code)
		}
	}
}
