package main

import (
	"fmt"
	"strings"
	"testing"

	"litepad/internal/backup"
	"litepad/internal/blobstore"
)

func TestFormatCLIErrorNil(t *testing.T) {
	if lines := formatCLIError(nil); lines != nil {
		t.Fatalf("expected nil, got %v", lines)
	}
}

func TestFormatCLIErrorHints(t *testing.T) {
	tests := []struct {
		name string
		err  error
		hint string
	}{
		{
			name: "no backup dir",
			err:  errNoBackupDir,
			hint: "litepad settings set",
		},
		{
			name: "invalid filename",
			err:  fmt.Errorf("restore: %w", backup.ErrInvalidFilename),
			hint: "litepad backup list",
		},
		{
			name: "missing data entry",
			err:  fmt.Errorf("restore: %w", backup.ErrMissingData),
			hint: "data.json",
		},
		{
			name: "image not found",
			err:  fmt.Errorf("read: %w", blobstore.ErrNotFound),
			hint: "litepad images check",
		},
		{
			name: "hash mismatch",
			err:  &blobstore.HashMismatchError{Expected: "aa", Actual: "bb"},
			hint: "does not match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := formatCLIError(tt.err)
			if len(lines) < 2 {
				t.Fatalf("expected error plus hint, got %v", lines)
			}
			if lines[0] != tt.err.Error() {
				t.Fatalf("first line must be the error, got %q", lines[0])
			}
			joined := strings.Join(lines[1:], "\n")
			if !strings.Contains(joined, tt.hint) {
				t.Fatalf("expected hint containing %q, got %v", tt.hint, lines[1:])
			}
		})
	}
}

func TestFormatCLIErrorPlain(t *testing.T) {
	lines := formatCLIError(fmt.Errorf("something broke"))
	if len(lines) != 1 || lines[0] != "something broke" {
		t.Fatalf("expected bare error line, got %v", lines)
	}
}

func TestUniqueLines(t *testing.T) {
	got := uniqueLines([]string{"a", "", "b", "a", "b"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected result %v", got)
	}
}
