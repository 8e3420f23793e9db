package main

import (
	"errors"

	"litepad/internal/backup"
	"litepad/internal/blobstore"
)

func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}

	lines := []string{err.Error()}

	if errors.Is(err, errNoBackupDir) {
		lines = append(lines, "hint: configure one with: litepad settings set --dir <path>")
		return uniqueLines(lines)
	}
	if errors.Is(err, backup.ErrInvalidFilename) {
		lines = append(lines,
			"hint: backup names look like litepad_backup_20240101_120000.zip",
			"hint: list available backups with: litepad backup list",
		)
		return uniqueLines(lines)
	}
	if errors.Is(err, backup.ErrMissingData) {
		lines = append(lines, "hint: the archive is missing its data.json entry and cannot be restored.")
		return uniqueLines(lines)
	}
	if errors.Is(err, blobstore.ErrNotFound) {
		lines = append(lines, "hint: check stored images with: litepad images check <path>")
		return uniqueLines(lines)
	}

	var mismatch *blobstore.HashMismatchError
	if errors.As(err, &mismatch) {
		lines = append(lines, "hint: the content does not match the supplied digest; re-read the source file and retry.")
	}

	return uniqueLines(lines)
}

func uniqueLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
