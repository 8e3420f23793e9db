package blobstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"litepad/internal/models"
)

// Migrate ingests a legacy path-addressed image into the store. The source
// file is read, never deleted: a failure in any later step must not lose
// the only copy. The extension is taken from the old path, defaulting to
// ".png" when it has none.
func (s *Store) Migrate(oldPath string) (models.MigrateResult, error) {
	var zero models.MigrateResult
	if s == nil {
		return zero, fmt.Errorf("blob store is not configured")
	}

	if _, err := os.Stat(oldPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return zero, fmt.Errorf("%w: %s", ErrNotFound, oldPath)
		}
		return zero, fmt.Errorf("stat %s: %w", oldPath, err)
	}

	content, err := os.ReadFile(oldPath)
	if err != nil {
		return zero, fmt.Errorf("read %s: %w", oldPath, err)
	}

	// A missing or unusable suffix both fall back to the default; legacy
	// paths are not trusted to produce a valid store name.
	ext := NormalizeExt(filepath.Ext(oldPath))
	if !extRegex.MatchString(ext) {
		ext = DefaultExt
	}

	desc, err := s.Save(content, ext)
	if err != nil {
		return zero, err
	}

	return models.MigrateResult{
		Hash:   desc.Hash,
		Ext:    desc.Ext,
		Size:   desc.Size,
		NewURL: desc.URL,
	}, nil
}

// CheckExisting reports, for each legacy path, whether a file is still
// present there. One boolean per input, in input order; the store itself
// is never touched.
func CheckExisting(paths []string) []bool {
	exists := make([]bool, len(paths))
	for i, p := range paths {
		_, err := os.Stat(p)
		exists[i] = err == nil
	}
	return exists
}
