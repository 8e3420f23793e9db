package backup

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"litepad/internal/models"
)

const probePrefix = ".litepad_write_test_"

// ValidatePath probes a candidate backup directory without mutating any
// application state. Writability is determined empirically: a uniquely
// named probe file is created in the target (or its parent when the target
// does not exist yet) and removed again whatever happens. A missing path
// with a writable parent is valid, since Create makes directories as
// needed.
func ValidatePath(path string) models.PathValidation {
	result := models.PathValidation{}

	// An empty path has no parent to probe; never fall through to the
	// working directory.
	if strings.TrimSpace(path) == "" {
		result.ErrorCode = models.PathErrNotAccessible
		return result
	}

	info, err := os.Stat(path)
	result.Exists = err == nil

	switch {
	case result.Exists && info.IsDir():
		result.IsWritable = probeWritable(path)
	case result.Exists:
		// A regular file cannot serve as a backup directory.
		result.IsWritable = false
	default:
		parent := filepath.Dir(path)
		if _, err := os.Stat(parent); err == nil {
			result.IsWritable = probeWritable(parent)
		}
	}

	switch {
	case result.Exists && result.IsWritable:
		result.IsValid = true
	case result.Exists:
		result.ErrorCode = models.PathErrNoWritePermission
	case result.IsWritable:
		result.IsValid = true // creatable
	default:
		result.ErrorCode = models.PathErrNotAccessible
	}

	return result
}

func probeWritable(dir string) bool {
	probe := filepath.Join(dir, probePrefix+uuid.NewString())
	f, err := os.Create(probe)
	if err != nil {
		_ = os.Remove(probe)
		return false
	}
	f.Close()
	_ = os.Remove(probe)
	return true
}

// InsideInstallDir reports whether path is the application's installation
// directory or nested inside it. Backups placed there would be wiped by a
// reinstall, so interactive directory selection rejects such paths.
func InsideInstallDir(path string) bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}
	return pathWithin(filepath.Dir(exe), path)
}

func pathWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
