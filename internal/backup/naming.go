package backup

import (
	"strings"
	"time"
)

const (
	archivePrefix = "litepad_backup_"
	archiveSuffix = ".zip"

	// Fixed-width, zero-padded, so lexicographic filename order equals
	// chronological order.
	timestampLayout = "20060102_150405"
)

// ArchiveName builds the archive filename for a creation time.
func ArchiveName(t time.Time) string {
	return archivePrefix + t.Format(timestampLayout) + archiveSuffix
}

// IsArchiveName reports whether a directory entry follows the backup
// archive naming convention.
func IsArchiveName(name string) bool {
	return strings.HasPrefix(name, archivePrefix) && strings.HasSuffix(name, archiveSuffix)
}
