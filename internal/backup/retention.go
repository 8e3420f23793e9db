package backup

import (
	"os"
	"path/filepath"
	"sort"

	"litepad/internal/models"
)

// removeFunc is swapped in tests to simulate undeletable archives.
var removeFunc = os.Remove

// EnforceRetention deletes every archive in backupDir beyond the max newest
// ones, ordering by filename descending (the timestamped names make that
// chronological). Per-file delete failures are collected, never fatal: one
// locked or corrupt old archive must not block a fresh backup from
// counting as successful.
func EnforceRetention(backupDir string, max int) (models.RetentionReport, error) {
	report := models.RetentionReport{Deleted: []string{}, Failed: []string{}}

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return report, nil
		}
		return report, err
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !IsArchiveName(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	if max < 0 {
		max = 0
	}
	for _, name := range names[min(max, len(names)):] {
		if err := removeFunc(filepath.Join(backupDir, name)); err != nil {
			report.Failed = append(report.Failed, name)
			continue
		}
		report.Deleted = append(report.Deleted, name)
	}

	return report, nil
}
