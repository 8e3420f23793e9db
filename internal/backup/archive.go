// Package backup bundles the document snapshot and the image store into
// self-contained zip archives, and manages the set of archives in the
// configured backup directory.
package backup

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"litepad/internal/models"
)

const (
	snapshotEntry    = "data.json"
	imagesEntryRoot  = "images/"
	imagesDirMode    = 0o755
	extractedFileMod = 0o644
)

// ErrMissingData reports an archive without a data.json entry; the archive
// is unusable for restore.
var ErrMissingData = errors.New("archive has no data.json entry")

// ErrInvalidFilename reports a name that does not follow the archive naming
// convention or tries to escape the backup directory.
var ErrInvalidFilename = errors.New("invalid backup filename")

// nowFunc is swapped in tests to pin archive timestamps.
var nowFunc = time.Now

// Create writes a new timestamped archive into backupDir containing the
// snapshot text verbatim as data.json followed by every regular file under
// blobRoot as a deflate-compressed images/ entry. The snapshot entry is
// always written first, so a fully written archive always has data.json as
// its first addressable entry. Returns the archive filename.
//
// A failure after the archive file has been created can leave a truncated
// file behind; callers treat any error as terminal.
func Create(snapshot string, blobRoot, backupDir string) (string, error) {
	if strings.TrimSpace(backupDir) == "" {
		return "", fmt.Errorf("backup directory is required")
	}
	if err := os.MkdirAll(backupDir, imagesDirMode); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	filename := ArchiveName(nowFunc())
	path := filepath.Join(backupDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	w, err := zw.Create(snapshotEntry)
	if err != nil {
		return "", fmt.Errorf("add %s: %w", snapshotEntry, err)
	}
	if _, err := io.WriteString(w, snapshot); err != nil {
		return "", fmt.Errorf("write %s: %w", snapshotEntry, err)
	}

	if err := addImageEntries(zw, blobRoot); err != nil {
		return "", err
	}

	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("finish archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close archive: %w", err)
	}

	return filename, nil
}

func addImageEntries(zw *zip.Writer, blobRoot string) error {
	if _, err := os.Stat(blobRoot); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return filepath.WalkDir(blobRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(blobRoot, path)
		if err != nil {
			return err
		}
		entryName := imagesEntryRoot + filepath.ToSlash(rel)

		w, err := zw.Create(entryName)
		if err != nil {
			return fmt.Errorf("add %s: %w", entryName, err)
		}
		src, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		_, err = io.Copy(w, src)
		src.Close()
		if err != nil {
			return fmt.Errorf("write %s: %w", entryName, err)
		}
		return nil
	})
}

// Restore reads the named archive from backupDir, extracts every images/
// entry into blobRoot (overwriting same-named files; names are content
// digests, so an overwrite is byte-identical in practice) and returns the
// data.json snapshot text.
func Restore(filename, backupDir, blobRoot string) (string, error) {
	if err := validateFilename(filename); err != nil {
		return "", err
	}

	zr, err := zip.OpenReader(filepath.Join(backupDir, filename))
	if err != nil {
		return "", fmt.Errorf("open archive %s: %w", filename, err)
	}
	defer zr.Close()

	snapshot, err := readSnapshotEntry(&zr.Reader)
	if err != nil {
		return "", err
	}

	for _, entry := range zr.File {
		name := entry.Name
		if !strings.HasPrefix(name, imagesEntryRoot) || strings.HasSuffix(name, "/") {
			continue
		}
		rel := strings.TrimPrefix(name, imagesEntryRoot)
		if !fs.ValidPath(rel) {
			return "", fmt.Errorf("archive entry %q has an unsafe path", name)
		}
		dest := filepath.Join(blobRoot, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dest), imagesDirMode); err != nil {
			return "", fmt.Errorf("create image directory: %w", err)
		}
		if err := extractEntry(entry, dest); err != nil {
			return "", err
		}
	}

	return snapshot, nil
}

func readSnapshotEntry(zr *zip.Reader) (string, error) {
	for _, entry := range zr.File {
		if entry.Name != snapshotEntry {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return "", fmt.Errorf("open %s: %w", snapshotEntry, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", snapshotEntry, err)
		}
		return string(data), nil
	}
	return "", ErrMissingData
}

func extractEntry(entry *zip.File, dest string) error {
	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("open entry %s: %w", entry.Name, err)
	}
	defer rc.Close()

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, extractedFileMod)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(f, rc); err != nil {
		f.Close()
		return fmt.Errorf("extract %s: %w", entry.Name, err)
	}
	return f.Close()
}

// List returns the archives in backupDir, newest first. A missing backup
// directory is an empty list, not an error. CreatedAt comes from file
// metadata; entries whose metadata cannot be read report 0 and sort by
// filename instead.
func List(backupDir string) ([]models.BackupInfo, error) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.BackupInfo{}, nil
		}
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	backups := []models.BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !IsArchiveName(entry.Name()) {
			continue
		}
		info := models.BackupInfo{Filename: entry.Name()}
		if meta, err := entry.Info(); err == nil {
			info.CreatedAt = meta.ModTime().Unix()
			info.Size = meta.Size()
		}
		backups = append(backups, info)
	}

	sort.Slice(backups, func(i, j int) bool {
		if backups[i].CreatedAt != backups[j].CreatedAt {
			return backups[i].CreatedAt > backups[j].CreatedAt
		}
		return backups[i].Filename > backups[j].Filename
	})

	return backups, nil
}

// Delete removes the named archive from backupDir.
func Delete(filename, backupDir string) error {
	if err := validateFilename(filename); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(backupDir, filename)); err != nil {
		return fmt.Errorf("delete backup %s: %w", filename, err)
	}
	return nil
}

func validateFilename(filename string) error {
	if filename == "" || filepath.Base(filename) != filename || !IsArchiveName(filename) {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	return nil
}
