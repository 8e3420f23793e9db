package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"litepad/internal/backup"
	"litepad/internal/blobstore"
	"litepad/internal/models"
	"litepad/internal/settings"
)

// ErrNoBackupDir reports that no backup directory is configured; nothing
// has been written when it is returned.
var ErrNoBackupDir = errors.New("backup directory not configured")

// BackupService ties the archive engine to the settings store and the blob
// store root. Settings are re-read on every call, never cached, so edits
// made through another surface apply to the next operation.
type BackupService struct {
	store    *blobstore.Store
	settings *settings.Store
	logger   *slog.Logger
}

// NewBackupService constructs a BackupService.
func NewBackupService(store *blobstore.Store, settingsStore *settings.Store, logger *slog.Logger) *BackupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BackupService{store: store, settings: settingsStore, logger: logger}
}

// Perform archives the snapshot together with the image store, then prunes
// old archives down to the configured cap. Retention runs only after the
// archive is fully closed, and its per-file failures never fail the backup.
func (s *BackupService) Perform(snapshot string) (models.BackupInfo, models.RetentionReport, error) {
	var zeroReport models.RetentionReport

	cfg, err := s.settings.GetBackupSettings()
	if err != nil {
		return models.BackupInfo{}, zeroReport, storeFailure(err)
	}
	dir := strings.TrimSpace(cfg.BackupDirectory)
	if dir == "" {
		return models.BackupInfo{}, zeroReport, conflictCode(ErrNoBackupDir, ErrCodeBackupDirNotConfigured)
	}

	filename, err := backup.Create(snapshot, s.store.Root(), dir)
	if err != nil {
		return models.BackupInfo{}, zeroReport, internalError(err)
	}

	report, err := backup.EnforceRetention(dir, cfg.MaxBackups)
	if err != nil {
		// The backup itself succeeded; an unreadable directory during
		// pruning is reported but not fatal.
		s.logger.Warn("retention pass failed", "dir", dir, "error", err)
	}
	for _, name := range report.Failed {
		s.logger.Warn("could not prune old backup", "filename", name)
	}

	return models.BackupInfo{Filename: filename}, report, nil
}

// List enumerates archives in the configured backup directory, newest
// first. No configured directory means no backups, not an error.
func (s *BackupService) List() ([]models.BackupInfo, error) {
	cfg, err := s.settings.GetBackupSettings()
	if err != nil {
		return nil, storeFailure(err)
	}
	if strings.TrimSpace(cfg.BackupDirectory) == "" {
		return []models.BackupInfo{}, nil
	}
	backups, err := backup.List(cfg.BackupDirectory)
	if err != nil {
		return nil, internalError(err)
	}
	return backups, nil
}

// Restore extracts the named archive into the image store root and returns
// the snapshot text; the caller re-loads application state from it.
func (s *BackupService) Restore(filename string) (string, error) {
	cfg, err := s.settings.GetBackupSettings()
	if err != nil {
		return "", storeFailure(err)
	}
	dir := strings.TrimSpace(cfg.BackupDirectory)
	if dir == "" {
		return "", conflictCode(ErrNoBackupDir, ErrCodeBackupDirNotConfigured)
	}

	snapshot, err := backup.Restore(filename, dir, s.store.Root())
	if err != nil {
		switch {
		case errors.Is(err, backup.ErrInvalidFilename):
			return "", badRequestCode(err, ErrCodeInvalidName)
		case errors.Is(err, backup.ErrMissingData):
			return "", makeAPIError(http.StatusUnprocessableEntity, "archive_corrupt", ErrCodeArchiveCorrupt, err)
		case errors.Is(err, os.ErrNotExist):
			return "", notFoundCode(fmt.Errorf("backup not found: %s", filename), ErrCodeBackupNotFound)
		default:
			return "", internalError(err)
		}
	}
	return snapshot, nil
}

// Delete removes the named archive.
func (s *BackupService) Delete(filename string) error {
	cfg, err := s.settings.GetBackupSettings()
	if err != nil {
		return storeFailure(err)
	}
	dir := strings.TrimSpace(cfg.BackupDirectory)
	if dir == "" {
		return conflictCode(ErrNoBackupDir, ErrCodeBackupDirNotConfigured)
	}

	if err := backup.Delete(filename, dir); err != nil {
		switch {
		case errors.Is(err, backup.ErrInvalidFilename):
			return badRequestCode(err, ErrCodeInvalidName)
		case errors.Is(err, os.ErrNotExist):
			return notFoundCode(fmt.Errorf("backup not found: %s", filename), ErrCodeBackupNotFound)
		default:
			return internalError(err)
		}
	}
	return nil
}

// ValidatePath probes a candidate backup directory.
func (s *BackupService) ValidatePath(path string) (models.PathValidation, error) {
	if strings.TrimSpace(path) == "" {
		return models.PathValidation{}, badRequestCode(errors.New("path is required"), ErrCodeMissingRequired)
	}
	return backup.ValidatePath(path), nil
}

// Settings returns the current backup settings (defaults when unset).
func (s *BackupService) Settings() (models.BackupSettings, error) {
	cfg, err := s.settings.GetBackupSettings()
	if err != nil {
		return models.BackupSettings{}, storeFailure(err)
	}
	return cfg, nil
}

// UpdateSettings persists new backup settings. A directory inside the
// application's installation directory is rejected outright: a reinstall
// would silently wipe the backups stored there.
func (s *BackupService) UpdateSettings(cfg models.BackupSettings) error {
	if cfg.MaxBackups <= 0 {
		return badRequest(errors.New("max_backups must be positive"))
	}
	if cfg.AutoBackupInterval <= 0 {
		return badRequest(errors.New("auto_backup_interval must be positive"))
	}
	if dir := strings.TrimSpace(cfg.BackupDirectory); dir != "" && backup.InsideInstallDir(dir) {
		return conflictCode(errors.New("cannot use the installation directory as backup location"), ErrCodeBackupDirRejected)
	}
	if err := s.settings.SetBackupSettings(cfg); err != nil {
		return storeFailure(err)
	}
	return nil
}
