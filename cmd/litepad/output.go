package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"litepad/internal/format"
	"litepad/internal/models"
)

// outputFormatter is nil for the default text output.
var outputFormatter format.Formatter

func setOutputFormat(name string) error {
	if name == "" || name == "text" {
		outputFormatter = nil
		return nil
	}
	f, err := format.New(name)
	if err != nil {
		return err
	}
	outputFormatter = f
	return nil
}

func textOutput() bool {
	return outputFormatter == nil
}

func writeStructured(payload any) error {
	return outputFormatter.Write(os.Stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}

func writeDescriptor(desc models.BlobDescriptor) error {
	if !textOutput() {
		return writeStructured(desc)
	}
	lines := fmt.Sprintf("hash: %s\nurl: %s\next: %s\nsize: %s\n",
		desc.Hash, desc.URL, desc.Ext, humanize.Bytes(uint64(desc.Size)))
	return writePlain("%s", lines)
}

func writeMigrateResult(result models.MigrateResult) error {
	if !textOutput() {
		return writeStructured(result)
	}
	return writePlain("%s -> %s (%s)\n", result.Hash+result.Ext, result.NewURL, humanize.Bytes(uint64(result.Size)))
}

func writeBackupList(backups []models.BackupInfo) error {
	if !textOutput() {
		return writeStructured(backups)
	}
	for _, b := range backups {
		created := time.Unix(b.CreatedAt, 0).UTC().Format(time.RFC3339)
		if err := writePlain("%s  %s  %s\n", b.Filename, created, humanize.Bytes(uint64(b.Size))); err != nil {
			return err
		}
	}
	return nil
}

func writePathValidation(result models.PathValidation) error {
	if !textOutput() {
		return writeStructured(result)
	}
	_ = writePlain("valid: %t\n", result.IsValid)
	_ = writePlain("exists: %t\n", result.Exists)
	_ = writePlain("writable: %t\n", result.IsWritable)
	if result.ErrorCode != "" {
		_ = writePlain("error_code: %s\n", result.ErrorCode)
	}
	return nil
}

func writeBackupSettings(cfg models.BackupSettings) error {
	if !textOutput() {
		return writeStructured(cfg)
	}
	dir := cfg.BackupDirectory
	if dir == "" {
		dir = "(not configured)"
	}
	_ = writePlain("backup_directory: %s\n", dir)
	_ = writePlain("max_backups: %d\n", cfg.MaxBackups)
	_ = writePlain("auto_backup_enabled: %t\n", cfg.AutoBackupEnabled)
	_ = writePlain("auto_backup_interval: %d\n", cfg.AutoBackupInterval)
	return nil
}
