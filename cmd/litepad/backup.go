package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"litepad/internal/backup"
	"litepad/internal/config"
	"litepad/internal/models"
	"litepad/internal/settings"
)

var errNoBackupDir = errors.New("backup directory not configured")

func newBackupCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create, inspect and restore backup archives",
	}

	cmd.AddCommand(
		newBackupRunCmd(cfg),
		newBackupListCmd(cfg),
		newBackupRestoreCmd(cfg),
		newBackupDeleteCmd(cfg),
		newBackupPruneCmd(cfg),
		newBackupValidateCmd(cfg),
	)
	return cmd
}

// loadBackupSettings reads the persisted backup settings, applying the
// directory override when given.
func loadBackupSettings(cfg *config.Config, dirOverride string) (models.BackupSettings, error) {
	st, err := settings.Open(cfg.SettingsDBPath())
	if err != nil {
		return models.BackupSettings{}, err
	}
	defer st.Close()

	bs, err := st.GetBackupSettings()
	if err != nil {
		return models.BackupSettings{}, err
	}
	if strings.TrimSpace(dirOverride) != "" {
		bs.BackupDirectory = dirOverride
	}
	return bs, nil
}

func newBackupRunCmd(cfg *config.Config) *cobra.Command {
	var (
		dataFile string
		dir      string
		noPrune  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Create a backup archive from a data snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := readSnapshot(dataFile)
			if err != nil {
				return err
			}

			bs, err := loadBackupSettings(cfg, dir)
			if err != nil {
				return err
			}
			if strings.TrimSpace(bs.BackupDirectory) == "" {
				return errNoBackupDir
			}

			filename, err := backup.Create(snapshot, cfg.ImagesRoot(), bs.BackupDirectory)
			if err != nil {
				return err
			}

			var report models.RetentionReport
			if !noPrune {
				report, err = backup.EnforceRetention(bs.BackupDirectory, bs.MaxBackups)
				if err != nil {
					return fmt.Errorf("backup created as %s but pruning failed: %w", filename, err)
				}
			}

			if !textOutput() {
				return writeStructured(map[string]any{
					"filename":        filename,
					"pruned":          report.Deleted,
					"failed_to_prune": report.Failed,
				})
			}
			_ = writePlain("created %s\n", filename)
			for _, name := range report.Deleted {
				_ = writePlain("pruned %s\n", name)
			}
			for _, name := range report.Failed {
				_ = writePlain("failed to prune %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataFile, "data-file", "-", "snapshot JSON file, or - for stdin")
	cmd.Flags().StringVar(&dir, "dir", "", "backup directory override")
	cmd.Flags().BoolVar(&noPrune, "no-prune", false, "skip retention pruning after the backup")
	return cmd
}

func readSnapshot(path string) (string, error) {
	if path == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read snapshot from stdin: %w", err)
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func newBackupListCmd(cfg *config.Config) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List backup archives, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, err := loadBackupSettings(cfg, dir)
			if err != nil {
				return err
			}
			if strings.TrimSpace(bs.BackupDirectory) == "" {
				return errNoBackupDir
			}

			backups, err := backup.List(bs.BackupDirectory)
			if err != nil {
				return err
			}
			return writeBackupList(backups)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "backup directory override")
	return cmd
}

func newBackupRestoreCmd(cfg *config.Config) *cobra.Command {
	var (
		dir string
		out string
	)

	cmd := &cobra.Command{
		Use:   "restore <filename>",
		Short: "Restore images from an archive and print its data snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, err := loadBackupSettings(cfg, dir)
			if err != nil {
				return err
			}
			if strings.TrimSpace(bs.BackupDirectory) == "" {
				return errNoBackupDir
			}

			snapshot, err := backup.Restore(args[0], bs.BackupDirectory, cfg.ImagesRoot())
			if err != nil {
				return err
			}
			if out != "" {
				return os.WriteFile(out, []byte(snapshot), 0o644)
			}
			return writePlain("%s", snapshot)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "backup directory override")
	cmd.Flags().StringVar(&out, "out", "", "write the snapshot to a file instead of stdout")
	return cmd
}

func newBackupDeleteCmd(cfg *config.Config) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "delete <filename>",
		Short: "Delete a backup archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, err := loadBackupSettings(cfg, dir)
			if err != nil {
				return err
			}
			if strings.TrimSpace(bs.BackupDirectory) == "" {
				return errNoBackupDir
			}
			return backup.Delete(args[0], bs.BackupDirectory)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "backup directory override")
	return cmd
}

func newBackupPruneCmd(cfg *config.Config) *cobra.Command {
	var (
		dir string
		max int
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete archives beyond the retention limit",
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, err := loadBackupSettings(cfg, dir)
			if err != nil {
				return err
			}
			if strings.TrimSpace(bs.BackupDirectory) == "" {
				return errNoBackupDir
			}

			limit := bs.MaxBackups
			if cmd.Flags().Changed("max") {
				if max < 0 {
					return fmt.Errorf("--max must be zero or positive")
				}
				limit = max
			}

			report, err := backup.EnforceRetention(bs.BackupDirectory, limit)
			if err != nil {
				return err
			}
			if !textOutput() {
				return writeStructured(report)
			}
			for _, name := range report.Deleted {
				_ = writePlain("pruned %s\n", name)
			}
			for _, name := range report.Failed {
				_ = writePlain("failed to prune %s\n", name)
			}
			if len(report.Deleted) == 0 && len(report.Failed) == 0 {
				_ = writePlain("nothing to prune\n")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "backup directory override")
	cmd.Flags().IntVar(&max, "max", 0, "retention limit override")
	return cmd
}

func newBackupValidateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Check whether a directory is usable as backup location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if backup.InsideInstallDir(args[0]) {
				return fmt.Errorf("cannot use the installation directory as backup location")
			}
			return writePathValidation(backup.ValidatePath(args[0]))
		},
	}
}
