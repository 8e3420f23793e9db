package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"litepad/internal/backup"
	"litepad/internal/config"
	"litepad/internal/settings"
)

func newSettingsCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change backup settings",
	}

	cmd.AddCommand(
		newSettingsShowCmd(cfg),
		newSettingsSetCmd(cfg),
	)
	return cmd
}

func newSettingsShowCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current backup settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := settings.Open(cfg.SettingsDBPath())
			if err != nil {
				return err
			}
			defer st.Close()

			bs, err := st.GetBackupSettings()
			if err != nil {
				return err
			}
			return writeBackupSettings(bs)
		},
	}
}

func newSettingsSetCmd(cfg *config.Config) *cobra.Command {
	var (
		dir      string
		max      int
		auto     bool
		interval int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update backup settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := settings.Open(cfg.SettingsDBPath())
			if err != nil {
				return err
			}
			defer st.Close()

			bs, err := st.GetBackupSettings()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("dir") {
				bs.BackupDirectory = strings.TrimSpace(dir)
			}
			if cmd.Flags().Changed("max") {
				bs.MaxBackups = max
			}
			if cmd.Flags().Changed("auto") {
				bs.AutoBackupEnabled = auto
			}
			if cmd.Flags().Changed("interval") {
				bs.AutoBackupInterval = interval
			}

			if bs.MaxBackups <= 0 {
				return fmt.Errorf("max backups must be positive")
			}
			if bs.AutoBackupInterval <= 0 {
				return fmt.Errorf("auto backup interval must be positive")
			}
			if bs.BackupDirectory != "" && backup.InsideInstallDir(bs.BackupDirectory) {
				return fmt.Errorf("cannot use the installation directory as backup location")
			}

			if err := st.SetBackupSettings(bs); err != nil {
				return err
			}
			return writeBackupSettings(bs)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "backup directory")
	cmd.Flags().IntVar(&max, "max", 0, "maximum number of archives to keep")
	cmd.Flags().BoolVar(&auto, "auto", false, "enable automatic backups")
	cmd.Flags().IntVar(&interval, "interval", 0, "automatic backup interval in minutes")
	return cmd
}
