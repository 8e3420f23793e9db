package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"litepad/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var (
		outputFmt string
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:   "litepad",
		Short: "Litepad manages local note attachments and backups",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			warning, err := configureLoggerForCLI(logLevel, cfg.LogLevel)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(os.Stderr, warning)
			}
			return setOutputFormat(outputFmt)
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().StringVar(&outputFmt, "format", "text", "output format: text, json or yaml")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	cmd.AddCommand(
		newSrvCmd(cfg),
		newImagesCmd(cfg),
		newBackupCmd(cfg),
		newSettingsCmd(cfg),
		newConfigCmd(cfg),
	)

	return cmd
}
