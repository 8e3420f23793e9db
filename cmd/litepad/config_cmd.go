package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"litepad/internal/config"
)

func newConfigCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get or set configuration",
	}

	cmd.AddCommand(
		newConfigShowCmd(cfg),
		newConfigGetCmd(cfg),
		newConfigSetCmd(),
	)
	return cmd
}

func newConfigShowCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !textOutput() {
				return writeStructured(map[string]string{
					"data_dir":  cfg.DataDir,
					"api_url":   cfg.APIURL,
					"log_level": cfg.LogLevel,
				})
			}
			_ = writePlain("data_dir: %s\n", cfg.DataDir)
			_ = writePlain("api_url: %s\n", cfg.APIURL)
			_ = writePlain("log_level: %s\n", cfg.LogLevel)
			return nil
		},
	}
}

func newConfigGetCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a config value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !config.IsAllowedKey(key) {
				return fmt.Errorf("unknown key: %s (allowed: %v)", key, config.AllowedKeys())
			}
			value, err := cfg.Get(key)
			if err != nil {
				return err
			}
			return writePlain("%s\n", value)
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			path, err := config.GlobalPath()
			if err != nil {
				return err
			}
			return config.SetKey(path, key, value)
		},
	}
}
