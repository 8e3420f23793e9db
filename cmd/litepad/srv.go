package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"litepad/internal/blobstore"
	"litepad/internal/config"
	"litepad/internal/server"
	"litepad/internal/settings"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Run the litepad persistence API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}

			logger := slog.Default().With("component", "server")

			addr, err := server.ListenAddr(cfg.APIURL)
			if err != nil {
				return err
			}

			logger.Info("opening image store", "path", cfg.ImagesRoot())
			bs, err := blobstore.New(cfg.ImagesRoot())
			if err != nil {
				return err
			}

			logger.Info("opening settings store", "path", cfg.SettingsDBPath())
			st, err := settings.Open(cfg.SettingsDBPath())
			if err != nil {
				return err
			}
			defer st.Close()

			srv := server.New(addr, bs, st, version, logger)
			return srv.ListenAndServe()
		},
	}
}
