package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"litepad/internal/blobstore"
	"litepad/internal/config"
)

func newImagesCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images",
		Short: "Manage the content-addressed image store",
	}

	cmd.AddCommand(
		newImagesAddCmd(cfg),
		newImagesMigrateCmd(cfg),
		newImagesCheckCmd(cfg),
		newImagesPathCmd(cfg),
	)
	return cmd
}

func openBlobStore(cfg *config.Config) (*blobstore.Store, error) {
	return blobstore.New(cfg.ImagesRoot())
}

func newImagesAddCmd(cfg *config.Config) *cobra.Command {
	var ext string

	cmd := &cobra.Command{
		Use:   "add <file>...",
		Short: "Store images and print their digests and URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openBlobStore(cfg)
			if err != nil {
				return err
			}
			for _, file := range args {
				content, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				fileExt := ext
				if fileExt == "" {
					fileExt = filepath.Ext(file)
				}
				desc, err := store.Save(content, fileExt)
				if err != nil {
					return err
				}
				if err := writeDescriptor(desc); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ext, "ext", "", "file extension override (default: from each file name)")
	return cmd
}

func newImagesMigrateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate <path>...",
		Short: "Copy legacy image files into the store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openBlobStore(cfg)
			if err != nil {
				return err
			}
			for _, path := range args {
				result, err := store.Migrate(path)
				if err != nil {
					return fmt.Errorf("migrate %s: %w", path, err)
				}
				if err := writeMigrateResult(result); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newImagesCheckCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>...",
		Short: "Report which of the given files still exist on disk",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exists := blobstore.CheckExisting(args)
			if !textOutput() {
				return writeStructured(exists)
			}
			for i, path := range args {
				marker := "missing"
				if exists[i] {
					marker = "exists"
				}
				if err := writePlain("%s\t%s\n", marker, path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newImagesPathCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "path <name>",
		Short: "Print the on-disk path of a stored image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimPrefix(args[0], blobstore.URLPrefix)
			hash, ext, err := blobstore.SplitName(name)
			if err != nil {
				return err
			}

			store, err := openBlobStore(cfg)
			if err != nil {
				return err
			}
			path, err := store.Path(hash, ext)
			if err != nil {
				return err
			}
			return writePlain("%s\n", path)
		},
	}
}
