package server

import (
	"errors"
	"fmt"
	"strings"

	"litepad/internal/blobstore"
	"litepad/internal/models"
)

// ImageService orchestrates blob store access for the handlers and the CLI.
// It owns no state beyond the store handle; the store's root directory is
// the single source of truth for what exists.
type ImageService struct {
	store *blobstore.Store
}

// NewImageService constructs an ImageService.
func NewImageService(store *blobstore.Store) *ImageService {
	return &ImageService{store: store}
}

// Save persists pasted image bytes and returns the descriptor.
func (s *ImageService) Save(content []byte, ext string) (models.BlobDescriptor, error) {
	var zero models.BlobDescriptor
	if len(content) == 0 {
		return zero, badRequestCode(errors.New("content is required"), ErrCodeMissingRequired)
	}
	if blobstore.NormalizeExt(ext) == "" {
		return zero, badRequestCode(errors.New("ext is required"), ErrCodeMissingRequired)
	}
	desc, err := s.store.Save(content, ext)
	if err != nil {
		if errors.Is(err, blobstore.ErrInvalidExt) {
			return zero, badRequestCode(err, ErrCodeInvalidName)
		}
		return zero, storeFailure(err)
	}
	return desc, nil
}

// SaveVerified persists downloaded image bytes after checking the digest
// the remote source claimed for them.
func (s *ImageService) SaveVerified(hash, ext string, content []byte) (string, error) {
	if strings.TrimSpace(hash) == "" {
		return "", badRequestCode(errors.New("hash is required"), ErrCodeMissingRequired)
	}
	if len(content) == 0 {
		return "", badRequestCode(errors.New("content is required"), ErrCodeMissingRequired)
	}

	path, err := s.store.SaveVerified(hash, ext, content)
	if err != nil {
		var mismatch *blobstore.HashMismatchError
		if errors.As(err, &mismatch) {
			return "", unprocessableCode(err, ErrCodeHashMismatch)
		}
		if errors.Is(err, blobstore.ErrInvalidExt) {
			return "", badRequestCode(err, ErrCodeInvalidName)
		}
		return "", storeFailure(err)
	}
	return path, nil
}

// Meta resolves a `{digest}{ext}` name to its lookup result.
func (s *ImageService) Meta(name string) (models.BlobDescriptor, string, error) {
	var zero models.BlobDescriptor
	hash, ext, err := blobstore.SplitName(name)
	if err != nil {
		return zero, "", badRequestCode(err, ErrCodeInvalidName)
	}
	path, err := s.store.Path(hash, ext)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return zero, "", notFoundCode(err, ErrCodeImageNotFound)
		}
		return zero, "", storeFailure(err)
	}
	return models.BlobDescriptor{
		Hash: hash,
		URL:  blobstore.URLPrefix + hash + ext,
		Ext:  ext,
	}, path, nil
}

// Read returns the raw bytes for a `{digest}{ext}` name.
func (s *ImageService) Read(name string) ([]byte, string, error) {
	hash, ext, err := blobstore.SplitName(name)
	if err != nil {
		return nil, "", badRequestCode(err, ErrCodeInvalidName)
	}
	content, err := s.store.Read(hash, ext)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, "", notFoundCode(err, ErrCodeImageNotFound)
		}
		return nil, "", storeFailure(err)
	}
	return content, ext, nil
}

// Migrate ingests one legacy path-addressed image.
func (s *ImageService) Migrate(oldPath string) (models.MigrateResult, error) {
	var zero models.MigrateResult
	if strings.TrimSpace(oldPath) == "" {
		return zero, badRequestCode(errors.New("old_path is required"), ErrCodeMissingRequired)
	}
	res, err := s.store.Migrate(oldPath)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return zero, notFoundCode(fmt.Errorf("legacy file not found: %s", oldPath), ErrCodeLegacyFileNotFound)
		}
		return zero, storeFailure(err)
	}
	return res, nil
}

// CheckExisting probes legacy paths, one result per input in input order.
func (s *ImageService) CheckExisting(paths []string) []bool {
	return blobstore.CheckExisting(paths)
}
