package blobstore

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"litepad/internal/models"
)

// URLPrefix is the scheme-qualified locator prefix handed back in place of
// filesystem paths, so documents stay portable across machines.
const URLPrefix = "litepad://images/"

// DefaultExt is assumed when a caller cannot supply an extension.
const DefaultExt = ".png"

var blobNameRegex = regexp.MustCompile(`^[0-9a-f]{64}(\.[0-9a-z]+)?$`)

// extRegex is the extension half of blobNameRegex. Writes and reads accept
// exactly the same names, so nothing a caller supplies can address a path
// outside the store root.
var extRegex = regexp.MustCompile(`^\.[0-9a-z]+$`)

// ErrNotFound reports a blob that is not present in the store.
var ErrNotFound = errors.New("image not found")

// ErrInvalidExt reports an extension that is not a simple `.suffix`.
var ErrInvalidExt = errors.New("invalid image extension")

// HashMismatchError reports content whose recomputed digest disagrees with
// the digest claimed by the caller. The store is left untouched.
type HashMismatchError struct {
	Expected string
	Actual   string
}

func (e *HashMismatchError) Error() string {
	return fmt.Sprintf("hash mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// Store keeps image blobs in a single flat directory, named by the
// lowercase hex SHA-256 of their content plus the original extension.
// Identical content always maps to the same filename, so saves are
// idempotent and duplicates are free.
type Store struct {
	root string
}

// New creates a store rooted at root, creating the directory if needed.
func New(root string) (*Store, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("blob store root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create blob store root: %w", err)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute store directory.
func (s *Store) Root() string {
	return s.root
}

// Save writes content under its digest-derived filename and returns the
// descriptor. An existing file with the same digest and extension is
// trusted without rewriting; two saves of identical content are a single
// blob on disk.
func (s *Store) Save(content []byte, ext string) (models.BlobDescriptor, error) {
	var zero models.BlobDescriptor
	if s == nil {
		return zero, fmt.Errorf("blob store is not configured")
	}

	digest := Digest(content)
	ext = NormalizeExt(ext)
	if ext != "" && !extRegex.MatchString(ext) {
		return zero, fmt.Errorf("%w: %q", ErrInvalidExt, ext)
	}
	name := digest + ext
	path := filepath.Join(s.root, name)

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return zero, fmt.Errorf("stat %s: %w", name, err)
		}
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return zero, fmt.Errorf("write %s: %w", name, err)
		}
	}

	return models.BlobDescriptor{
		Hash: digest,
		URL:  URLPrefix + name,
		Size: int64(len(content)),
		Ext:  ext,
	}, nil
}

// SaveVerified stores content claimed to have the given digest, as received
// from an untrusted remote source. The digest is recomputed before any
// write; on disagreement nothing is written and a *HashMismatchError is
// returned. On match it behaves like Save and returns the on-disk path.
func (s *Store) SaveVerified(hash, ext string, content []byte) (string, error) {
	if s == nil {
		return "", fmt.Errorf("blob store is not configured")
	}

	actual := Digest(content)
	if actual != strings.ToLower(strings.TrimSpace(hash)) {
		return "", &HashMismatchError{Expected: hash, Actual: actual}
	}

	desc, err := s.Save(content, ext)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, desc.Hash+desc.Ext), nil
}

// Exists reports whether the blob is present. No side effects.
func (s *Store) Exists(hash, ext string) bool {
	if s == nil {
		return false
	}
	_, err := os.Stat(filepath.Join(s.root, hash+NormalizeExt(ext)))
	return err == nil
}

// Path returns the absolute on-disk path of a stored blob, or ErrNotFound.
func (s *Store) Path(hash, ext string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("blob store is not configured")
	}
	name := hash + NormalizeExt(ext)
	path := filepath.Join(s.root, name)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return "", fmt.Errorf("stat %s: %w", name, err)
	}
	return path, nil
}

// Read returns the blob content, or ErrNotFound when absent.
func (s *Store) Read(hash, ext string) ([]byte, error) {
	path, err := s.Path(hash, ext)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return content, nil
}

// Digest returns the lowercase hex SHA-256 of content.
func Digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// NormalizeExt lowercases an extension and guarantees a leading dot, so
// ".PNG" and "png" address the same blob.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// SplitName splits a `{digest}{ext}` blob filename. It rejects anything
// that is not a bare 64-hex name with an optional simple extension, which
// also keeps path traversal out of the serving layer.
func SplitName(name string) (hash, ext string, err error) {
	if !blobNameRegex.MatchString(name) {
		return "", "", fmt.Errorf("invalid image name %q", name)
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i], name[i:], nil
	}
	return name, "", nil
}
