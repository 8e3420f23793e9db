package blobstore

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testStore creates a temporary store for testing.
func testStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(filepath.Join(t.TempDir(), "images"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return st
}

func TestSaveDeterministicDigest(t *testing.T) {
	st := testStore(t)

	desc, err := st.Save([]byte{0x01, 0x02, 0x03}, ".png")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	// SHA-256 of {0x01,0x02,0x03} is fixed across runs and platforms.
	const want = "039058c6f2c0cb492c533b0a4d14ef77cc0f78abccced5287d84a1a2011cfb81"
	if desc.Hash != want {
		t.Fatalf("expected digest %s, got %s", want, desc.Hash)
	}
	if desc.URL != URLPrefix+want+".png" {
		t.Fatalf("unexpected url %q", desc.URL)
	}
	if desc.Size != 3 {
		t.Fatalf("expected size 3, got %d", desc.Size)
	}
	if desc.Ext != ".png" {
		t.Fatalf("expected ext .png, got %q", desc.Ext)
	}
}

func TestSaveIdempotent(t *testing.T) {
	st := testStore(t)
	content := []byte("same bytes")

	first, err := st.Save(content, ".PNG")
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := st.Save(content, "png")
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	if first != second {
		t.Fatalf("expected identical descriptors, got %#v vs %#v", first, second)
	}

	entries, err := os.ReadDir(st.Root())
	if err != nil {
		t.Fatalf("read root: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one blob file, got %d", len(entries))
	}
	if entries[0].Name() != first.Hash+".png" {
		t.Fatalf("unexpected blob filename %q", entries[0].Name())
	}
}

func TestSaveDoesNotRewriteExisting(t *testing.T) {
	st := testStore(t)
	content := []byte("immutable")

	desc, err := st.Save(content, ".png")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	path := filepath.Join(st.Root(), desc.Hash+desc.Ext)

	// Tamper with the stored file; a redundant save must not touch it.
	if err := os.WriteFile(path, []byte("tampered"), 0o644); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if _, err := st.Save(content, ".png"); err != nil {
		t.Fatalf("redundant save: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "tampered" {
		t.Fatal("existing blob file was rewritten")
	}
}

func TestSaveRejectsUnsafeExt(t *testing.T) {
	base := t.TempDir()
	st, err := New(filepath.Join(base, "data", "images"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	for _, bad := range []string{
		"../../../escaped.png",
		".png/../../escaped.png",
		"..png",
		".png ignored",
		".png\x00",
	} {
		if _, err := st.Save([]byte("owned"), bad); !errors.Is(err, ErrInvalidExt) {
			t.Fatalf("Save with ext %q: expected ErrInvalidExt, got %v", bad, err)
		}
	}
	if _, err := st.SaveVerified(Digest([]byte("owned")), "../../../escaped.png", []byte("owned")); !errors.Is(err, ErrInvalidExt) {
		t.Fatalf("SaveVerified: expected ErrInvalidExt, got %v", err)
	}

	// Nothing may be written, inside the root or above it.
	entries, err := os.ReadDir(st.Root())
	if err != nil {
		t.Fatalf("read root: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("store must stay empty, found %d entries", len(entries))
	}
	for _, escaped := range []string{
		filepath.Join(base, "escaped.png"),
		filepath.Join(base, "data", "escaped.png"),
	} {
		if _, err := os.Stat(escaped); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("file escaped the store root: %s", escaped)
		}
	}
}

func TestSaveVerifiedMismatch(t *testing.T) {
	st := testStore(t)
	content := []byte("downloaded bytes")
	claimed := strings.Repeat("de", 32)

	_, err := st.SaveVerified(claimed, ".png", content)
	var mismatch *HashMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected HashMismatchError, got %v", err)
	}
	if mismatch.Expected != claimed {
		t.Fatalf("expected claimed digest in error, got %q", mismatch.Expected)
	}
	if mismatch.Actual != Digest(content) {
		t.Fatalf("expected actual digest in error, got %q", mismatch.Actual)
	}

	entries, err := os.ReadDir(st.Root())
	if err != nil {
		t.Fatalf("read root: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("store must stay empty after mismatch, found %d entries", len(entries))
	}
}

func TestSaveVerifiedMatch(t *testing.T) {
	st := testStore(t)
	content := []byte("downloaded bytes")

	path, err := st.SaveVerified(Digest(content), ".png", content)
	if err != nil {
		t.Fatalf("save verified: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Fatal("stored bytes differ from input")
	}

	// Idempotent on repeat, like a plain save.
	again, err := st.SaveVerified(Digest(content), ".png", content)
	if err != nil {
		t.Fatalf("repeat save verified: %v", err)
	}
	if again != path {
		t.Fatalf("expected same path, got %q vs %q", again, path)
	}
}

func TestExistsPathRead(t *testing.T) {
	st := testStore(t)
	content := []byte("lookup me")

	desc, err := st.Save(content, ".webp")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if !st.Exists(desc.Hash, ".webp") {
		t.Fatal("expected blob to exist")
	}
	if st.Exists(desc.Hash, ".png") {
		t.Fatal("different extension must be a different blob")
	}

	path, err := st.Path(desc.Hash, ".webp")
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Fatalf("expected absolute path, got %q", path)
	}

	got, err := st.Read(desc.Hash, ".webp")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Fatal("read bytes differ from saved content")
	}
}

func TestPathNotFound(t *testing.T) {
	st := testStore(t)

	_, err := st.Path(strings.Repeat("ab", 32), ".png")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err = st.Read(strings.Repeat("ab", 32), ".png")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from read, got %v", err)
	}
}

func TestSplitName(t *testing.T) {
	digest := Digest([]byte("x"))

	hash, ext, err := SplitName(digest + ".jpeg")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if hash != digest || ext != ".jpeg" {
		t.Fatalf("unexpected split %q / %q", hash, ext)
	}

	hash, ext, err = SplitName(digest)
	if err != nil {
		t.Fatalf("split bare digest: %v", err)
	}
	if hash != digest || ext != "" {
		t.Fatalf("unexpected bare split %q / %q", hash, ext)
	}

	for _, bad := range []string{
		"",
		"short.png",
		"../" + digest + ".png",
		digest + "/x.png",
		strings.ToUpper(digest) + ".png",
	} {
		if _, _, err := SplitName(bad); err == nil {
			t.Fatalf("expected rejection of %q", bad)
		}
	}
}

func TestNormalizeExt(t *testing.T) {
	cases := map[string]string{
		".png": ".png",
		"png":  ".png",
		".PNG": ".png",
		" jpg": ".jpg",
		"":     "",
	}
	for in, want := range cases {
		if got := NormalizeExt(in); got != want {
			t.Fatalf("NormalizeExt(%q) = %q, want %q", in, got, want)
		}
	}
}
