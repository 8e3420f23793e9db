package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"litepad/internal/models"
)

func TestValidatePathExistingWritable(t *testing.T) {
	dir := t.TempDir()

	got := ValidatePath(dir)
	want := models.PathValidation{IsValid: true, Exists: true, IsWritable: true}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	// The probe file must not survive the check.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".litepad_write_test_") {
			t.Fatalf("stray probe file %q left behind", e.Name())
		}
	}
}

func TestValidatePathCreatable(t *testing.T) {
	got := ValidatePath(filepath.Join(t.TempDir(), "backups"))
	want := models.PathValidation{IsValid: true, Exists: false, IsWritable: true}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestValidatePathParentMissing(t *testing.T) {
	got := ValidatePath(filepath.Join(t.TempDir(), "no", "such", "parent"))
	want := models.PathValidation{
		IsValid:    false,
		Exists:     false,
		IsWritable: false,
		ErrorCode:  models.PathErrNotAccessible,
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestValidatePathEmpty(t *testing.T) {
	want := models.PathValidation{
		IsValid:    false,
		Exists:     false,
		IsWritable: false,
		ErrorCode:  models.PathErrNotAccessible,
	}
	for _, path := range []string{"", "   "} {
		if got := ValidatePath(path); got != want {
			t.Fatalf("ValidatePath(%q) = %+v, want %+v", path, got, want)
		}
	}
}

func TestValidatePathExistingFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got := ValidatePath(file)
	if got.IsValid || !got.Exists || got.IsWritable {
		t.Fatalf("a plain file is not a usable backup directory: %+v", got)
	}
	if got.ErrorCode != models.PathErrNoWritePermission {
		t.Fatalf("expected %s, got %q", models.PathErrNoWritePermission, got.ErrorCode)
	}
}

func TestInsideInstallDir(t *testing.T) {
	exe, err := os.Executable()
	if err != nil {
		t.Skipf("executable path unavailable: %v", err)
	}
	exeDir := filepath.Dir(exe)

	if !InsideInstallDir(exeDir) {
		t.Fatal("install directory itself must be rejected")
	}
	if !InsideInstallDir(filepath.Join(exeDir, "nested", "deeper")) {
		t.Fatal("paths nested in the install directory must be rejected")
	}
	if InsideInstallDir(t.TempDir()) {
		t.Fatal("unrelated directory wrongly flagged")
	}
}

func TestPathWithin(t *testing.T) {
	root := filepath.Join("/opt", "litepad")
	cases := []struct {
		path string
		want bool
	}{
		{filepath.Join("/opt", "litepad"), true},
		{filepath.Join("/opt", "litepad", "data"), true},
		{filepath.Join("/opt", "litepad-2"), false},
		{filepath.Join("/opt"), false},
		{filepath.Join("/opt", "litepad", "..", "other"), false},
	}
	for _, c := range cases {
		if got := pathWithin(root, c.path); got != c.want {
			t.Fatalf("pathWithin(%q, %q) = %v, want %v", root, c.path, got, c.want)
		}
	}
}
