package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"litepad/internal/blobstore"
	"litepad/internal/models"
	"litepad/internal/settings"
)

// newTestServer builds a server over temporary stores. The backup
// directory is left unconfigured; tests that need one call
// configureBackupDir.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	store, err := blobstore.New(filepath.Join(t.TempDir(), "images"))
	if err != nil {
		t.Fatalf("new blob store: %v", err)
	}
	settingsStore, err := settings.Open(filepath.Join(t.TempDir(), "litepad.db"))
	if err != nil {
		t.Fatalf("open settings store: %v", err)
	}
	t.Cleanup(func() { settingsStore.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New("127.0.0.1:0", store, settingsStore, "test", logger)
}

func configureBackupDir(t *testing.T, srv *Server, dir string) {
	t.Helper()
	err := srv.backups.settings.SetBackupSettings(models.BackupSettings{
		BackupDirectory:    dir,
		MaxBackups:         settings.DefaultMaxBackups,
		AutoBackupInterval: settings.DefaultAutoBackupInterval,
	})
	if err != nil {
		t.Fatalf("configure backup dir: %v", err)
	}
}

func doJSON(t *testing.T, srv *Server, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)
	return w
}

func decodeInto(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func TestHealthAndInfo(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", w.Code)
	}

	w = doJSON(t, srv, http.MethodGet, "/v1/info", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("info: expected 200, got %d", w.Code)
	}
	var info struct {
		Version   string `json:"version"`
		ImagesDir string `json:"images_dir"`
	}
	decodeInto(t, w, &info)
	if info.Version != "test" || info.ImagesDir == "" {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("http://127.0.0.1:7420")
	if err != nil {
		t.Fatalf("listen addr: %v", err)
	}
	if addr != "127.0.0.1:7420" {
		t.Fatalf("unexpected addr %q", addr)
	}

	if _, err := ListenAddr(""); err == nil {
		t.Fatal("expected error for empty url")
	}
	if _, err := ListenAddr("http://127.0.0.1"); err == nil {
		t.Fatal("expected error for url without port")
	}
}
