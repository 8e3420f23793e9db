// Package server exposes the persistence core over HTTP: the image-serving
// protocol behind litepad:// URLs, and the command surface the frontend
// calls for saves, migrations, backups and settings.
package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"litepad/internal/blobstore"
	"litepad/internal/settings"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 60 * time.Second
	writeTimeout      = 120 * time.Second
	idleTimeout       = 60 * time.Second
)

// Server wraps HTTP handlers for the litepad persistence API.
type Server struct {
	addr    string
	version string
	images  *ImageService
	backups *BackupService
	store   *blobstore.Store
	logger  *slog.Logger
}

// New creates a new server instance.
func New(addr string, store *blobstore.Store, settingsStore *settings.Store, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		addr:    addr,
		version: version,
		images:  NewImageService(store),
		backups: NewBackupService(store, settingsStore, logger),
		store:   store,
		logger:  logger,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.log().Info("starting server", "addr", s.addr, "images", s.store.Root())
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return server.ListenAndServe()
}

// ListenAddr converts a base API URL into a listen address.
func ListenAddr(apiURL string) (string, error) {
	if apiURL == "" {
		return "", fmt.Errorf("api url is required")
	}
	u, err := url.Parse(apiURL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid api url %q", apiURL)
	}
	host, port, err := net.SplitHostPort(u.Host)
	if err != nil {
		return "", fmt.Errorf("api url %q must include a port", apiURL)
	}
	return net.JoinHostPort(host, port), nil
}

func (s *Server) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
