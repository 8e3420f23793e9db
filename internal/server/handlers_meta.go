package server

import (
	"net/http"
	"path/filepath"

	"litepad/internal/api"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	imagesDir := s.store.Root()
	s.writeJSON(w, http.StatusOK, api.InfoResponse{
		Version:   s.version,
		DataDir:   filepath.Dir(imagesDir),
		ImagesDir: imagesDir,
	})
}
