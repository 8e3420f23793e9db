package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check and info.
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /v1/info", s.handleInfo)

	// Image serving; this is what litepad://images/{name} resolves to.
	mux.HandleFunc("GET /images/{name}", s.handleServeImage)

	// Image store operations.
	mux.HandleFunc("POST /v1/images", s.handleSaveImage)
	mux.HandleFunc("POST /v1/images/verified", s.handleSaveVerifiedImage)
	mux.HandleFunc("GET /v1/images/{name}/meta", s.handleImageMeta)
	mux.HandleFunc("POST /v1/images/migrate", s.handleMigrateImage)
	mux.HandleFunc("POST /v1/images/check", s.handleCheckImages)

	// Backups.
	mux.HandleFunc("POST /v1/backups", s.handleCreateBackup)
	mux.HandleFunc("GET /v1/backups", s.handleListBackups)
	mux.HandleFunc("POST /v1/backups/{filename}/restore", s.handleRestoreBackup)
	mux.HandleFunc("DELETE /v1/backups/{filename}", s.handleDeleteBackup)
	mux.HandleFunc("POST /v1/backups/validate-path", s.handleValidateBackupPath)

	// Backup settings.
	mux.HandleFunc("GET /v1/settings/backup", s.handleGetBackupSettings)
	mux.HandleFunc("PUT /v1/settings/backup", s.handlePutBackupSettings)

	return s.withRequestLogging(mux)
}
