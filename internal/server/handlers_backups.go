package server

import (
	"net/http"

	"litepad/internal/api"
	"litepad/internal/models"
)

func (s *Server) handleCreateBackup(w http.ResponseWriter, r *http.Request) {
	var req api.BackupCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	info, report, err := s.backups.Perform(req.Data)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, api.BackupCreateResponse{
		Filename: info.Filename,
		Pruned:   report.Deleted,
		Failed:   report.Failed,
	})
}

func (s *Server) handleListBackups(w http.ResponseWriter, r *http.Request) {
	backups, err := s.backups.List()
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, backups)
}

func (s *Server) handleRestoreBackup(w http.ResponseWriter, r *http.Request) {
	filename := trimmedPathValue(r, "filename")

	snapshot, err := s.backups.Restore(filename)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.RestoreResponse{Data: snapshot})
}

func (s *Server) handleDeleteBackup(w http.ResponseWriter, r *http.Request) {
	filename := trimmedPathValue(r, "filename")

	if err := s.backups.Delete(filename); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleValidateBackupPath(w http.ResponseWriter, r *http.Request) {
	var req api.ValidatePathRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	result, err := s.backups.ValidatePath(req.Path)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetBackupSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.backups.Settings()
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handlePutBackupSettings(w http.ResponseWriter, r *http.Request) {
	var cfg models.BackupSettings
	if !s.decodeJSONReq(w, r, &cfg) {
		return
	}

	if err := s.backups.UpdateSettings(cfg); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cfg)
}
