package server

import (
	"errors"
	"net/http"

	"litepad/internal/api"
	"litepad/internal/blobstore"
)

const imageUploadMaxBody = 100 << 20 // 100 MiB

// Content types served for stored extensions. Anything unknown falls back
// to application/octet-stream.
var imageContentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".bmp":  "image/bmp",
}

// Content-addressed names change iff the content changes, so clients may
// cache responses forever.
const imageCacheControl = "public, max-age=31536000, immutable"

func contentTypeForExt(ext string) string {
	if ct, ok := imageContentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// handleServeImage is the resolver behind litepad://images/{name}. Misses
// are a plain 404 with an empty body: the frontend treats a broken image
// reference as a rendering concern, not an API error.
func (s *Server) handleServeImage(w http.ResponseWriter, r *http.Request) {
	name := trimmedPathValue(r, "name")

	hash, ext, err := blobstore.SplitName(name)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	content, err := s.images.store.Read(hash, ext)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		s.log().Error("serve image", "name", name, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeForExt(ext))
	w.Header().Set("Cache-Control", imageCacheControl)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		s.log().Debug("write image response", "name", name, "error", err)
	}
}

func (s *Server) handleSaveImage(w http.ResponseWriter, r *http.Request) {
	ext := r.URL.Query().Get("ext")

	content, err := readBody(w, r, imageUploadMaxBody)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	desc, err := s.images.Save(content, ext)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, desc)
}

func (s *Server) handleSaveVerifiedImage(w http.ResponseWriter, r *http.Request) {
	var req api.SaveVerifiedRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	path, err := s.images.SaveVerified(req.Hash, req.Ext, req.Content)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, api.SaveVerifiedResponse{Path: path})
}

func (s *Server) handleImageMeta(w http.ResponseWriter, r *http.Request) {
	name := trimmedPathValue(r, "name")

	desc, path, err := s.images.Meta(name)
	if err != nil {
		if httpStatusFromError(err) == http.StatusNotFound {
			s.writeJSON(w, http.StatusOK, api.ImageMetaResponse{Exists: false})
			return
		}
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.ImageMetaResponse{Exists: true, Path: path, URL: desc.URL})
}

func (s *Server) handleMigrateImage(w http.ResponseWriter, r *http.Request) {
	var req api.MigrateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	res, err := s.images.Migrate(req.OldPath)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCheckImages(w http.ResponseWriter, r *http.Request) {
	var req api.CheckImagesRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	s.writeJSON(w, http.StatusOK, api.CheckImagesResponse{Exists: s.images.CheckExisting(req.Paths)})
}
