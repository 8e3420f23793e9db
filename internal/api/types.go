// Package api defines the request and response shapes of the litepad HTTP
// surface.
package api

// ErrorResponse is the error payload returned by all handlers.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// SaveVerifiedRequest carries an image downloaded from a remote source
// together with the digest the source claims for it.
type SaveVerifiedRequest struct {
	Hash    string `json:"hash"`
	Ext     string `json:"ext"`
	Content []byte `json:"content"`
}

// SaveVerifiedResponse returns the on-disk path of the verified image.
type SaveVerifiedResponse struct {
	Path string `json:"path"`
}

// ImageMetaResponse describes a stored image lookup.
type ImageMetaResponse struct {
	Exists bool   `json:"exists"`
	Path   string `json:"path,omitempty"`
	URL    string `json:"url,omitempty"`
}

// MigrateRequest names a legacy path-addressed image file to ingest.
type MigrateRequest struct {
	OldPath string `json:"old_path"`
}

// CheckImagesRequest lists legacy paths to probe for existence.
type CheckImagesRequest struct {
	Paths []string `json:"paths"`
}

// CheckImagesResponse reports one boolean per requested path, in order.
type CheckImagesResponse struct {
	Exists []bool `json:"exists"`
}

// BackupCreateRequest carries the opaque document snapshot to archive.
type BackupCreateRequest struct {
	Data string `json:"data"`
}

// BackupCreateResponse returns the archive filename and what retention
// removed alongside it.
type BackupCreateResponse struct {
	Filename string   `json:"filename"`
	Pruned   []string `json:"pruned,omitempty"`
	Failed   []string `json:"failed_to_prune,omitempty"`
}

// RestoreResponse returns the snapshot text extracted from an archive.
type RestoreResponse struct {
	Data string `json:"data"`
}

// ValidatePathRequest names a candidate backup directory.
type ValidatePathRequest struct {
	Path string `json:"path"`
}

// InfoResponse describes the running server.
type InfoResponse struct {
	Version   string `json:"version"`
	DataDir   string `json:"data_dir"`
	ImagesDir string `json:"images_dir"`
}
