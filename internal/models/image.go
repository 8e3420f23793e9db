package models

// BlobDescriptor is returned for every successful image save. The hash is
// the lowercase hex SHA-256 of the content and doubles as the storage key.
type BlobDescriptor struct {
	Hash string `json:"hash"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
	Ext  string `json:"ext"`
}

// MigrateResult describes a legacy path-addressed image after ingestion
// into the content-addressed store.
type MigrateResult struct {
	Hash   string `json:"hash"`
	Ext    string `json:"ext"`
	Size   int64  `json:"size"`
	NewURL string `json:"new_url"`
}
