package models

// BackupInfo describes one archive in the backup directory.
type BackupInfo struct {
	Filename  string `json:"filename"`
	CreatedAt int64  `json:"created_at"`
	Size      int64  `json:"size"`
}

// BackupSettings is the persisted backup configuration. The zero value is
// not meaningful; use DefaultBackupSettings.
type BackupSettings struct {
	BackupDirectory    string `json:"backup_directory,omitempty"`
	MaxBackups         int    `json:"max_backups"`
	AutoBackupEnabled  bool   `json:"auto_backup_enabled"`
	AutoBackupInterval int    `json:"auto_backup_interval"`
}

// Path validation error codes.
const (
	PathErrNoWritePermission = "NO_WRITE_PERMISSION"
	PathErrNotAccessible     = "PATH_NOT_ACCESSIBLE"
)

// PathValidation is the outcome of probing a candidate backup directory.
// A missing path whose parent is writable is still valid (creatable).
type PathValidation struct {
	IsValid    bool   `json:"is_valid"`
	Exists     bool   `json:"exists"`
	IsWritable bool   `json:"is_writable"`
	ErrorCode  string `json:"error_code,omitempty"`
}

// RetentionReport lists what a retention pass removed and what it could not.
type RetentionReport struct {
	Deleted []string `json:"deleted"`
	Failed  []string `json:"failed"`
}
