package server

const (
	// Validation (1xxx)
	ErrCodeInvalidArgument = 1000
	ErrCodeInvalidJSON     = 1001
	ErrCodeRequestTooLarge = 1002
	ErrCodeInvalidName     = 1003
	ErrCodeMissingRequired = 1004

	// Domain state (2xxx)
	ErrCodeImageNotFound      = 2001
	ErrCodeBackupNotFound     = 2002
	ErrCodeLegacyFileNotFound = 2003
	ErrCodeHashMismatch       = 2101

	// Configuration (3xxx)
	ErrCodeBackupDirNotConfigured = 3001
	ErrCodeBackupDirRejected      = 3002

	// Internal/system (4xxx)
	ErrCodeInternal       = 4001
	ErrCodeStoreFailure   = 4002
	ErrCodeArchiveCorrupt = 4003
)

func defaultErrorCodeByStatus(status int) int {
	switch status {
	case 400:
		return ErrCodeInvalidArgument
	case 404:
		return ErrCodeImageNotFound
	case 409:
		return ErrCodeBackupDirRejected
	case 422:
		return ErrCodeHashMismatch
	case 500:
		return ErrCodeInternal
	default:
		return 0
	}
}
