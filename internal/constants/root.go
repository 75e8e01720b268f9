package constants

const (
	AppName           = "momentum"
	DefaultConfigPath = "~/.config/momentum/momentum.db"
	Version           = "v0.3.0"

	// Keyring entries
	KeyringUserEntry     = "user-id"
	KeyringDatabaseEntry = "database-connection"

	// Storage keys for the local key-value store
	StorageKeyHabits      = "habits"
	StorageKeyReflections = "reflections"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "momentum-"

	// Server defaults
	DefaultServerPort = 5001
	DefaultServerAddr = "http://localhost:5001"
)
