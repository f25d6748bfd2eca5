package config

const (
	// ConfigPathEnv names the environment variable consulted when no -config flag is given.
	ConfigPathEnv = "DISCORD_WEBHOOK_CONFIG_PATH"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// HTTP client Defaults
	DefaultHTTPTimeoutSecs         = 10
	DefaultHTTPMaxIdleConns        = 20
	DefaultHTTPMaxIdleConnsPerHost = 4
	DefaultHTTPEnableHTTP2         = true

	// Storage Defaults
	StorageDriverMemory        = "memory"
	StorageDriverSQLite        = "sqlite"
	DefaultStorageDriver       = StorageDriverMemory
	DefaultStorageSQLitePath   = "database/webhooks.db"
	DefaultBroadcastConcurrent = 4

	// maxConfigFileSize caps how much of a config file is read.
	maxConfigFileSize = 10 * 1024 * 1024
)
