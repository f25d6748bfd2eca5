package config

// StorageConfig selects where registered webhooks are kept
type StorageConfig struct {
	Driver     string `json:"driver,omitempty" yaml:"driver,omitempty" validate:"omitempty,oneof=memory sqlite"`
	SQLitePath string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty" validate:"required_if=Driver sqlite"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Driver:     DefaultStorageDriver,
		SQLitePath: DefaultStorageSQLitePath,
	}
}
