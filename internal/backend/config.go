package backend

import (
	"fmt"

	"finnexus/internal/config"
)

// FromAppConfig converts the application config to a primary backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}
	return configFor(appConfig, appConfig.DataBackend)
}

// MirrorFromAppConfig converts the application config to a mirror backend
// config. The worker replicates the primary store into this backend.
func MirrorFromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}
	if appConfig.MirrorBackend == "" {
		return Config{}, fmt.Errorf("no mirror backend configured")
	}
	return configFor(appConfig, appConfig.MirrorBackend)
}

func configFor(appConfig *config.Config, kind string) (Config, error) {
	backendType := BackendType(kind)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", kind)
	}

	return Config{
		Type:         backendType,
		SQLiteDBPath: appConfig.SQLiteDBPath,
		MySQLDSN:     appConfig.MySQLDSN,
	}, nil
}

// Validate validates the backend configuration.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case MySQLBackend:
		if c.MySQLDSN == "" {
			return fmt.Errorf("MySQL DSN is required for mysql backend")
		}
	case MemoryBackend:
		// No additional configuration required.
	}

	return nil
}

// GetBackendTypes returns all valid backend types.
func GetBackendTypes() []BackendType {
	return []BackendType{MemoryBackend, SQLiteBackend, MySQLBackend}
}
