package backend

import (
	"context"

	"finnexus/internal/store"
)

// Backend bundles the persistence ports a running service needs.
type Backend interface {
	store.TransactionStore
	store.TaxSettingStore
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// BackendResult contains the backend instance and optional cleanup function.
type BackendResult struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// MySQL specific
	MySQLDSN string
}

// BackendType represents the type of backend.
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
	MySQLBackend  BackendType = "mysql"
)

func (t BackendType) String() string {
	return string(t)
}

// IsValid checks whether the backend type is supported.
func (t BackendType) IsValid() bool {
	switch t {
	case MemoryBackend, SQLiteBackend, MySQLBackend:
		return true
	}
	return false
}
