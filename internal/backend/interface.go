package backend

import (
	"context"

	"mealtrack/internal/persist"
)

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result contains the persistence adapter and an optional cleanup function.
type Result struct {
	Store   persist.Store
	Cleanup CleanupFunc
}

// Factory creates persistence backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string
}

// Type selects the persistence backend.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	}
	return false
}
