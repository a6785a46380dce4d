// Package backend selects and constructs the persistence backend.
package backend

import (
	"fmt"
	"log/slog"

	"financeiro/internal/ports"
	"financeiro/internal/storage"
)

type Type string

const (
	SQLite Type = "sqlite"
	Memory Type = "memory"
)

func (t Type) IsValid() bool {
	return t == SQLite || t == Memory
}

// Config holds what backend construction needs.
type Config struct {
	Type         Type
	SQLiteDBPath string
}

// Open constructs the configured store. The memory backend exists for
// tests and throwaway runs; sqlite is the production default.
func Open(cfg Config) (ports.Store, error) {
	switch cfg.Type {
	case SQLite:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		slog.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
		return repo, nil
	case Memory:
		slog.Info("Initialized memory backend")
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}
}
