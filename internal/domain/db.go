package domain

import "context"

// Database defines lifecycle operations for the backing store. Each
// implementation owns its own migration files and strategy, so the
// persistence layer is swappable without touching services or handlers.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
