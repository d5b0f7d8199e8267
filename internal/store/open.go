package store

import (
	"context"
	"strings"
)

// Backend names the store implementation Open selects for a database URL.
func Backend(databaseURL string) string {
	switch {
	case databaseURL == "":
		return "memory"
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return "postgres"
	default:
		return "sqlite"
	}
}

// Open picks a store implementation from the database URL.
func Open(ctx context.Context, databaseURL string) (Store, error) {
	switch Backend(databaseURL) {
	case "memory":
		return NewMemoryStore(), nil
	case "postgres":
		return NewPostgresStore(ctx, databaseURL)
	default:
		return NewSQLiteStore(ctx, strings.TrimPrefix(databaseURL, "sqlite://"))
	}
}
