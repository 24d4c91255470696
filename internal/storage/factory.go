package storage

import (
	"context"
	"fmt"
	"strings"
)

const (
	EngineSQLite = "sqlite"
	EngineJSON   = "json"
)

// NewByEngine opens the store implementation named by engine at path.
func NewByEngine(ctx context.Context, engine, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineSQLite:
		return NewSQLiteStore(ctx, path)
	case EngineJSON:
		return NewJSONStore(path)
	default:
		return nil, fmt.Errorf("unsupported store engine: %q", engine)
	}
}
