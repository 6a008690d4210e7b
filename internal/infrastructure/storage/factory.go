package storage

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Backend identifies a storage implementation
type Backend string

const (
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
)

// Config selects and configures a storage backend
type Config struct {
	Backend Backend
	// Dir is the state directory for the file backend
	Dir string
	// Path is the database file for the sqlite backend
	Path string
	// Redis configures the redis backend
	Redis RedisConfig
}

// New creates the configured Store. An unset backend defaults to file
// storage, which matches the single-terminal deployment the storefront
// started with.
func New(cfg Config, logger *zap.Logger) (Store, error) {
	switch Backend(strings.ToLower(string(cfg.Backend))) {
	case BackendFile, "":
		dir := cfg.Dir
		if dir == "" {
			dir = ".foodcheq"
		}
		return NewFileStore(dir, logger)
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		path := cfg.Path
		if path == "" {
			path = "foodcheq.db"
		}
		return NewSQLiteStore(path)
	case BackendRedis:
		return NewRedisStore(cfg.Redis, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
