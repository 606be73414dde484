package storage

import (
	"context"
	"fmt"
	"strings"
)

// Backends
const (
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config - откуда брать блобы сессии.
type Config struct {
	Backend     string
	Path        string // bolt
	RedisAddr   string // redis
	RedisPrefix string // redis
}

// Open создает BlobStore по конфигу.
func Open(ctx context.Context, cfg Config) (BlobStore, error) {
	switch strings.ToLower(cfg.Backend) {
	case BackendBolt, "":
		return OpenBolt(cfg.Path)
	case BackendRedis:
		return OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPrefix)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
