// Package redis owns the go-redis client lifecycle for session-scoped stores.
package redis

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectFromEnv dials Redis using REDIS_ADDR (plus optional REDIS_PASSWORD and
// REDIS_DB) and returns the client with a cleanup function. When REDIS_ADDR is
// missing or the server does not answer a ping, it logs and returns nil so
// callers fall back to in-memory stores.
func ConnectFromEnv(ctx context.Context, logger *slog.Logger) (*redis.Client, func()) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		if logger != nil {
			logger.Warn("REDIS_ADDR not set, falling back to in-memory session stores")
		}
		return nil, func() {}
	}
	db := 0
	if raw := strings.TrimSpace(os.Getenv("REDIS_DB")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			db = parsed
		}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		if logger != nil {
			logger.Warn("failed to ping redis, falling back to in-memory session stores", slog.String("error", err.Error()))
		}
		_ = client.Close()
		return nil, func() {}
	}
	if logger != nil {
		logger.Info("redis connection established", slog.String("addr", addr))
	}
	return client, func() { _ = client.Close() }
}
