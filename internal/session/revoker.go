package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/erazemk/zaloga/internal/config"
	"github.com/erazemk/zaloga/internal/store"
)

// Revoker remembers session token IDs that were logged out before they
// expired.
type Revoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// SQLRevoker keeps revocations in the revoked_tokens table.
type SQLRevoker struct {
	DB *sql.DB
}

func (r *SQLRevoker) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	return store.RevokeSession(ctx, r.DB, jti, expiresAt)
}

func (r *SQLRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return store.IsSessionRevoked(ctx, r.DB, jti)
}

// RedisRevoker keeps revocations as Redis keys ("<prefix>:revoked:<jti>")
// that expire together with the token they revoke.
type RedisRevoker struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisRevoker returns a revoker storing keys under prefix.
func NewRedisRevoker(client redis.UniversalClient, prefix string) *RedisRevoker {
	return &RedisRevoker{client: client, prefix: prefix}
}

func (r *RedisRevoker) key(jti string) string {
	if r.prefix == "" {
		return "revoked:" + jti
	}
	return r.prefix + ":revoked:" + jti
}

func (r *RedisRevoker) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already expired, the token is rejected without a revocation entry.
		return nil
	}
	if err := r.client.Set(ctx, r.key(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoking session: %w", err)
	}
	return nil
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := r.client.Get(ctx, r.key(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking session revocation: %w", err)
	}
	return true, nil
}

// Close closes the underlying Redis client.
func (r *RedisRevoker) Close() error {
	return r.client.Close()
}

// NewRevoker builds the revoker selected by cfg. The returned close function
// releases backend connections and is never nil.
func NewRevoker(ctx context.Context, cfg config.SessionConfig, db *sql.DB) (Revoker, func() error, error) {
	switch cfg.Revocation {
	case "", config.RevocationSQLite:
		return &SQLRevoker{DB: db}, func() error { return nil }, nil
	case config.RevocationRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		r := NewRedisRevoker(client, cfg.Redis.Prefix)
		return r, r.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown revocation backend %q", cfg.Revocation)
	}
}
