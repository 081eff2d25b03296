package token

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:token:"

// RedisBlacklist is a Revoker backed by a shared Redis instance, so a token
// revoked on one service replica is rejected by all of them. Keys expire
// with the token itself; no sweep loop is needed because Redis handles TTL
// eviction.
type RedisBlacklist struct {
	client *goredis.Client
}

func NewRedisBlacklist(client *goredis.Client) *RedisBlacklist {
	return &RedisBlacklist{client: client}
}

// Raw tokens are not stored in Redis; a digest is enough for membership
// checks and keeps credentials out of the keyspace.
func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revokedKeyPrefix + hex.EncodeToString(sum[:])
}

func (r *RedisBlacklist) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already expired: the codec rejects it anyway.
		return nil
	}
	return r.client.Set(ctx, revokedKey(token), 1, ttl).Err()
}

func (r *RedisBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
