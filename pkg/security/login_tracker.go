package security

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // Failed attempts before block
	AttemptWindow time.Duration // Window for counting attempts
	BlockDuration time.Duration // Block length once the limit is hit
}

// DefaultLoginTrackerConfig returns sensible defaults
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
	}
}

// LoginTracker counts failed login attempts per user identifier and enforces
// temporary blocks. Backed by Redis so the counters are shared across
// replicas; when no Redis client is supplied the tracker fails open.
type LoginTracker struct {
	client *goredis.Client
	config LoginTrackerConfig
	logger *Logger
}

func NewLoginTracker(client *goredis.Client, config LoginTrackerConfig, logger *Logger) *LoginTracker {
	if logger == nil {
		logger = NopLogger()
	}
	return &LoginTracker{client: client, config: config, logger: logger}
}

const (
	failLoginPrefix    = "fail:login:user:"
	blockedLoginPrefix = "blocked:login:user:"
)

// Atomic increment with TTL set on first write.
// KEYS[1] = counter key, ARGV[1] = TTL seconds. Returns the new count.
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

// IsBlocked reports whether the given user identifier is currently blocked.
func (lt *LoginTracker) IsBlocked(ctx context.Context, userID string) (bool, error) {
	if lt.client == nil {
		return false, nil
	}
	exists, err := lt.client.Exists(ctx, blockedLoginPrefix+userID).Result()
	if err != nil {
		// Redis trouble should not lock everyone out.
		return false, fmt.Errorf("login tracker: check block: %w", err)
	}
	return exists > 0, nil
}

// RecordFailure increments the failure counter and installs a block when the
// limit is reached. Returns whether the user is now blocked.
func (lt *LoginTracker) RecordFailure(ctx context.Context, userID string) (bool, error) {
	lt.logger.Event(EventLoginFailed, userID)
	if lt.client == nil {
		return false, nil
	}

	count, err := lt.client.Eval(ctx, incrWithTTLScript,
		[]string{failLoginPrefix + userID},
		int(lt.config.AttemptWindow.Seconds()),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("login tracker: record failure: %w", err)
	}

	if count < int64(lt.config.MaxAttempts) {
		return false, nil
	}

	if err := lt.client.Set(ctx, blockedLoginPrefix+userID, 1, lt.config.BlockDuration).Err(); err != nil {
		return false, fmt.Errorf("login tracker: set block: %w", err)
	}
	lt.logger.Event(EventLoginBlocked, userID,
		zap.Int64("failed_attempts", count),
		zap.Duration("block_duration", lt.config.BlockDuration),
	)
	return true, nil
}

// RecordSuccess clears the failure counter after a successful login.
func (lt *LoginTracker) RecordSuccess(ctx context.Context, userID string) {
	lt.logger.Event(EventLoginSucceeded, userID)
	if lt.client == nil {
		return
	}
	_ = lt.client.Del(ctx, failLoginPrefix+userID).Err()
}
