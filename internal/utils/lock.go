package utils

import (
	"context" // Context for Redis operations
	"errors"  // Sentinel errors
	"time"    // Lock lifetime

	"github.com/google/uuid"       // Lock ownership tokens
	"github.com/redis/go-redis/v9" // Redis client
)

// ErrLocked is returned when another holder owns the lock
var ErrLocked = errors.New("resource is locked")

// releaseScript deletes the key only when it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker hands out short-lived advisory locks stored in Redis
type Locker struct {
	rdb *redis.Client // Redis client
	ttl time.Duration // Upper bound on how long a crashed holder blocks others
}

// NewLocker builds a locker over rdb
func NewLocker(rdb *redis.Client, ttl time.Duration) *Locker {
	return &Locker{rdb: rdb, ttl: ttl}
}

// Acquire takes the lock on key or returns ErrLocked. The returned func releases it.
func (l *Locker) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()                               // Ownership token
	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result() // Try to take the lock
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLocked // Someone else holds it
	}
	return func() {
		// Release with a fresh context so a cancelled request still frees the lock
		_ = releaseScript.Run(context.Background(), l.rdb, []string{key}, token).Err()
	}, nil
}
