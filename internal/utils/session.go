package utils

import (
	"context" // Context for Redis operations
	"errors"  // Error inspection
	"strconv" // User id encoding
	"time"    // Session lifetime

	"github.com/redis/go-redis/v9" // Redis client
)

// ErrSessionNotFound is returned for unknown, expired or revoked sessions
var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps issued token ids in Redis so logout can revoke them
type SessionStore struct {
	rdb *redis.Client // Redis client
}

// NewSessionStore builds a session store over rdb
func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func sessionKey(id string) string {
	return "session:" + id
}

// Create records session id for userID until ttl elapses
func (s *SessionStore) Create(ctx context.Context, id string, userID uint, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKey(id), strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

// Lookup returns the user owning session id
func (s *SessionStore) Lookup(ctx context.Context, id string) (uint, error) {
	val, err := s.rdb.Get(ctx, sessionKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrSessionNotFound // Revoked or expired
	} else if err != nil {
		return 0, err
	}
	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(userID), nil
}

// Revoke deletes session id
func (s *SessionStore) Revoke(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKey(id)).Err()
}
