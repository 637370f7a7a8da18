// Package auth provides session-token issuance and the request guards that
// resolve a token back to its user.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found or expired")

// Session keys live under this prefix in Redis.
const sessionKeyPrefix = "auth_"

// SessionStore maps opaque session tokens to user ids with expiry. It is an
// injected capability so tests can substitute an in-memory store.
type SessionStore interface {
	Put(ctx context.Context, token, userID string) error
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *redisSessionStore) Put(ctx context.Context, token, userID string) error {
	return s.client.Set(ctx, sessionKeyPrefix+token, userID, s.ttl).Err()
}

func (s *redisSessionStore) Get(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	return userID, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}
