package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// AdminSessionDuration is 7 days
	AdminSessionDuration = 7 * 24 * time.Hour
	// AdminSessionKeyPrefix is the Redis key prefix for admin sessions
	AdminSessionKeyPrefix = "admin_session:"
	// AdminToSessionKeyPrefix is the Redis key prefix for admin->session mapping
	AdminToSessionKeyPrefix = "admin_to_session:"
)

// SessionStore issues and resolves admin session tokens.
type SessionStore interface {
	Create(ctx context.Context, adminID uuid.UUID) (string, error)
	Validate(ctx context.Context, token string) (uuid.UUID, bool, error)
	Refresh(ctx context.Context, token string) error
	Invalidate(ctx context.Context, token string) error
}

type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

// Create stores a new session for an admin. An existing session for the
// same admin is invalidated first so the 7-day timer resets.
func (s *RedisSessionStore) Create(ctx context.Context, adminID uuid.UUID) (string, error) {
	_ = s.invalidateAdmin(ctx, adminID)

	token, err := newSessionToken()
	if err != nil {
		return "", err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, AdminSessionKeyPrefix+token, adminID.String(), AdminSessionDuration)
	pipe.Set(ctx, AdminToSessionKeyPrefix+adminID.String(), token, AdminSessionDuration)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return token, nil
}

// Validate returns the admin ID bound to token.
func (s *RedisSessionStore) Validate(ctx context.Context, token string) (uuid.UUID, bool, error) {
	if token == "" {
		return uuid.Nil, false, nil
	}

	adminIDStr, err := s.rdb.Get(ctx, AdminSessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}

	adminID, err := uuid.Parse(adminIDStr)
	if err != nil {
		return uuid.Nil, false, err
	}
	return adminID, true, nil
}

// Refresh extends the session expiration by 7 days from now.
func (s *RedisSessionStore) Refresh(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("session token is empty")
	}

	adminIDStr, err := s.rdb.Get(ctx, AdminSessionKeyPrefix+token).Result()
	if err != nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Expire(ctx, AdminSessionKeyPrefix+token, AdminSessionDuration)
	pipe.Expire(ctx, AdminToSessionKeyPrefix+adminIDStr, AdminSessionDuration)
	_, err = pipe.Exec(ctx)
	return err
}

// Invalidate removes a session and its admin mapping.
func (s *RedisSessionStore) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	sessionKey := AdminSessionKeyPrefix + token
	adminIDStr, err := s.rdb.Get(ctx, sessionKey).Result()
	if err == nil && adminIDStr != "" {
		_ = s.rdb.Del(ctx, AdminToSessionKeyPrefix+adminIDStr).Err()
	}
	return s.rdb.Del(ctx, sessionKey).Err()
}

func (s *RedisSessionStore) invalidateAdmin(ctx context.Context, adminID uuid.UUID) error {
	mappingKey := AdminToSessionKeyPrefix + adminID.String()

	token, err := s.rdb.Get(ctx, mappingKey).Result()
	if err == nil && token != "" {
		_ = s.rdb.Del(ctx, AdminSessionKeyPrefix+token).Err()
	}
	return s.rdb.Del(ctx, mappingKey).Err()
}

func newSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
