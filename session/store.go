// Package session keeps the server side of login sessions. A session is
// created at login, looked up by the token held in the client cookie, and
// destroyed at logout or when its lifetime runs out.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"neighborhelp-backend/config"
	"neighborhelp-backend/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned for unknown and expired sessions alike
var ErrNotFound = errors.New("session not found")

// Store persists sessions keyed by token
type Store interface {
	Create(ctx context.Context, account models.AccountSnapshot) (*models.Session, error)
	Get(ctx context.Context, token string) (*models.Session, error)
	// Delete removes the session. Deleting an absent session is not an error.
	Delete(ctx context.Context, token string) error
}

// NewStore creates the store selected by cfg.Store. The redis client is only
// required for the redis backend.
func NewStore(cfg config.SessionConfig, client *redis.Client) (Store, error) {
	switch cfg.Store {
	case "memory", "":
		return NewMemoryStore(cfg.TTL), nil
	case "redis":
		if client == nil {
			return nil, errors.New("redis session store requires a redis client")
		}
		return NewRedisStore(client, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown session store: %s", cfg.Store)
	}
}

func newSession(account models.AccountSnapshot, now time.Time, ttl time.Duration) *models.Session {
	return &models.Session{
		Token:     uuid.NewString(),
		Account:   account,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}
