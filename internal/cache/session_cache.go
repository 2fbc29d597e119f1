package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"govmaturity/internal/engine"
)

// SessionCache holds the serialized state machine of each in-flight
// assessment. One session per run; the cache is the handoff point between
// stateless HTTP requests.
type SessionCache interface {
	Set(ctx context.Context, session *engine.Session) error
	Get(ctx context.Context, assessmentID string) (*engine.Session, error)
	Delete(ctx context.Context, assessmentID string) error
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a new session cache
func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *sessionCache) key(assessmentID string) string {
	return "assessment:" + assessmentID + ":session"
}

func (c *sessionCache) Set(ctx context.Context, session *engine.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(session.ID), data, c.ttl).Err()
}

func (c *sessionCache) Get(ctx context.Context, assessmentID string) (*engine.Session, error) {
	data, err := c.client.Get(ctx, c.key(assessmentID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session engine.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *sessionCache) Delete(ctx context.Context, assessmentID string) error {
	return c.client.Del(ctx, c.key(assessmentID)).Err()
}
