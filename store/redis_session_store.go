package store

import (
	"fmt"
	"time"

	"github.com/annapclub/clarity-bot/types"
)

// RedisSessionStore keeps the per-user dialogue state (current menu, chosen
// topic) between updates. One update is processed at a time per user, so
// get-then-save needs no locking here.
type RedisSessionStore struct {
	client *RedisClient
	ttl    time.Duration
}

func NewRedisSessionStore(redisClient *RedisClient, ttlHours int) *RedisSessionStore {
	ttl := time.Duration(ttlHours) * time.Hour
	if ttlHours <= 0 {
		ttl = 24 * time.Hour
	}

	return &RedisSessionStore{
		client: redisClient,
		ttl:    ttl,
	}
}

func (s *RedisSessionStore) GetSession(userID int64) (*types.Session, error) {
	key := s.client.generateKey("session", fmt.Sprintf("%d", userID))
	var session types.Session
	if err := s.client.Get(key, &session); err != nil {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *RedisSessionStore) SaveSession(session *types.Session) error {
	if session == nil {
		return fmt.Errorf("nil session")
	}
	session.UpdatedAt = time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = session.UpdatedAt
	}
	key := s.client.generateKey("session", fmt.Sprintf("%d", session.UserID))
	return s.client.Set(key, session, s.ttl)
}
