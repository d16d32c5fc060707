package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/annapclub/clarity-bot/types"
)

// MemoryStore keeps users and events in process memory behind the same
// interfaces as PostgresStore. It backs local runs without a database and
// the handler tests. Nothing survives a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[int64]*types.User
	events []types.Event
	nextID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[int64]*types.User),
		nextID: 1,
	}
}

func (s *MemoryStore) UpsertUser(user types.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := s.users[user.UserID]; ok {
		existing.Username = strings.TrimSpace(user.Username)
		existing.FirstName = strings.TrimSpace(user.FirstName)
		existing.LastName = strings.TrimSpace(user.LastName)
		existing.LastSeen = now
		return nil
	}
	s.users[user.UserID] = &types.User{
		UserID:    user.UserID,
		Username:  strings.TrimSpace(user.Username),
		FirstName: strings.TrimSpace(user.FirstName),
		LastName:  strings.TrimSpace(user.LastName),
		FirstSeen: now,
		LastSeen:  now,
	}
	return nil
}

func (s *MemoryStore) GetUser(userID int64) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *MemoryStore) HasBeenOffered(userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return false, nil
	}
	return u.ConsentShown, nil
}

func (s *MemoryStore) MarkOffered(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureUser(userID).ConsentShown = true
	return nil
}

func (s *MemoryStore) SetSubscribed(userID int64, subscribed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.ensureUser(userID)
	u.Subscribed = subscribed
	u.LastSeen = time.Now().UTC()
	return nil
}

func (s *MemoryStore) IsSubscribed(userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return false, nil
	}
	return u.Subscribed, nil
}

func (s *MemoryStore) AllSubscribedIDs() ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0)
	for id, u := range s.users {
		if u.Subscribed {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *MemoryStore) UnsubscribeAll() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, u := range s.users {
		if u.Subscribed {
			u.Subscribed = false
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) CountUsers() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

func (s *MemoryStore) CountSubscribed() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, u := range s.users {
		if u.Subscribed {
			n++
		}
	}
	return n, nil
}

// ensureUser must be called with the write lock held.
func (s *MemoryStore) ensureUser(userID int64) *types.User {
	if u, ok := s.users[userID]; ok {
		return u
	}
	now := time.Now().UTC()
	u := &types.User{UserID: userID, FirstSeen: now, LastSeen: now}
	s.users[userID] = u
	return u
}

func (s *MemoryStore) Append(userID int64, eventType string, ts time.Time, meta string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, types.Event{
		ID:     s.nextID,
		UserID: userID,
		Type:   eventType,
		TS:     ts.UTC(),
		Meta:   meta,
	})
	s.nextID++
	return nil
}

func (s *MemoryStore) LastEvent(userID int64, eventType string) (*types.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.events) - 1; i >= 0; i-- {
		e := s.events[i]
		if e.UserID == userID && e.Type == eventType {
			copied := e
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CountDistinctUsers(eventType string, from, to time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[int64]struct{})
	for _, e := range s.events {
		if !inWindow(e.TS, from, to) {
			continue
		}
		if eventType != "" && e.Type != eventType {
			continue
		}
		seen[e.UserID] = struct{}{}
	}
	return int64(len(seen)), nil
}

func (s *MemoryStore) CountEvents(eventType string, from, to time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, e := range s.events {
		if e.Type == eventType && inWindow(e.TS, from, to) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Export(from, to time.Time) ([]types.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Event, 0)
	for _, e := range s.events {
		if inWindow(e.TS, from, to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func inWindow(ts, from, to time.Time) bool {
	return !ts.Before(from) && ts.Before(to)
}

// MemorySessionStore is the SessionStore counterpart of MemoryStore, used
// when Redis is not configured.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*types.Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[int64]*types.Session)}
}

func (s *MemorySessionStore) GetSession(userID int64) (*types.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *MemorySessionStore) SaveSession(session *types.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	copied := *session
	copied.UpdatedAt = now
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = now
	}
	s.sessions[session.UserID] = &copied
	return nil
}
