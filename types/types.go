package types

import "time"

type User struct {
	UserID       int64
	Username     string
	FirstName    string
	LastName     string
	FirstSeen    time.Time
	LastSeen     time.Time
	Subscribed   bool
	ConsentShown bool
}

// Event is an append-only audit record. Rows are never updated or
// deleted; the insertion id is the total order, timestamps may collide.
type Event struct {
	ID     int64     `json:"id"`
	UserID int64     `json:"user_id"`
	Type   string    `json:"event_type"`
	TS     time.Time `json:"ts"`
	Meta   string    `json:"meta,omitempty"`
}

type Session struct {
	UserID    int64     `json:"user_id"`
	ChatID    int64     `json:"chat_id"`
	State     ChatState `json:"state"`
	Topic     string    `json:"topic,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserStore interface {
	UpsertUser(user User) error
	GetUser(userID int64) (*User, error)

	HasBeenOffered(userID int64) (bool, error)
	MarkOffered(userID int64) error

	SetSubscribed(userID int64, subscribed bool) error
	IsSubscribed(userID int64) (bool, error)
	AllSubscribedIDs() ([]int64, error)
	UnsubscribeAll() (int64, error)

	CountUsers() (int64, error)
	CountSubscribed() (int64, error)
}

// EventLog is append-only. eventType is an open string set: Append never
// validates it, queries filter on it verbatim ("" means any type where noted).
type EventLog interface {
	Append(userID int64, eventType string, ts time.Time, meta string) error
	LastEvent(userID int64, eventType string) (*Event, error)
	CountDistinctUsers(eventType string, from, to time.Time) (int64, error)
	CountEvents(eventType string, from, to time.Time) (int64, error)
	Export(from, to time.Time) ([]Event, error)
}

type SessionStore interface {
	GetSession(userID int64) (*Session, error)
	SaveSession(session *Session) error
}
