package store

import (
	"errors"
	"testing"
	"time"

	"github.com/annapclub/clarity-bot/types"
)

func TestMemoryStoreUsers(t *testing.T) {
	s := NewMemoryStore()

	if _, err := s.GetUser(1); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}

	if err := s.UpsertUser(types.User{UserID: 1, Username: "first", FirstName: "A"}); err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}
	if err := s.UpsertUser(types.User{UserID: 1, Username: "renamed", FirstName: "A"}); err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}

	u, err := s.GetUser(1)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if u.Username != "renamed" {
		t.Fatalf("Username = %q, want the upserted value", u.Username)
	}
	if u.FirstSeen.IsZero() || u.LastSeen.Before(u.FirstSeen) {
		t.Fatalf("bad seen timestamps: first=%v last=%v", u.FirstSeen, u.LastSeen)
	}
}

func TestMemoryStoreConsentFlag(t *testing.T) {
	s := NewMemoryStore()

	offered, err := s.HasBeenOffered(1)
	if err != nil {
		t.Fatalf("HasBeenOffered failed: %v", err)
	}
	if offered {
		t.Fatal("an unknown user must read as not yet offered")
	}

	if err := s.MarkOffered(1); err != nil {
		t.Fatalf("MarkOffered failed: %v", err)
	}
	offered, err = s.HasBeenOffered(1)
	if err != nil {
		t.Fatalf("HasBeenOffered failed: %v", err)
	}
	if !offered {
		t.Fatal("MarkOffered must stick")
	}
}

func TestMemoryStoreSubscriptions(t *testing.T) {
	s := NewMemoryStore()

	for _, id := range []int64{3, 1, 2} {
		if err := s.SetSubscribed(id, true); err != nil {
			t.Fatalf("SetSubscribed failed: %v", err)
		}
	}
	if err := s.SetSubscribed(2, false); err != nil {
		t.Fatalf("SetSubscribed failed: %v", err)
	}

	ids, err := s.AllSubscribedIDs()
	if err != nil {
		t.Fatalf("AllSubscribedIDs failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Fatalf("AllSubscribedIDs = %v, want [1 3] in ascending order", ids)
	}

	n, err := s.UnsubscribeAll()
	if err != nil {
		t.Fatalf("UnsubscribeAll failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("UnsubscribeAll = %d, want 2", n)
	}
	count, err := s.CountSubscribed()
	if err != nil {
		t.Fatalf("CountSubscribed failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("CountSubscribed = %d after mass opt-out, want 0", count)
	}
}

func TestMemoryStoreEvents(t *testing.T) {
	s := NewMemoryStore()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	if err := s.Append(1, types.EventDraw, base, "money:1"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := s.Append(1, types.EventDraw, base.Add(time.Hour), "money:2"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := s.Append(2, types.EventStart, base.Add(2*time.Hour), ""); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	last, err := s.LastEvent(1, types.EventDraw)
	if err != nil {
		t.Fatalf("LastEvent failed: %v", err)
	}
	if last == nil || last.Meta != "money:2" {
		t.Fatalf("LastEvent = %+v, want the most recent draw", last)
	}

	none, err := s.LastEvent(2, types.EventDraw)
	if err != nil {
		t.Fatalf("LastEvent failed: %v", err)
	}
	if none != nil {
		t.Fatalf("LastEvent for a user without draws = %+v, want nil", none)
	}

	// Window is from-inclusive, to-exclusive.
	events, err := s.Export(base, base.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Export returned %d events, want 2", len(events))
	}
	if events[0].ID >= events[1].ID {
		t.Fatal("Export must keep insertion order")
	}

	n, err := s.CountDistinctUsers("", base, base.Add(3*time.Hour))
	if err != nil {
		t.Fatalf("CountDistinctUsers failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("CountDistinctUsers = %d, want 2", n)
	}
}

func TestMemorySessionStore(t *testing.T) {
	s := NewMemorySessionStore()

	if _, err := s.GetSession(1); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("got %v, want ErrSessionNotFound", err)
	}

	if err := s.SaveSession(&types.Session{UserID: 1, ChatID: 1, State: types.StateWelcomed}); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	session, err := s.GetSession(1)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if session.State != types.StateWelcomed || session.CreatedAt.IsZero() {
		t.Fatalf("unexpected session: %+v", session)
	}

	session.State = types.StateTopicMenu
	if err := s.SaveSession(session); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	reloaded, err := s.GetSession(1)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if reloaded.State != types.StateTopicMenu {
		t.Fatalf("state = %q, want %q", reloaded.State, types.StateTopicMenu)
	}
}
