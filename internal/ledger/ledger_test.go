package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/annapclub/clarity-bot/store"
	"github.com/annapclub/clarity-bot/types"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestEventLedgerNeverDrawn(t *testing.T) {
	l := NewEventLedger(store.NewMemoryStore())

	ok, _, err := l.CanDraw(42, baseTime)
	if err != nil {
		t.Fatalf("CanDraw failed: %v", err)
	}
	if !ok {
		t.Fatal("expected a user with no draw history to be eligible")
	}
}

func TestEventLedgerCooldownBoundary(t *testing.T) {
	events := store.NewMemoryStore()
	if err := events.Append(42, types.EventDraw, baseTime, "money:3"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	l := NewEventLedger(events)

	ok, retryAt, err := l.CanDraw(42, baseTime.Add(Cooldown-time.Second))
	if err != nil {
		t.Fatalf("CanDraw failed: %v", err)
	}
	if ok {
		t.Fatal("expected ineligible one second before the cooldown elapses")
	}
	if want := baseTime.Add(Cooldown); !retryAt.Equal(want) {
		t.Fatalf("retryAt = %v, want %v", retryAt, want)
	}

	ok, _, err = l.CanDraw(42, baseTime.Add(Cooldown))
	if err != nil {
		t.Fatalf("CanDraw failed: %v", err)
	}
	if !ok {
		t.Fatal("expected eligible exactly when the cooldown elapses")
	}
}

func TestEventLedgerIgnoresOtherUsersAndEvents(t *testing.T) {
	events := store.NewMemoryStore()
	if err := events.Append(1, types.EventDraw, baseTime, "think:1"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := events.Append(2, types.EventTopic, baseTime, "money"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	l := NewEventLedger(events)

	ok, _, err := l.CanDraw(2, baseTime.Add(time.Minute))
	if err != nil {
		t.Fatalf("CanDraw failed: %v", err)
	}
	if !ok {
		t.Fatal("another user's draw or a non-draw event must not lock user 2")
	}
}

func TestFileLedgerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	l, err := NewFileLedger(path)
	if err != nil {
		t.Fatalf("NewFileLedger failed: %v", err)
	}

	ok, _, err := l.CanDraw(7, baseTime)
	if err != nil {
		t.Fatalf("CanDraw failed: %v", err)
	}
	if !ok {
		t.Fatal("expected eligible before any draw is recorded")
	}

	if err := l.RecordDraw(7, baseTime); err != nil {
		t.Fatalf("RecordDraw failed: %v", err)
	}

	ok, retryAt, err := l.CanDraw(7, baseTime.Add(time.Hour))
	if err != nil {
		t.Fatalf("CanDraw failed: %v", err)
	}
	if ok {
		t.Fatal("expected ineligible immediately after a draw")
	}
	if want := baseTime.Add(Cooldown); !retryAt.Equal(want) {
		t.Fatalf("retryAt = %v, want %v", retryAt, want)
	}

	// A fresh instance must see the same lock.
	reopened, err := NewFileLedger(path)
	if err != nil {
		t.Fatalf("NewFileLedger failed: %v", err)
	}
	ok, _, err = reopened.CanDraw(7, baseTime.Add(time.Hour))
	if err != nil {
		t.Fatalf("CanDraw failed: %v", err)
	}
	if ok {
		t.Fatal("expected the recorded draw to survive reopening")
	}
}

func TestFileLedgerCorruptFileReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	l, err := NewFileLedger(path)
	if err != nil {
		t.Fatalf("NewFileLedger failed: %v", err)
	}
	ok, _, err := l.CanDraw(7, baseTime)
	if err != nil {
		t.Fatalf("CanDraw failed: %v", err)
	}
	if !ok {
		t.Fatal("a corrupt usage file must read as empty, not lock everyone out")
	}
}

func TestFutureLastDrawStaysLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	l, err := NewFileLedger(path)
	if err != nil {
		t.Fatalf("NewFileLedger failed: %v", err)
	}

	// Clock moved backwards: last draw is ahead of now.
	if err := l.RecordDraw(7, baseTime.Add(time.Hour)); err != nil {
		t.Fatalf("RecordDraw failed: %v", err)
	}
	ok, retryAt, err := l.CanDraw(7, baseTime)
	if err != nil {
		t.Fatalf("CanDraw failed: %v", err)
	}
	if ok {
		t.Fatal("a future last-draw timestamp must not grant a draw")
	}
	if want := baseTime.Add(time.Hour + Cooldown); !retryAt.Equal(want) {
		t.Fatalf("retryAt = %v, want %v", retryAt, want)
	}
}
