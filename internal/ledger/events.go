package ledger

import (
	"time"

	"github.com/annapclub/clarity-bot/types"
)

// EventLedger derives the lock from the event log: the user's most recent
// "draw" event is the last-draw timestamp. Lock state and audit trail live
// in one store, so they cannot disagree.
type EventLedger struct {
	events types.EventLog
}

func NewEventLedger(events types.EventLog) *EventLedger {
	return &EventLedger{events: events}
}

func (l *EventLedger) CanDraw(userID int64, now time.Time) (bool, time.Time, error) {
	last, err := l.events.LastEvent(userID, types.EventDraw)
	if err != nil {
		return false, time.Time{}, err
	}
	if last == nil {
		return true, time.Time{}, nil
	}
	ok, retryAt := eligible(last.TS, now)
	return ok, retryAt, nil
}

// RecordDraw is a no-op: the "draw" event the dialogue controller appends
// for every successful draw is the authoritative record.
func (l *EventLedger) RecordDraw(userID int64, now time.Time) error {
	return nil
}
