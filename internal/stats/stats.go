// Package stats derives the owner-facing numbers from the user table and
// the event log. The event log is the sole source: nothing here keeps
// counters of its own.
package stats

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/annapclub/clarity-bot/types"
)

const activeWindow = 7 * 24 * time.Hour

type Summary struct {
	TotalUsers int64 `json:"total_users"`
	Subscribed int64 `json:"subscribed"`
	ActiveWeek int64 `json:"active_week"`
	DrawsWeek  int64 `json:"draws_week"`
}

func Collect(users types.UserStore, events types.EventLog, now time.Time) (Summary, error) {
	var s Summary
	var err error

	if s.TotalUsers, err = users.CountUsers(); err != nil {
		return Summary{}, fmt.Errorf("count users: %w", err)
	}
	if s.Subscribed, err = users.CountSubscribed(); err != nil {
		return Summary{}, fmt.Errorf("count subscribed: %w", err)
	}
	weekAgo := now.Add(-activeWindow)
	if s.ActiveWeek, err = events.CountDistinctUsers("", weekAgo, now); err != nil {
		return Summary{}, fmt.Errorf("count active: %w", err)
	}
	if s.DrawsWeek, err = events.CountEvents(types.EventDraw, weekAgo, now); err != nil {
		return Summary{}, fmt.Errorf("count draws: %w", err)
	}
	return s, nil
}

// ExportCSV renders the events of a window in insertion order. Querying an
// unchanged window twice yields byte-identical output.
func ExportCSV(events types.EventLog, from, to time.Time) ([]byte, int, error) {
	rows, err := events.Export(from, to)
	if err != nil {
		return nil, 0, fmt.Errorf("export events: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "user_id", "event_type", "ts", "meta"}); err != nil {
		return nil, 0, err
	}
	for _, e := range rows {
		record := []string{
			strconv.FormatInt(e.ID, 10),
			strconv.FormatInt(e.UserID, 10),
			e.Type,
			e.TS.UTC().Format(time.RFC3339),
			e.Meta,
		}
		if err := w.Write(record); err != nil {
			return nil, 0, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), len(rows), nil
}
