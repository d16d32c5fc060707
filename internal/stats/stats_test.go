package stats

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/annapclub/clarity-bot/store"
	"github.com/annapclub/clarity-bot/types"
)

func TestCollect(t *testing.T) {
	mem := store.NewMemoryStore()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	for _, id := range []int64{1, 2, 3} {
		if err := mem.UpsertUser(types.User{UserID: id}); err != nil {
			t.Fatalf("UpsertUser failed: %v", err)
		}
	}
	if err := mem.SetSubscribed(2, true); err != nil {
		t.Fatalf("SetSubscribed failed: %v", err)
	}

	// Two users active this week, one long gone; one draw inside the
	// window and one outside.
	appendEvent(t, mem, 1, types.EventStart, now.Add(-time.Hour), "")
	appendEvent(t, mem, 1, types.EventDraw, now.Add(-time.Hour), "money:3")
	appendEvent(t, mem, 2, types.EventTopic, now.Add(-48*time.Hour), "think")
	appendEvent(t, mem, 3, types.EventDraw, now.Add(-30*24*time.Hour), "talent:1")

	s, err := Collect(mem, mem, now)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if s.TotalUsers != 3 {
		t.Errorf("TotalUsers = %d, want 3", s.TotalUsers)
	}
	if s.Subscribed != 1 {
		t.Errorf("Subscribed = %d, want 1", s.Subscribed)
	}
	if s.ActiveWeek != 2 {
		t.Errorf("ActiveWeek = %d, want 2", s.ActiveWeek)
	}
	if s.DrawsWeek != 1 {
		t.Errorf("DrawsWeek = %d, want 1", s.DrawsWeek)
	}
}

func TestExportCSV(t *testing.T) {
	mem := store.NewMemoryStore()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	appendEvent(t, mem, 1, types.EventStart, now.Add(-2*time.Hour), "")
	appendEvent(t, mem, 1, types.EventDraw, now.Add(-time.Hour), "money:3")
	appendEvent(t, mem, 2, types.EventDraw, now.Add(-40*24*time.Hour), "think:1")

	from := now.AddDate(0, 0, -30)
	data, count, err := ExportCSV(mem, from, now)
	if err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2 (the old event is outside the window)", count)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parsing exported CSV failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d CSV rows, want header + 2", len(records))
	}
	if records[0][0] != "id" || records[0][4] != "meta" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[2][2] != types.EventDraw || records[2][4] != "money:3" {
		t.Fatalf("unexpected last row: %v", records[2])
	}

	again, _, err := ExportCSV(mem, from, now)
	if err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Fatal("exporting an unchanged window twice must yield identical bytes")
	}
}

func appendEvent(t *testing.T, log types.EventLog, userID int64, eventType string, ts time.Time, meta string) {
	t.Helper()
	if err := log.Append(userID, eventType, ts, meta); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
}
