package broadcast

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/annapclub/clarity-bot/internal/messages"
	"github.com/annapclub/clarity-bot/store"
	"github.com/annapclub/clarity-bot/types"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type recordingSender struct {
	mu      sync.Mutex
	sent    []int64
	texts   map[int64]string
	failFor map[int64]bool
}

func (r *recordingSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chatID, _ := params.ChatID.(int64)
	if r.failFor[chatID] {
		return nil, errors.New("blocked by user")
	}
	r.sent = append(r.sent, chatID)
	if r.texts == nil {
		r.texts = map[int64]string{}
	}
	r.texts[chatID] = params.Text
	return &models.Message{}, nil
}

func (r *recordingSender) sentCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func subscribe(t *testing.T, mem *store.MemoryStore, ids ...int64) {
	t.Helper()
	for _, id := range ids {
		if err := mem.UpsertUser(types.User{UserID: id}); err != nil {
			t.Fatalf("UpsertUser failed: %v", err)
		}
		if err := mem.SetSubscribed(id, true); err != nil {
			t.Fatalf("SetSubscribed failed: %v", err)
		}
	}
}

func TestRunJobSendsToSubscribersOnly(t *testing.T) {
	mem := store.NewMemoryStore()
	subscribe(t, mem, 1, 2, 3)
	if err := mem.UpsertUser(types.User{UserID: 4}); err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}
	if err := mem.UpsertUser(types.User{UserID: 5}); err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}

	sender := &recordingSender{}
	d := NewBroadcaster(mem, mem, sender, Config{})

	d.runJob(context.Background(), Job{ID: "job-1", Text: "Привет!", ReportChatID: 99})

	// 3 recipients plus the report to the owner chat.
	if len(sender.sent) != 4 {
		t.Fatalf("got %d sends, want 4 (3 recipients + report)", len(sender.sent))
	}
	for _, id := range []int64{1, 2, 3} {
		if sender.texts[id] != "Привет!" {
			t.Fatalf("subscriber %d got %q, want the broadcast text", id, sender.texts[id])
		}
	}
	if sender.texts[99] != messages.BroadcastReport(3, 0) {
		t.Fatalf("report = %q, want %q", sender.texts[99], messages.BroadcastReport(3, 0))
	}

	last, err := mem.LastEvent(99, types.EventBroadcast)
	if err != nil {
		t.Fatalf("LastEvent failed: %v", err)
	}
	if last == nil || last.Meta != "sent=3 errors=0" {
		t.Fatalf("broadcast event = %+v, want meta sent=3 errors=0", last)
	}
}

func TestRunJobCountsFailuresWithoutRetry(t *testing.T) {
	mem := store.NewMemoryStore()
	subscribe(t, mem, 1, 2, 3)

	sender := &recordingSender{failFor: map[int64]bool{2: true}}
	d := NewBroadcaster(mem, mem, sender, Config{})

	d.runJob(context.Background(), Job{ID: "job-2", Text: "hi", ReportChatID: 99})

	if sender.texts[99] != messages.BroadcastReport(2, 1) {
		t.Fatalf("report = %q, want %q", sender.texts[99], messages.BroadcastReport(2, 1))
	}
	for _, id := range sender.sent {
		if id == 2 {
			t.Fatal("a failed recipient must not be retried")
		}
	}
}

func TestEnqueueRejectsWhenFull(t *testing.T) {
	mem := store.NewMemoryStore()
	d := NewBroadcaster(mem, mem, &recordingSender{}, Config{})
	// Worker not started: the queue fills up.

	var err error
	for i := 0; i < cap(d.jobs)+1; i++ {
		err = d.Enqueue(fmt.Sprintf("msg %d", i), 99)
	}
	if err == nil {
		t.Fatal("expected Enqueue to fail once the queue is full")
	}
}

func TestStopCancelsInFlightDelay(t *testing.T) {
	mem := store.NewMemoryStore()
	subscribe(t, mem, 1, 2)

	sender := &recordingSender{}
	d := NewBroadcaster(mem, mem, sender, Config{Delay: time.Hour})
	d.Start()

	if err := d.Enqueue("slow", 0); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	// The first send needs no delay; the hour-long pause before the second
	// must not block shutdown.
	deadline := time.Now().Add(2 * time.Second)
	for sender.sentCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	done := make(chan struct{})
	go func() {
		d.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Stop did not return while a delay was pending")
	}
}
