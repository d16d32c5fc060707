// Package broadcast delivers owner newsletters to subscribed users outside
// the request-handling path, so a long send loop never blocks other users'
// updates.
package broadcast

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/annapclub/clarity-bot/internal/messages"
	"github.com/annapclub/clarity-bot/types"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

type Job struct {
	ID           string
	Text         string
	ReportChatID int64
}

type Config struct {
	// Delay between consecutive sends, to stay under Telegram's outbound
	// rate limit. Zero means no pause.
	Delay time.Duration
}

type Broadcaster struct {
	users   types.UserStore
	events  types.EventLog
	sender  Sender
	delay   time.Duration
	jobs    chan Job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

func NewBroadcaster(users types.UserStore, events types.EventLog, sender Sender, config Config) *Broadcaster {
	ctx, cancel := context.WithCancel(context.Background())

	return &Broadcaster{
		users:  users,
		events: events,
		sender: sender,
		delay:  config.Delay,
		jobs:   make(chan Job, 4),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (d *Broadcaster) Start() {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.mu.Unlock()

	d.wg.Add(1)
	go d.worker()
	log.Println("Broadcast dispatcher started")
}

func (d *Broadcaster) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	d.mu.Unlock()

	d.cancel()
	d.wg.Wait()
	log.Println("Broadcast dispatcher stopped")
}

// Enqueue hands off a broadcast without blocking; a full queue is reported
// back so the owner can retry later.
func (d *Broadcaster) Enqueue(text string, reportChatID int64) error {
	job := Job{
		ID:           uuid.NewString(),
		Text:         text,
		ReportChatID: reportChatID,
	}
	select {
	case d.jobs <- job:
		return nil
	default:
		return fmt.Errorf("broadcast queue is full")
	}
}

func (d *Broadcaster) worker() {
	defer d.wg.Done()

	for {
		select {
		case <-d.ctx.Done():
			return
		case job := <-d.jobs:
			d.runJob(d.ctx, job)
		}
	}
}

// runJob sends to every subscribed user sequentially, pausing between
// sends. Individual failures are counted, not retried.
func (d *Broadcaster) runJob(ctx context.Context, job Job) {
	ids, err := d.users.AllSubscribedIDs()
	if err != nil {
		log.Printf("Broadcast %s: failed to list recipients: %v", job.ID, err)
		d.report(ctx, job, 0, 0)
		return
	}

	sent := 0
	failed := 0
	for i, userID := range ids {
		if i > 0 && d.delay > 0 {
			select {
			case <-ctx.Done():
				log.Printf("Broadcast %s: cancelled after %d sends", job.ID, sent)
				return
			case <-time.After(d.delay):
			}
		}

		// Private chats share the user's id.
		_, err := d.sender.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    userID,
			Text:      job.Text,
			ParseMode: messages.ParseModeHTML,
		})
		if err != nil {
			log.Printf("Broadcast %s: send to %d failed: %v", job.ID, userID, err)
			failed++
			continue
		}
		sent++
	}

	log.Printf("Broadcast %s finished: sent=%d errors=%d", job.ID, sent, failed)
	if err := d.events.Append(job.ReportChatID, types.EventBroadcast, time.Now().UTC(), fmt.Sprintf("sent=%d errors=%d", sent, failed)); err != nil {
		log.Printf("Broadcast %s: failed to append event: %v", job.ID, err)
	}
	d.report(ctx, job, sent, failed)
}

func (d *Broadcaster) report(ctx context.Context, job Job, sent, failed int) {
	if job.ReportChatID == 0 {
		return
	}
	_, err := d.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    job.ReportChatID,
		Text:      messages.BroadcastReport(sent, failed),
		ParseMode: messages.ParseModeHTML,
	})
	if err != nil {
		log.Printf("Broadcast %s: failed to deliver report: %v", job.ID, err)
	}
}
