package handlers

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/annapclub/clarity-bot/internal/messages"
	"github.com/annapclub/clarity-bot/internal/stats"
	"github.com/annapclub/clarity-bot/types"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// isOwner gates the admin commands by Telegram handle. Unauthorized callers
// get a fixed refusal and no side effects.
func (bh *Handlers) isOwner(update *models.Update) bool {
	owner := strings.TrimSpace(bh.cfg.OwnerUsername)
	if owner == "" {
		return false
	}
	if update == nil || update.Message == nil || update.Message.From == nil {
		return false
	}
	return strings.EqualFold("@"+update.Message.From.Username, owner)
}

func (bh *Handlers) handleStats(ctx context.Context, update *models.Update, session *types.Session) {
	if !bh.isOwner(update) {
		bh.sendText(ctx, session.ChatID, messages.OwnerOnly(), nil)
		return
	}
	summary, err := stats.Collect(bh.users, bh.events, nowUTC())
	if err != nil {
		log.Printf("Error collecting stats: %v", err)
		bh.sendText(ctx, session.ChatID, messages.ErrorDefault(), nil)
		return
	}
	bh.sendText(ctx, session.ChatID, messages.Stats(summary.TotalUsers, summary.Subscribed, summary.ActiveWeek, summary.DrawsWeek), nil)
}

func (bh *Handlers) handleExport(ctx context.Context, update *models.Update, session *types.Session, args []string) {
	if !bh.isOwner(update) {
		bh.sendText(ctx, session.ChatID, messages.OwnerOnly(), nil)
		return
	}

	days := 30
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			days = n
		}
	}

	now := nowUTC()
	data, count, err := stats.ExportCSV(bh.events, now.AddDate(0, 0, -days), now)
	if err != nil {
		log.Printf("Error exporting events: %v", err)
		bh.sendText(ctx, session.ChatID, messages.ErrorDefault(), nil)
		return
	}
	if count == 0 {
		bh.sendText(ctx, session.ChatID, messages.ExportEmpty(), nil)
		return
	}

	_, err = bh.sender.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID: session.ChatID,
		Document: &models.InputFileUpload{
			Filename: fmt.Sprintf("events_%s.csv", now.Format("20060102")),
			Data:     bytes.NewReader(data),
		},
		Caption: fmt.Sprintf("События за %d дн., записей: %d", days, count),
	})
	if err != nil {
		log.Printf("Error sending export document: %v", err)
		bh.sendText(ctx, session.ChatID, messages.ErrorDefault(), nil)
	}
}

func (bh *Handlers) handleBroadcast(ctx context.Context, update *models.Update, session *types.Session, text string) {
	if !bh.isOwner(update) {
		bh.sendText(ctx, session.ChatID, messages.OwnerOnly(), nil)
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		bh.sendText(ctx, session.ChatID, messages.BroadcastUsage(), nil)
		return
	}
	if bh.broadcaster == nil {
		bh.sendText(ctx, session.ChatID, messages.ErrorDefault(), nil)
		return
	}

	recipients, err := bh.users.CountSubscribed()
	if err != nil {
		log.Printf("Error counting broadcast recipients: %v", err)
		bh.sendText(ctx, session.ChatID, messages.ErrorDefault(), nil)
		return
	}
	if err := bh.broadcaster.Enqueue(text, session.ChatID); err != nil {
		bh.sendText(ctx, session.ChatID, messages.BroadcastBusy(), nil)
		return
	}
	bh.sendText(ctx, session.ChatID, messages.BroadcastQueued(int(recipients)), nil)
}

func (bh *Handlers) handleUnsubscribeAll(ctx context.Context, update *models.Update, session *types.Session) {
	if !bh.isOwner(update) {
		bh.sendText(ctx, session.ChatID, messages.OwnerOnly(), nil)
		return
	}
	n, err := bh.users.UnsubscribeAll()
	if err != nil {
		log.Printf("Error unsubscribing all: %v", err)
		bh.sendText(ctx, session.ChatID, messages.ErrorDefault(), nil)
		return
	}
	bh.logEvent(session.UserID, types.EventUnsubscribe, fmt.Sprintf("all:%d", n))
	bh.sendText(ctx, session.ChatID, messages.UnsubscribedAll(n), nil)
}
