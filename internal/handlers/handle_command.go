package handlers

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/annapclub/clarity-bot/internal/messages"
	"github.com/annapclub/clarity-bot/types"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func (bh *Handlers) HandleCommand(ctx context.Context, update *models.Update, session *types.Session) {
	if update == nil || update.Message == nil {
		return
	}
	fields := strings.Fields(strings.TrimSpace(update.Message.Text))
	if len(fields) == 0 {
		return
	}
	cmd := fields[0]
	if strings.Contains(cmd, "@") {
		cmd = strings.SplitN(cmd, "@", 2)[0]
	}

	switch cmd {
	case "/start":
		bh.handleStart(ctx, update, session)
	case "/subscribe":
		if err := bh.users.SetSubscribed(session.UserID, true); err != nil {
			log.Printf("Error subscribing user %d: %v", session.UserID, err)
			bh.sendText(ctx, session.ChatID, messages.ErrorDefault(), nil)
			return
		}
		bh.logEvent(session.UserID, types.EventSubscribe, "manual")
		bh.saveState(session, types.StateConsentResolved)
		bh.sendText(ctx, session.ChatID, messages.Subscribed(), nil)
	case "/unsubscribe":
		if err := bh.users.SetSubscribed(session.UserID, false); err != nil {
			log.Printf("Error unsubscribing user %d: %v", session.UserID, err)
			bh.sendText(ctx, session.ChatID, messages.ErrorDefault(), nil)
			return
		}
		bh.logEvent(session.UserID, types.EventUnsubscribe, "manual")
		bh.saveState(session, types.StateConsentResolved)
		bh.sendText(ctx, session.ChatID, messages.Unsubscribed(), nil)
	case "/stats":
		bh.handleStats(ctx, update, session)
	case "/export":
		bh.handleExport(ctx, update, session, fields[1:])
	case "/broadcast":
		bh.handleBroadcast(ctx, update, session, strings.TrimSpace(strings.TrimPrefix(update.Message.Text, fields[0])))
	case "/unsubscribe_all":
		bh.handleUnsubscribeAll(ctx, update, session)
	default:
		bh.sendText(ctx, session.ChatID, messages.ErrorUnknownCommand(), nil)
	}
}

func (bh *Handlers) handleStart(ctx context.Context, update *models.Update, session *types.Session) {
	bh.logEvent(session.UserID, types.EventStart, "")

	bh.sendWelcome(ctx, session.ChatID)
	bh.saveState(session, types.StateWelcomed)

	// The newsletter invitation is shown exactly once per user, no matter
	// how many times they /start.
	offered, err := bh.users.HasBeenOffered(session.UserID)
	if err != nil {
		log.Printf("Error reading consent flag for user %d: %v", session.UserID, err)
		return
	}
	if offered {
		return
	}
	if err := bh.users.MarkOffered(session.UserID); err != nil {
		log.Printf("Error marking consent shown for user %d: %v", session.UserID, err)
		return
	}
	bh.logEvent(session.UserID, types.EventConsentShown, "")
	bh.saveState(session, types.StateConsentPending)
	bh.sendText(ctx, session.ChatID, messages.Consent(), buildConsentKeyboard())
}

func (bh *Handlers) sendWelcome(ctx context.Context, chatID int64) {
	photo, err := os.Open(bh.cfg.WelcomePhotoPath)
	if err != nil {
		bh.sendText(ctx, chatID, messages.Welcome(), buildMainKeyboard())
		return
	}
	defer photo.Close()

	_, err = bh.sender.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo: &models.InputFileUpload{
			Filename: "welcome.jpg",
			Data:     photo,
		},
		Caption:     messages.Welcome(),
		ParseMode:   messages.ParseModeHTML,
		ReplyMarkup: buildMainKeyboard(),
	})
	if err != nil {
		log.Printf("Error sending welcome photo to chat %d: %v", chatID, err)
		bh.sendText(ctx, chatID, messages.Welcome(), buildMainKeyboard())
	}
}
