package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/annapclub/clarity-bot/internal/contextkeys"
	"github.com/annapclub/clarity-bot/internal/deck"
	"github.com/annapclub/clarity-bot/internal/messages"
	"github.com/annapclub/clarity-bot/types"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func (bh *Handlers) HandleCallback(ctx context.Context, update *models.Update, session *types.Session) {
	if update == nil || update.CallbackQuery == nil {
		return
	}
	data, _ := contextkeys.GetCallbackData(ctx)
	if data == "" {
		data = update.CallbackQuery.Data
	}
	data = strings.TrimSpace(data)

	switch {
	case strings.HasPrefix(data, "t:"):
		bh.handleTopicClick(ctx, update, session, strings.TrimPrefix(data, "t:"))
	case strings.HasPrefix(data, "c:"):
		bh.handleCardClick(ctx, update, session, data)
	default:
		bh.answerCallback(ctx, update.CallbackQuery.ID, messages.CallbackInvalidData(), true)
	}
}

func (bh *Handlers) handleTopicClick(ctx context.Context, update *models.Update, session *types.Session, code string) {
	msg := update.CallbackQuery.Message.Message
	if msg == nil {
		bh.answerCallback(ctx, update.CallbackQuery.ID, "", false)
		return
	}

	if code == "menu" {
		bh.answerCallback(ctx, update.CallbackQuery.ID, "", false)
		bh.saveState(session, types.StateTopicMenu)
		bh.editTo(ctx, msg, messages.ChooseTopic(), buildTopicsKeyboard())
		return
	}

	if !deck.TopicExists(code) {
		bh.answerCallback(ctx, update.CallbackQuery.ID, messages.CardNotFound(), true)
		return
	}

	bh.answerCallback(ctx, update.CallbackQuery.ID, "", false)
	bh.logEvent(session.UserID, types.EventTopic, code)
	session.Topic = code
	bh.saveState(session, types.StateCardMenu)
	bh.editTo(ctx, msg, messages.ChooseCard(), buildCardsKeyboard(code))
}

func (bh *Handlers) handleCardClick(ctx context.Context, update *models.Update, session *types.Session, data string) {
	topic, key, err := parseCardData(data)
	if err != nil {
		bh.answerCallback(ctx, update.CallbackQuery.ID, messages.CallbackInvalidData(), true)
		return
	}

	now := nowUTC()
	ok, retryAt, err := bh.ledger.CanDraw(session.UserID, now)
	if err != nil {
		log.Printf("Error checking draw eligibility for user %d: %v", session.UserID, err)
		bh.answerCallback(ctx, update.CallbackQuery.ID, "", false)
		bh.sendText(ctx, session.ChatID, messages.ErrorDefault(), nil)
		return
	}
	if !ok {
		bh.answerCallback(ctx, update.CallbackQuery.ID, "", false)
		bh.logEvent(session.UserID, types.EventLockHit, topic)
		bh.saveState(session, types.StateLocked)
		bh.sendText(ctx, session.ChatID, messages.Locked(bh.cfg.ChannelLink, bh.cfg.OwnerUsername, retryAt), buildBackToMenuKeyboard())
		return
	}

	var text string
	if key == deck.KeyRandom {
		key, text, err = bh.deck.Draw(topic)
	} else {
		text, err = bh.deck.Pick(topic, key)
	}
	if err != nil {
		if errors.Is(err, deck.ErrTopicNotFound) || errors.Is(err, deck.ErrCardNotFound) {
			bh.answerCallback(ctx, update.CallbackQuery.ID, messages.CardNotFound(), true)
			return
		}
		bh.answerCallback(ctx, update.CallbackQuery.ID, "", false)
		bh.sendText(ctx, session.ChatID, messages.ErrorDefault(), nil)
		return
	}

	// The reply is composed; engage the lock before delivery. A failed
	// delivery keeps the draw recorded, a failed record keeps the card
	// undelivered — never the other way around.
	if err := bh.ledger.RecordDraw(session.UserID, now); err != nil {
		log.Printf("Error recording draw for user %d: %v", session.UserID, err)
		bh.answerCallback(ctx, update.CallbackQuery.ID, "", false)
		bh.sendText(ctx, session.ChatID, messages.ErrorDefault(), nil)
		return
	}
	if err := bh.events.Append(session.UserID, types.EventDraw, now, fmt.Sprintf("%s:%s", topic, key)); err != nil {
		log.Printf("Error appending draw event for user %d: %v", session.UserID, err)
		bh.answerCallback(ctx, update.CallbackQuery.ID, "", false)
		bh.sendText(ctx, session.ChatID, messages.ErrorDefault(), nil)
		return
	}

	session.Topic = topic
	bh.saveState(session, types.StateCardDelivered)
	bh.answerCallback(ctx, update.CallbackQuery.ID, "", false)
	bh.sendText(ctx, session.ChatID, text+messages.CTATail(bh.cfg.ChannelLink, bh.cfg.OwnerUsername), buildBackToMenuKeyboard())
}

func parseCardData(data string) (topic, key string, err error) {
	parts := strings.Split(data, ":")
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return "", "", fmt.Errorf("invalid callback data: %q", data)
	}
	return parts[1], parts[2], nil
}

func (bh *Handlers) editTo(ctx context.Context, msg *models.Message, text string, markup *models.InlineKeyboardMarkup) {
	_, err := bh.sender.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ParseMode:   messages.ParseModeHTML,
		ReplyMarkup: markup,
	})
	if err != nil {
		log.Printf("Error editing message %d in chat %d: %v", msg.ID, msg.Chat.ID, err)
	}
}
