package handlers

import (
	"context"
	"log"
	"strings"

	"github.com/annapclub/clarity-bot/internal/messages"
	"github.com/annapclub/clarity-bot/types"
	"github.com/go-telegram/bot/models"
)

func (bh *Handlers) HandleText(ctx context.Context, update *models.Update, session *types.Session) {
	if update == nil || update.Message == nil {
		return
	}
	text := strings.TrimSpace(update.Message.Text)

	switch {
	case strings.EqualFold(text, BtnMyTopic):
		bh.saveState(session, types.StateTopicMenu)
		bh.sendText(ctx, session.ChatID, messages.ChooseTopic(), buildTopicsKeyboard())
	case text == BtnAbout:
		bh.sendText(ctx, session.ChatID, messages.About(bh.cfg.OwnerUsername), buildContactKeyboard(bh.cfg.OwnerUsername))
	case text == BtnChannel:
		bh.sendText(ctx, session.ChatID, messages.Channel(), buildChannelKeyboard(bh.cfg.ChannelLink))
	case text == BtnConsentAccept:
		if err := bh.users.SetSubscribed(session.UserID, true); err != nil {
			log.Printf("Error subscribing user %d: %v", session.UserID, err)
			bh.sendText(ctx, session.ChatID, messages.ErrorDefault(), nil)
			return
		}
		bh.logEvent(session.UserID, types.EventSubscribe, "consent_button")
		bh.saveState(session, types.StateConsentResolved)
		bh.sendText(ctx, session.ChatID, messages.ConsentAccepted(), buildMainKeyboard())
	case text == BtnConsentDecline:
		bh.logEvent(session.UserID, types.EventConsentDecline, "consent_button")
		bh.saveState(session, types.StateConsentResolved)
		bh.sendText(ctx, session.ChatID, messages.ConsentDeclined(), buildMainKeyboard())
	default:
		bh.sendText(ctx, session.ChatID, messages.TextHint(), buildMainKeyboard())
	}
}

func buildContactKeyboard(ownerUsername string) *models.InlineKeyboardMarkup {
	if !strings.HasPrefix(ownerUsername, "@") {
		return nil
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{{Text: "Написать", URL: "https://t.me/" + strings.TrimPrefix(ownerUsername, "@")}},
	}}
}

func buildChannelKeyboard(channelLink string) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{{Text: "Открыть канал", URL: channelLink}},
	}}
}
