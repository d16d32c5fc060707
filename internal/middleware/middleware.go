package middleware

import (
	"context"
	"log"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/annapclub/clarity-bot/internal/contextkeys"
	"github.com/annapclub/clarity-bot/internal/messages"
	"github.com/annapclub/clarity-bot/types"
)

// Sender is the slice of the bot API the middleware needs for error
// replies. *bot.Bot satisfies it.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

type Middlewares struct {
	users    types.UserStore
	sessions types.SessionStore
	sender   Sender
}

func NewMessageAnalyzer(users types.UserStore, sessions types.SessionStore, sender Sender) *Middlewares {
	return &Middlewares{
		users:    users,
		sessions: sessions,
		sender:   sender,
	}
}

// ResolveUserMiddleware identifies the user behind the update, overwrites
// the users row (display fields, last-seen) and makes sure a dialogue
// session exists. Updates without a user are dropped.
func (m *Middlewares) ResolveUserMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		var (
			from   *models.User
			chatID int64
		)

		switch {
		case update.Message != nil && update.Message.From != nil:
			from = update.Message.From
			chatID = update.Message.Chat.ID
		case update.CallbackQuery != nil:
			from = &update.CallbackQuery.From
			chatID = getChatIDFromMaybeInaccessibleMessage(update.CallbackQuery.Message)
			if chatID == 0 {
				return
			}
		default:
			return
		}

		if from == nil || from.ID == 0 || chatID == 0 {
			return
		}

		if err := m.users.UpsertUser(types.User{
			UserID:    from.ID,
			Username:  from.Username,
			FirstName: from.FirstName,
			LastName:  from.LastName,
		}); err != nil {
			log.Printf("Error upserting user %d: %v", from.ID, err)
			_, _ = m.sender.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:    chatID,
				Text:      messages.ErrorDefault(),
				ParseMode: messages.ParseModeHTML,
			})
			return
		}

		if _, err := m.sessions.GetSession(from.ID); err != nil {
			session := &types.Session{
				UserID: from.ID,
				ChatID: chatID,
				State:  types.StateWelcomed,
			}
			if err := m.sessions.SaveSession(session); err != nil {
				log.Printf("Error creating session for user %d: %v", from.ID, err)
				_, _ = m.sender.SendMessage(ctx, &bot.SendMessageParams{
					ChatID:    chatID,
					Text:      messages.ErrorDefault(),
					ParseMode: messages.ParseModeHTML,
				})
				return
			}
		}

		ctx = contextkeys.WithUserID(ctx, from.ID)
		ctx = contextkeys.WithChatID(ctx, chatID)
		next(ctx, b, update)
	}
}

func getChatIDFromMaybeInaccessibleMessage(m models.MaybeInaccessibleMessage) int64 {
	if m.Message != nil {
		return m.Message.Chat.ID
	}
	if m.InaccessibleMessage != nil {
		return m.InaccessibleMessage.Chat.ID
	}
	return 0
}

// AnalyzeMessageMiddleware classifies the update: button callback, slash
// command, or plain text (reply-keyboard labels arrive as plain text).
func (ma *Middlewares) AnalyzeMessageMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		var newCtx context.Context

		switch {
		case update.CallbackQuery != nil && update.CallbackQuery.Data != "":
			newCtx = contextkeys.WithMessageType(ctx, contextkeys.MessageTypeClickButton)
			newCtx = contextkeys.WithCallbackData(newCtx, update.CallbackQuery.Data)
		case update.Message != nil && strings.HasPrefix(update.Message.Text, "/"):
			newCtx = contextkeys.WithMessageType(ctx, contextkeys.MessageTypeCommand)
		case update.Message != nil && update.Message.Text != "":
			newCtx = contextkeys.WithMessageType(ctx, contextkeys.MessageTypeText)
		default:
			newCtx = contextkeys.WithMessageType(ctx, contextkeys.MessageTypeUnknown)
		}

		next(newCtx, b, update)
	}
}
