package handlers

import (
	"context"
	"log"

	"github.com/annapclub/clarity-bot/internal/contextkeys"
	"github.com/annapclub/clarity-bot/internal/deck"
	"github.com/annapclub/clarity-bot/internal/ledger"
	"github.com/annapclub/clarity-bot/internal/messages"
	"github.com/annapclub/clarity-bot/types"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Sender is the slice of the bot API the handlers emit through. *bot.Bot
// satisfies it; tests substitute a recorder.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	SendDocument(ctx context.Context, params *bot.SendDocumentParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

// BroadcastEnqueuer hands a broadcast job to the out-of-band dispatcher.
type BroadcastEnqueuer interface {
	Enqueue(text string, reportChatID int64) error
}

type Config struct {
	OwnerUsername    string
	ChannelLink      string
	WelcomePhotoPath string
}

type Handlers struct {
	users       types.UserStore
	events      types.EventLog
	ledger      ledger.Ledger
	sessions    types.SessionStore
	deck        *deck.Deck
	sender      Sender
	broadcaster BroadcastEnqueuer
	cfg         Config
}

func NewHandlers(users types.UserStore, events types.EventLog, usage ledger.Ledger, sessions types.SessionStore, d *deck.Deck, sender Sender, broadcaster BroadcastEnqueuer, cfg Config) *Handlers {
	return &Handlers{
		users:       users,
		events:      events,
		ledger:      usage,
		sessions:    sessions,
		deck:        d,
		sender:      sender,
		broadcaster: broadcaster,
		cfg:         cfg,
	}
}

// MainHandler dispatches one fully classified update. It satisfies
// bot.HandlerFunc; outbound traffic goes through the injected Sender.
func (bh *Handlers) MainHandler(ctx context.Context, _ *bot.Bot, update *models.Update) {
	chatID, _ := contextkeys.GetChatID(ctx)
	messageType, _ := contextkeys.GetMessageType(ctx)

	userID, ok := contextkeys.GetUserID(ctx)
	if !ok {
		log.Printf("Error: user id not found in context")
		if chatID != 0 {
			bh.sendText(ctx, chatID, messages.ErrorDefault(), nil)
		}
		return
	}

	session, err := bh.sessions.GetSession(userID)
	if err != nil {
		log.Printf("Error getting session for user %d: %v", userID, err)
		if chatID != 0 {
			bh.sendText(ctx, chatID, messages.ErrorDefault(), nil)
		}
		return
	}

	switch messageType {
	case contextkeys.MessageTypeCommand:
		bh.HandleCommand(ctx, update, session)
	case contextkeys.MessageTypeText:
		bh.HandleText(ctx, update, session)
	case contextkeys.MessageTypeClickButton:
		bh.HandleCallback(ctx, update, session)
	default:
		if chatID != 0 {
			bh.sendText(ctx, chatID, messages.TextHint(), buildMainKeyboard())
		}
	}
}

func (bh *Handlers) sendText(ctx context.Context, chatID int64, text string, markup models.ReplyMarkup) {
	_, err := bh.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   messages.ParseModeHTML,
		ReplyMarkup: markup,
	})
	if err != nil {
		log.Printf("Error sending message to chat %d: %v", chatID, err)
	}
}

func (bh *Handlers) answerCallback(ctx context.Context, callbackID, text string, alert bool) {
	_, err := bh.sender.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
	if err != nil {
		log.Printf("Error answering callback %s: %v", callbackID, err)
	}
}

func (bh *Handlers) saveState(session *types.Session, state types.ChatState) {
	session.State = state
	if err := bh.sessions.SaveSession(session); err != nil {
		log.Printf("Error saving session for user %d: %v", session.UserID, err)
	}
}

func (bh *Handlers) logEvent(userID int64, eventType, meta string) {
	if err := bh.events.Append(userID, eventType, nowUTC(), meta); err != nil {
		log.Printf("Error appending %s event for user %d: %v", eventType, userID, err)
	}
}
