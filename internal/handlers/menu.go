package handlers

import (
	"time"

	"github.com/annapclub/clarity-bot/internal/deck"
	"github.com/go-telegram/bot/models"
)

// Reply-keyboard labels. These arrive back as plain message text.
const (
	BtnMyTopic        = "Моя тема"
	BtnAbout          = "О консультации"
	BtnChannel        = "Канал"
	BtnConsentAccept  = "Подписаться ❤️"
	BtnConsentDecline = "🚫 Не сейчас"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

func buildMainKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: BtnMyTopic}},
			{{Text: BtnAbout}, {Text: BtnChannel}},
		},
		ResizeKeyboard: true,
	}
}

func buildConsentKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: BtnConsentAccept}, {Text: BtnConsentDecline}},
		},
		ResizeKeyboard: true,
	}
}

func buildTopicsKeyboard() *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, 3)
	for _, topic := range deck.Topics() {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: deck.TopicTitle(topic), CallbackData: "t:" + topic},
		})
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func buildCardsKeyboard(topic string) *models.InlineKeyboardMarkup {
	row := make([]models.InlineKeyboardButton, 0, len(deck.CardKeys))
	for _, key := range deck.CardKeys {
		row = append(row, models.InlineKeyboardButton{
			Text:         key,
			CallbackData: "c:" + topic + ":" + key,
		})
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		row,
		{{Text: "🎲 Случайная", CallbackData: "c:" + topic + ":" + deck.KeyRandom}},
		{{Text: "⬅️ Назад к темам", CallbackData: "t:menu"}},
	}}
}

func buildBackToMenuKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{{Text: "Назад к темам", CallbackData: "t:menu"}},
	}}
}
