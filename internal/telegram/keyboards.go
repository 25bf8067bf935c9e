package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Main-menu reply-keyboard button labels. Button presses arrive as plain text
// messages, so the handler matches on these exact strings.
const (
	btnEvents      = "📋 События"
	btnHelp        = "ℹ️ Помощь"
	btnCreateEvent = "➕ Создать событие"
	btnFormTeam    = "🏒 Собрать пятёрку"
)

// mainKeyboard renders the persistent menu for the user's role.
func mainKeyboard(isCoach bool) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnEvents),
			tgbotapi.NewKeyboardButton(btnHelp),
		),
	}
	if isCoach {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCreateEvent),
			tgbotapi.NewKeyboardButton(btnFormTeam),
		))
	}
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

// markKeyboard renders the attendance buttons for one event.
func markKeyboard(eventID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Буду", fmt.Sprintf("mark_%d_1", eventID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Не буду", fmt.Sprintf("mark_%d_0", eventID)),
		),
	)
}
