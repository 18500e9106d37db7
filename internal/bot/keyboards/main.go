package keyboards

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data sent by the main menu buttons
const (
	LogReading   = "log_reading"
	Report       = "report"
	Summarize    = "summarize"
	RemoveLast   = "remove_last"
	RemoveByDate = "remove_by_date"
	Help         = "help"
	MainMenuData = "main_menu"
)

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Log reading", LogReading),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 Report", Report),
			tgbotapi.NewInlineKeyboardButtonData("🩺 Summary", Summarize),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("↩️ Remove last", RemoveLast),
			tgbotapi.NewInlineKeyboardButtonData("🗓️ Remove by date", RemoveByDate),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❓ Help", Help),
		),
	)
}

// Cancel creates a single-button keyboard that returns to the main menu
func Cancel() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Cancel", MainMenuData),
		),
	)
}
