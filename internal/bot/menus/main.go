package menus

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/pressure-helper/internal/bot/keyboards"
)

// Sender is the part of the Telegram API the bot uses
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

const HelpText = `Here's how you can use this bot:

/start - Start the bot and get a welcome message.

/log <systolic> <diastolic> [heart rate] [description] [YYYY-MM-DD HH:MM] - Log a new blood pressure reading. Heart rate, description, date, and time are optional.

/report [start_date] [end_date] pattern:"regex" - Generate a PDF report of your blood pressure readings. Date range and regex pattern for filtering descriptions are optional.

/removelast - Remove the most recent blood pressure reading.

/removebydate <YYYY-MM-DD> - Remove all readings for a specific date.

/removeall - Remove all your blood pressure readings.

/summarize [start_date] [end_date] pattern:"regex" - Summarize your blood pressure readings and get medical advice. Date range and regex pattern for filtering descriptions are optional.

/help - Show this help message.

All dates should be in YYYY-MM-DD format.
Times should be in 24-hour format (HH:MM).`

// WelcomeText greets a user by first name
func WelcomeText(firstName string) string {
	name := firstName
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("Hi %s! Welcome to the Blood Pressure Log Bot.\n"+
		"Use /log to record your blood pressure readings and /report to generate a PDF report of your readings.\n"+
		"For more commands and how to use them, send /help.", name)
}

// SendMainMenu sends the welcome text with the main menu keyboard
func SendMainMenu(api Sender, chatID int64, firstName string) error {
	msg := tgbotapi.NewMessage(chatID, WelcomeText(firstName))
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// SendHelp sends the command reference
func SendHelp(api Sender, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, HelpText)
	_, err := api.Send(msg)
	return err
}

// SendPrompt asks the user for the argument of a command, offering a way back
func SendPrompt(api Sender, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.Cancel()
	_, err := api.Send(msg)
	return err
}
