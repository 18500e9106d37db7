package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/pressure-helper/internal/bot/menus"
	"github.com/vladimiradmaev/pressure-helper/internal/interfaces"
)

// Sender is satisfied by *tgbotapi.BotAPI
type Sender = menus.Sender

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	UserService interfaces.UserServiceInterface
	ReadingSvc  interfaces.ReadingServiceInterface
	AdviceSvc   interfaces.AdviceServiceInterface
	ReportSvc   interfaces.ReportServiceInterface
	// IncludeAdvice appends generated advice to PDF reports
	IncludeAdvice bool
}

func reply(api Sender, chatID int64, text string) error {
	_, err := api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
