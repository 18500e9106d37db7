package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/pressure-helper/internal/bot/handlers"
	"github.com/vladimiradmaev/pressure-helper/internal/bot/state"
	"github.com/vladimiradmaev/pressure-helper/internal/logger"
)

// Commands is the command list shown by Telegram clients
var Commands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Show the main menu"},
	{Command: "log", Description: "Log a blood pressure reading"},
	{Command: "report", Description: "Get a PDF report of your readings"},
	{Command: "summarize", Description: "Get advice on your readings"},
	{Command: "removelast", Description: "Remove the most recent reading"},
	{Command: "removebydate", Description: "Remove all readings for a date"},
	{Command: "removeall", Description: "Remove all your readings"},
	{Command: "help", Description: "Show usage"},
}

type Bot struct {
	api     *tgbotapi.BotAPI
	updates *handlers.UpdateHandler
}

func NewBot(token string, deps handlers.Dependencies, stateManager state.StateManager) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Bot authorized", "account", api.Self.UserName)
	return &Bot{
		api:     api,
		updates: handlers.NewUpdateHandler(api, deps, stateManager),
	}, nil
}

// Start processes updates one at a time until ctx is cancelled
func (b *Bot) Start(ctx context.Context) error {
	if _, err := b.api.Request(tgbotapi.NewSetMyCommands(Commands...)); err != nil {
		logger.Warn("Failed to register bot commands", "error", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()
	logger.Info("Bot is now listening for updates")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down")
			return nil
		case update, ok := <-updates:
			if !ok {
				return fmt.Errorf("update channel closed")
			}
			if update.Message != nil && update.Message.From != nil {
				logger.Debug("Received message", "user_id", update.Message.From.ID, "text", update.Message.Text)
			}
			if err := b.updates.Handle(ctx, update); err != nil {
				logger.Error("Error handling update", "update_id", update.UpdateID, "error", err)
			}
		}
	}
}
