package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/pressure-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/pressure-helper/internal/bot/menus"
	"github.com/vladimiradmaev/pressure-helper/internal/bot/state"
	"github.com/vladimiradmaev/pressure-helper/internal/domain"
	"github.com/vladimiradmaev/pressure-helper/internal/logger"
)

// CallbackHandler handles main menu button presses
type CallbackHandler struct {
	api          Sender
	commands     *CommandHandler
	stateManager state.StateManager
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api Sender, commands *CommandHandler, stateManager state.StateManager) *CallbackHandler {
	return &CallbackHandler{
		api:          api,
		commands:     commands,
		stateManager: stateManager,
	}
}

// Handle processes a callback query. Buttons behave like their command sent without arguments.
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery, user *domain.User) error {
	// Answer the callback query first
	if _, err := h.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logger.Warn("Failed to answer callback query", "error", err)
	}
	if query.Message == nil {
		return nil
	}

	chatID := query.Message.Chat.ID
	userID := user.TelegramID
	h.stateManager.ClearUserState(ctx, userID)

	switch query.Data {
	case keyboards.LogReading:
		h.stateManager.SetUserState(ctx, userID, state.WaitingForReading)
		return menus.SendPrompt(h.api, chatID, LogPrompt)
	case keyboards.Report:
		return h.commands.Report(ctx, chatID, userID, "")
	case keyboards.Summarize:
		return h.commands.Summarize(ctx, chatID, userID, "")
	case keyboards.RemoveLast:
		return h.commands.RemoveLast(ctx, chatID, userID)
	case keyboards.RemoveByDate:
		return h.commands.RemoveByDate(ctx, chatID, userID, "")
	case keyboards.Help:
		return menus.SendHelp(h.api, chatID)
	case keyboards.MainMenuData:
		return menus.SendMainMenu(h.api, chatID, user.FirstName)
	default:
		return reply(h.api, chatID, UnknownCommandMessage)
	}
}
