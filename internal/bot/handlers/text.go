package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/pressure-helper/internal/bot/state"
	"github.com/vladimiradmaev/pressure-helper/internal/domain"
)

const HelpHint = "I only understand commands. Send /help to see what I can do."

// TextHandler handles plain text messages
type TextHandler struct {
	api          Sender
	commands     *CommandHandler
	stateManager state.StateManager
}

// NewTextHandler creates a new text handler
func NewTextHandler(api Sender, commands *CommandHandler, stateManager state.StateManager) *TextHandler {
	return &TextHandler{
		api:          api,
		commands:     commands,
		stateManager: stateManager,
	}
}

// Handle processes a text message. After a menu prompt the text is the answer to it.
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	chatID := message.Chat.ID
	userID := user.TelegramID
	text := strings.TrimSpace(message.Text)

	switch h.stateManager.GetUserState(ctx, userID) {
	case state.WaitingForReading:
		h.stateManager.ClearUserState(ctx, userID)
		return h.commands.LogReading(ctx, chatID, userID, text)
	case state.WaitingForRemovalDate:
		h.stateManager.ClearUserState(ctx, userID)
		if text == "" {
			return reply(h.api, chatID, DatePrompt)
		}
		return h.commands.RemoveByDate(ctx, chatID, userID, text)
	default:
		return reply(h.api, chatID, HelpHint)
	}
}
