package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/pressure-helper/internal/bot/menus"
	"github.com/vladimiradmaev/pressure-helper/internal/bot/state"
	"github.com/vladimiradmaev/pressure-helper/internal/command"
	"github.com/vladimiradmaev/pressure-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/pressure-helper/internal/errors"
	"github.com/vladimiradmaev/pressure-helper/internal/logger"
	"github.com/vladimiradmaev/pressure-helper/internal/services"
)

const (
	LoggedFormat          = "Blood pressure (and heart rate, if provided) logged successfully for %s."
	LogPrompt             = "Send your reading as: <systolic> <diastolic> [heart rate] [description] [YYYY-MM-DD HH:MM]"
	RemovedLastMessage    = "Your last blood pressure reading has been removed."
	NothingToRemove       = "You don't have any logged blood pressure readings to remove."
	DatePrompt            = "Please specify the date in YYYY-MM-DD format."
	RemovedByDateFormat   = "Blood pressure readings for %s have been removed."
	NoReadingsForDate     = "No readings found for the specified date."
	RemovedAllMessage     = "All your blood pressure readings have been removed."
	AdvicePrefix          = "Medical Advice:\n"
	ReportCaption         = "Here is your blood pressure report."
	ReportPending         = "Generating your blood pressure report. Please wait..."
	SummaryPending        = "Please wait, analyzing your blood pressure readings..."
	ReportFailedPrefix    = "An error occurred while generating the report: "
	RequestFailedPrefix   = "An error occurred while processing your request: "
	UnknownCommandMessage = "Unknown command. Use /help to see the available commands."
)

// CommandHandler handles bot commands. Callbacks and stateful text replies reuse its actions.
type CommandHandler struct {
	api          Sender
	deps         Dependencies
	stateManager state.StateManager
	errors       *apperrors.Handler
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api Sender, deps Dependencies, stateManager state.StateManager) *CommandHandler {
	return &CommandHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
		errors:       apperrors.NewHandler(logger.GetLogger()),
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	chatID := message.Chat.ID
	args := strings.TrimSpace(message.CommandArguments())
	logger.WithFields("command", message.Command(), "user_id", user.TelegramID).Info("Handling command")

	// A new command abandons any pending question
	h.stateManager.ClearUserState(ctx, user.TelegramID)

	switch message.Command() {
	case "start":
		return menus.SendMainMenu(h.api, chatID, user.FirstName)
	case "help":
		return menus.SendHelp(h.api, chatID)
	case "log":
		return h.LogReading(ctx, chatID, user.TelegramID, args)
	case "report":
		return h.Report(ctx, chatID, user.TelegramID, args)
	case "summarize":
		return h.Summarize(ctx, chatID, user.TelegramID, args)
	case "removelast":
		return h.RemoveLast(ctx, chatID, user.TelegramID)
	case "removebydate":
		return h.RemoveByDate(ctx, chatID, user.TelegramID, args)
	case "removeall":
		return h.RemoveAll(ctx, chatID, user.TelegramID)
	default:
		return reply(h.api, chatID, UnknownCommandMessage)
	}
}

// LogReading parses and stores one reading
func (h *CommandHandler) LogReading(ctx context.Context, chatID, userID int64, args string) error {
	cmd, err := command.ParseLog(args)
	if err != nil {
		return h.fail(ctx, chatID, "", err)
	}

	reading, err := h.deps.ReadingSvc.LogReading(ctx, userID, cmd)
	if err != nil {
		return h.fail(ctx, chatID, RequestFailedPrefix, err)
	}
	return reply(h.api, chatID, fmt.Sprintf(LoggedFormat, command.FormatDatetime(reading.ReadingTime)))
}

// Report renders the filtered history as a PDF and uploads it
func (h *CommandHandler) Report(ctx context.Context, chatID, userID int64, args string) error {
	q, err := command.ParseQuery(args, command.SingleDay, h.deps.ReadingSvc.Today())
	if err != nil {
		return h.fail(ctx, chatID, "", err)
	}
	if err := reply(h.api, chatID, ReportPending); err != nil {
		return err
	}

	history, err := h.deps.ReadingSvc.History(ctx, userID, q.Range, q.Pattern, q.HasPattern)
	if err != nil {
		return h.fail(ctx, chatID, ReportFailedPrefix, err)
	}

	req := services.ReportRequest{
		UserID:     userID,
		Range:      q.Range,
		Pattern:    q.Pattern,
		HasPattern: q.HasPattern,
		Readings:   history.Readings,
	}
	if h.deps.IncludeAdvice && len(history.Readings) > 0 {
		req.Advice = h.deps.AdviceSvc.Advise(ctx, userID, q.Range, q.Pattern, q.HasPattern, history.Readings)
	}

	path, err := h.deps.ReportSvc.Generate(ctx, req)
	if err != nil {
		return h.fail(ctx, chatID, ReportFailedPrefix, err)
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to remove report file", "path", path, "error", err)
		}
	}()

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = ReportCaption
	if _, err := h.api.Send(doc); err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}
	return nil
}

// Summarize replies with generated advice for the filtered history
func (h *CommandHandler) Summarize(ctx context.Context, chatID, userID int64, args string) error {
	q, err := command.ParseQuery(args, command.ThroughToday, h.deps.ReadingSvc.Today())
	if err != nil {
		return h.fail(ctx, chatID, "", err)
	}
	if err := reply(h.api, chatID, SummaryPending); err != nil {
		return err
	}

	history, err := h.deps.ReadingSvc.History(ctx, userID, q.Range, q.Pattern, q.HasPattern)
	if err != nil {
		return h.fail(ctx, chatID, RequestFailedPrefix, err)
	}
	if len(history.Readings) == 0 {
		logger.Info("Nothing to summarize", "user_id", userID, "in_range", history.Total, "pattern", q.HasPattern)
		return reply(h.api, chatID, services.NoReadingsMessage)
	}

	advice := h.deps.AdviceSvc.Advise(ctx, userID, q.Range, q.Pattern, q.HasPattern, history.Readings)
	return reply(h.api, chatID, AdvicePrefix+advice)
}

// RemoveLast deletes the newest reading
func (h *CommandHandler) RemoveLast(ctx context.Context, chatID, userID int64) error {
	removed, err := h.deps.ReadingSvc.RemoveLast(ctx, userID)
	if err != nil {
		return h.fail(ctx, chatID, RequestFailedPrefix, err)
	}
	if !removed {
		return reply(h.api, chatID, NothingToRemove)
	}
	return reply(h.api, chatID, RemovedLastMessage)
}

// RemoveByDate deletes every reading on one day. Without a date it asks for one.
func (h *CommandHandler) RemoveByDate(ctx context.Context, chatID, userID int64, args string) error {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		h.stateManager.SetUserState(ctx, userID, state.WaitingForRemovalDate)
		return menus.SendPrompt(h.api, chatID, DatePrompt)
	}

	date, err := command.ParseDate(fields[0])
	if err != nil {
		return h.fail(ctx, chatID, "", err)
	}

	removed, err := h.deps.ReadingSvc.RemoveByDate(ctx, userID, date)
	if err != nil {
		return h.fail(ctx, chatID, RequestFailedPrefix, err)
	}
	if !removed {
		return reply(h.api, chatID, NoReadingsForDate)
	}
	return reply(h.api, chatID, fmt.Sprintf(RemovedByDateFormat, command.FormatDate(date)))
}

// RemoveAll deletes every reading of the user
func (h *CommandHandler) RemoveAll(ctx context.Context, chatID, userID int64) error {
	removed, err := h.deps.ReadingSvc.RemoveAll(ctx, userID)
	if err != nil {
		return h.fail(ctx, chatID, RequestFailedPrefix, err)
	}
	if !removed {
		return reply(h.api, chatID, NothingToRemove)
	}
	return reply(h.api, chatID, RemovedAllMessage)
}

// fail logs err and reports it to the user. Input errors are shown as they are;
// anything else gets prefix. The error is consumed so the update loop keeps going.
func (h *CommandHandler) fail(ctx context.Context, chatID int64, prefix string, err error) error {
	h.errors.Handle(ctx, err)
	text := apperrors.UserMessage(err)
	if !apperrors.IsValidation(err) {
		text = prefix + text
	}
	return reply(h.api, chatID, text)
}
