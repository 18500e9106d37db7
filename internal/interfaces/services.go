package interfaces

import (
	"context"
	"time"

	"github.com/vladimiradmaev/pressure-helper/internal/command"
	"github.com/vladimiradmaev/pressure-helper/internal/domain"
	"github.com/vladimiradmaev/pressure-helper/internal/services"
)

// UserServiceInterface defines the contract for user operations
type UserServiceInterface interface {
	RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*domain.User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
}

// ReadingServiceInterface defines the contract for logging, querying and removing readings
type ReadingServiceInterface interface {
	Today() time.Time
	LogReading(ctx context.Context, userID int64, cmd command.LogCommand) (*domain.Reading, error)
	History(ctx context.Context, userID int64, rng domain.DateRange, pattern string, hasPattern bool) (services.HistoryResult, error)
	RemoveLast(ctx context.Context, userID int64) (bool, error)
	RemoveByDate(ctx context.Context, userID int64, date time.Time) (bool, error)
	RemoveAll(ctx context.Context, userID int64) (bool, error)
}

// AdviceServiceInterface defines the contract for generated summaries
type AdviceServiceInterface interface {
	Advise(ctx context.Context, userID int64, rng domain.DateRange, pattern string, hasPattern bool, readings []domain.Reading) string
}

// ReportServiceInterface defines the contract for PDF reports
type ReportServiceInterface interface {
	Generate(ctx context.Context, req services.ReportRequest) (string, error)
}
