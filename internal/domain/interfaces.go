package domain

import (
	"context"
	"time"
)

// ReadingStore persists readings scoped by owner
type ReadingStore interface {
	Insert(ctx context.Context, reading *Reading) (uint, error)
	Query(ctx context.Context, userID int64, rng DateRange) ([]Reading, error)
	DeleteMostRecent(ctx context.Context, userID int64) (bool, error)
	DeleteByDate(ctx context.Context, userID int64, date time.Time) (bool, error)
	DeleteAll(ctx context.Context, userID int64) (bool, error)
}

// Generator produces a single text completion from a system and a user message
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// BotService handles telegram bot operations
type BotService interface {
	Start(ctx context.Context) error
}
