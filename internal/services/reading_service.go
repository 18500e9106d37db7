package services

import (
	"context"
	"regexp"
	"time"

	"github.com/vladimiradmaev/pressure-helper/internal/command"
	"github.com/vladimiradmaev/pressure-helper/internal/domain"
	"github.com/vladimiradmaev/pressure-helper/internal/filter"
	"github.com/vladimiradmaev/pressure-helper/internal/logger"
	"github.com/vladimiradmaev/pressure-helper/internal/utils"
)

// HistoryResult is a filtered query. Total counts the readings in range before filtering.
type HistoryResult struct {
	Readings []domain.Reading
	Total    int
}

// ReadingService logs, queries and removes readings for a user
type ReadingService struct {
	store domain.ReadingStore
	loc   *time.Location
	now   func() time.Time
}

func NewReadingService(store domain.ReadingStore, loc *time.Location) *ReadingService {
	return NewReadingServiceWithClock(store, loc, time.Now)
}

func NewReadingServiceWithClock(store domain.ReadingStore, loc *time.Location, now func() time.Time) *ReadingService {
	if loc == nil {
		loc = time.Local
	}
	return &ReadingService{store: store, loc: loc, now: now}
}

// Now returns the current wall-clock minute in the configured zone
func (s *ReadingService) Now() time.Time {
	return utils.WallClock(s.now(), s.loc)
}

// Today returns the current wall-clock date in the configured zone
func (s *ReadingService) Today() time.Time {
	return utils.Today(s.now(), s.loc)
}

// LogReading stores the parsed /log command. A missing timestamp means now.
func (s *ReadingService) LogReading(ctx context.Context, userID int64, cmd command.LogCommand) (*domain.Reading, error) {
	at := s.Now()
	if cmd.ReadingTime != nil {
		at = *cmd.ReadingTime
	}

	reading := &domain.Reading{
		UserID:      userID,
		Systolic:    cmd.Systolic,
		Diastolic:   cmd.Diastolic,
		HeartRate:   cmd.HeartRate,
		ReadingTime: at,
		Description: cmd.Description,
	}
	if _, err := s.store.Insert(ctx, reading); err != nil {
		return nil, err
	}

	logger.Info("Reading logged",
		"user_id", userID,
		"reading_id", reading.ID,
		"systolic", reading.Systolic,
		"diastolic", reading.Diastolic)
	return reading, nil
}

// History validates pattern, then returns the user's readings in rng that match it.
// An empty pattern with hasPattern false means no filtering.
func (s *ReadingService) History(ctx context.Context, userID int64, rng domain.DateRange, pattern string, hasPattern bool) (HistoryResult, error) {
	var re *regexp.Regexp
	if hasPattern {
		var err error
		if re, err = filter.Compile(pattern); err != nil {
			return HistoryResult{}, err
		}
	}

	readings, err := s.store.Query(ctx, userID, rng)
	if err != nil {
		return HistoryResult{}, err
	}

	result := HistoryResult{Readings: readings, Total: len(readings)}
	if re != nil {
		result.Readings = filter.Apply(readings, re)
	}
	return result, nil
}

func (s *ReadingService) RemoveLast(ctx context.Context, userID int64) (bool, error) {
	return s.store.DeleteMostRecent(ctx, userID)
}

func (s *ReadingService) RemoveByDate(ctx context.Context, userID int64, date time.Time) (bool, error) {
	return s.store.DeleteByDate(ctx, userID, date)
}

func (s *ReadingService) RemoveAll(ctx context.Context, userID int64) (bool, error) {
	return s.store.DeleteAll(ctx, userID)
}
