package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vladimiradmaev/pressure-helper/internal/database"
	"github.com/vladimiradmaev/pressure-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/pressure-helper/internal/errors"
	"gorm.io/gorm"
)

// ReadingRepository stores blood pressure readings through gorm
type ReadingRepository struct {
	db *gorm.DB
}

var _ domain.ReadingStore = (*ReadingRepository)(nil)

// NewReadingRepository creates a new reading repository
func NewReadingRepository(db *gorm.DB) *ReadingRepository {
	return &ReadingRepository{db: db}
}

func toRecord(r *domain.Reading) database.BloodPressureReading {
	return database.BloodPressureReading{
		ID:              r.ID,
		UserID:          r.UserID,
		Systolic:        r.Systolic,
		Diastolic:       r.Diastolic,
		HeartRate:       r.HeartRate,
		ReadingDatetime: r.ReadingTime.UTC(),
		Description:     r.Description,
	}
}

func toDomain(rec database.BloodPressureReading) domain.Reading {
	return domain.Reading{
		ID:          rec.ID,
		UserID:      rec.UserID,
		Systolic:    rec.Systolic,
		Diastolic:   rec.Diastolic,
		HeartRate:   rec.HeartRate,
		ReadingTime: rec.ReadingDatetime.UTC(),
		Description: rec.Description,
	}
}

// owned scopes a query to one user and, when given, to the calendar days of rng
func (r *ReadingRepository) owned(ctx context.Context, userID int64, rng domain.DateRange) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&database.BloodPressureReading{}).Where("user_id = ?", userID)
	if from, to, ok := rng.Bounds(); ok {
		q = q.Where("reading_datetime >= ? AND reading_datetime < ?", from.UTC(), to.UTC())
	}
	return q
}

// Insert stores a new reading and returns its ID
func (r *ReadingRepository) Insert(ctx context.Context, reading *domain.Reading) (uint, error) {
	rec := toRecord(reading)
	rec.ID = 0
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return 0, apperrors.NewDatabaseError(err).WithContext("user_id", reading.UserID)
	}
	reading.ID = rec.ID
	return rec.ID, nil
}

// Query returns the user's readings in rng, oldest first
func (r *ReadingRepository) Query(ctx context.Context, userID int64, rng domain.DateRange) ([]domain.Reading, error) {
	var recs []database.BloodPressureReading
	if err := r.owned(ctx, userID, rng).Order("reading_datetime ASC, id ASC").Find(&recs).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err).WithContext("user_id", userID)
	}

	readings := make([]domain.Reading, 0, len(recs))
	for _, rec := range recs {
		readings = append(readings, toDomain(rec))
	}
	return readings, nil
}

// DeleteMostRecent removes the user's reading with the greatest timestamp
func (r *ReadingRepository) DeleteMostRecent(ctx context.Context, userID int64) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec database.BloodPressureReading
		err := tx.Where("user_id = ?", userID).
			Order("reading_datetime DESC, id DESC").
			First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		res := tx.Delete(&database.BloodPressureReading{}, rec.ID)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, apperrors.NewDatabaseError(err).WithContext("user_id", userID)
	}
	return deleted, nil
}

// DeleteByDate removes every reading of the user on the calendar day of date
func (r *ReadingRepository) DeleteByDate(ctx context.Context, userID int64, date time.Time) (bool, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	res := r.owned(ctx, userID, domain.DateRange{Start: &day}).Delete(&database.BloodPressureReading{})
	if res.Error != nil {
		return false, apperrors.NewDatabaseError(res.Error).WithContext("user_id", userID)
	}
	return res.RowsAffected > 0, nil
}

// DeleteAll removes every reading of the user
func (r *ReadingRepository) DeleteAll(ctx context.Context, userID int64) (bool, error) {
	res := r.owned(ctx, userID, domain.DateRange{}).Delete(&database.BloodPressureReading{})
	if res.Error != nil {
		return false, apperrors.NewDatabaseError(res.Error).WithContext("user_id", userID)
	}
	return res.RowsAffected > 0, nil
}
