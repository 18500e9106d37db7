package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/vladimiradmaev/pressure-helper/internal/database"
	"github.com/vladimiradmaev/pressure-helper/internal/domain"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func day(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }
func intPtr(v int) *int { return &v }

// seed inserts the three readings used across the scenarios
func seed(t *testing.T, repo *ReadingRepository) {
	t.Helper()
	ctx := context.Background()
	readings := []domain.Reading{
		{UserID: 1, Systolic: 120, Diastolic: 80, ReadingTime: day(2023, 1, 1, 9, 0)},
		{UserID: 1, Systolic: 140, Diastolic: 90, ReadingTime: day(2023, 1, 2, 9, 0), Description: strPtr("Elevated reading")},
		{UserID: 1, Systolic: 110, Diastolic: 70, ReadingTime: day(2023, 1, 3, 9, 0)},
	}
	for i := range readings {
		if _, err := repo.Insert(ctx, &readings[i]); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
}

func TestInsertAndQuery(t *testing.T) {
	ctx := context.Background()
	repo := NewReadingRepository(newTestDB(t))

	r := domain.Reading{
		UserID:      1,
		Systolic:    125,
		Diastolic:   82,
		HeartRate:   intPtr(70),
		ReadingTime: day(2023, 2, 1, 8, 30),
		Description: strPtr("morning"),
	}
	id, err := repo.Insert(ctx, &r)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id == 0 || r.ID != id {
		t.Fatalf("id = %d, reading id = %d", id, r.ID)
	}

	got, err := repo.Query(ctx, 1, domain.DateRange{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	g := got[0]
	if g.Systolic != 125 || g.Diastolic != 82 || g.HeartRate == nil || *g.HeartRate != 70 {
		t.Errorf("reading = %+v", g)
	}
	if g.Description == nil || *g.Description != "morning" {
		t.Errorf("description = %v", g.Description)
	}
	if !g.ReadingTime.Equal(day(2023, 2, 1, 8, 30)) {
		t.Errorf("reading time = %v", g.ReadingTime)
	}
}

func TestQueryOrderingAndRanges(t *testing.T) {
	ctx := context.Background()
	repo := NewReadingRepository(newTestDB(t))
	seed(t, repo)

	all, err := repo.Query(ctx, 1, domain.DateRange{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].ReadingTime.Before(all[i-1].ReadingTime) {
			t.Fatalf("readings not ascending: %v", all)
		}
	}

	start := day(2023, 1, 2, 0, 0)
	single, err := repo.Query(ctx, 1, domain.DateRange{Start: &start})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(single) != 1 || single[0].Systolic != 140 {
		t.Fatalf("single day query = %+v", single)
	}

	first, last := day(2023, 1, 1, 0, 0), day(2023, 1, 2, 0, 0)
	ranged, err := repo.Query(ctx, 1, domain.DateRange{Start: &first, End: &last})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(ranged) != 2 {
		t.Fatalf("range query returned %d readings, want 2", len(ranged))
	}

	other, err := repo.Query(ctx, 2, domain.DateRange{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("another user's query returned %d readings", len(other))
	}
}

func TestDeleteMostRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewReadingRepository(newTestDB(t))
	seed(t, repo)

	for _, wantRemaining := range []int{110, 140} {
		deleted, err := repo.DeleteMostRecent(ctx, 1)
		if err != nil || !deleted {
			t.Fatalf("DeleteMostRecent = %v, %v", deleted, err)
		}
		remaining, _ := repo.Query(ctx, 1, domain.DateRange{})
		for _, r := range remaining {
			if r.Systolic == wantRemaining {
				t.Fatalf("reading %d/%d should have been removed", r.Systolic, r.Diastolic)
			}
		}
	}

	remaining, _ := repo.Query(ctx, 1, domain.DateRange{})
	if len(remaining) != 1 || remaining[0].Systolic != 120 {
		t.Fatalf("remaining = %+v", remaining)
	}

	deleted, err := repo.DeleteMostRecent(ctx, 99)
	if err != nil || deleted {
		t.Fatalf("DeleteMostRecent on empty user = %v, %v", deleted, err)
	}
}

func TestDeleteByDate(t *testing.T) {
	ctx := context.Background()
	repo := NewReadingRepository(newTestDB(t))
	seed(t, repo)

	extra := domain.Reading{UserID: 1, Systolic: 150, Diastolic: 95, ReadingTime: day(2023, 1, 2, 23, 59)}
	if _, err := repo.Insert(ctx, &extra); err != nil {
		t.Fatalf("insert: %v", err)
	}

	deleted, err := repo.DeleteByDate(ctx, 1, day(2023, 1, 2, 0, 0))
	if err != nil || !deleted {
		t.Fatalf("DeleteByDate = %v, %v", deleted, err)
	}

	remaining, _ := repo.Query(ctx, 1, domain.DateRange{})
	if len(remaining) != 2 {
		t.Fatalf("remaining = %d, want 2", len(remaining))
	}

	deleted, err = repo.DeleteByDate(ctx, 1, day(2023, 1, 2, 0, 0))
	if err != nil || deleted {
		t.Fatalf("second DeleteByDate = %v, %v", deleted, err)
	}
}

func TestDeleteAll(t *testing.T) {
	ctx := context.Background()
	repo := NewReadingRepository(newTestDB(t))
	seed(t, repo)

	keep := domain.Reading{UserID: 2, Systolic: 118, Diastolic: 76, ReadingTime: day(2023, 1, 1, 7, 0)}
	if _, err := repo.Insert(ctx, &keep); err != nil {
		t.Fatalf("insert: %v", err)
	}

	deleted, err := repo.DeleteAll(ctx, 1)
	if err != nil || !deleted {
		t.Fatalf("DeleteAll = %v, %v", deleted, err)
	}
	if left, _ := repo.Query(ctx, 1, domain.DateRange{}); len(left) != 0 {
		t.Fatalf("user 1 still has %d readings", len(left))
	}
	if other, _ := repo.Query(ctx, 2, domain.DateRange{}); len(other) != 1 {
		t.Fatalf("DeleteAll touched another user's readings")
	}

	deleted, err = repo.DeleteAll(ctx, 1)
	if err != nil || deleted {
		t.Fatalf("DeleteAll on empty user = %v, %v", deleted, err)
	}
}

func TestUserRepositoryGetOrCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	u, err := repo.GetOrCreateUser(ctx, 42, "jdoe", "Jo", "Doe")
	if err != nil {
		t.Fatalf("GetOrCreateUser: %v", err)
	}
	again, err := repo.GetOrCreateUser(ctx, 42, "renamed", "Jo", "Doe")
	if err != nil {
		t.Fatalf("GetOrCreateUser: %v", err)
	}
	if again.ID != u.ID {
		t.Fatalf("second call created a new user: %d vs %d", again.ID, u.ID)
	}

	found, err := repo.GetUserByTelegramID(ctx, 42)
	if err != nil || found == nil || found.FirstName != "Jo" {
		t.Fatalf("GetUserByTelegramID = %+v, %v", found, err)
	}
	missing, err := repo.GetUserByTelegramID(ctx, 7)
	if err != nil || missing != nil {
		t.Fatalf("unknown user = %+v, %v", missing, err)
	}
}
