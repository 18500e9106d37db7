package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/vladimiradmaev/pressure-helper/internal/config"
	"github.com/vladimiradmaev/pressure-helper/internal/database/migrations"
	"github.com/vladimiradmaev/pressure-helper/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	TelegramID int64 `gorm:"uniqueIndex"`
	Username   string
	FirstName  string
	LastName   string
}

// BloodPressureReading is one row of blood_pressure_readings.
// ReadingDatetime is the user's wall-clock time stored with a UTC location.
type BloodPressureReading struct {
	ID              uint  `gorm:"primaryKey"`
	UserID          int64 `gorm:"not null"`
	Systolic        int   `gorm:"not null"`
	Diastolic       int   `gorm:"not null"`
	HeartRate       *int
	ReadingDatetime time.Time `gorm:"not null"`
	Description     *string
}

func (BloodPressureReading) TableName() string {
	return "blood_pressure_readings"
}

func dialector(cfg config.DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// Open connects to the configured database and brings the schema up to date
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{Logger: logger.NewGormLogger()})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Info("Database connection established and migrations completed", "driver", db.Dialector.Name())
	return db, nil
}

// Migrate creates the tables, then applies the SQL migrations that have not run yet
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}, &BloodPressureReading{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	m := migrations.NewMigrator()
	if err := m.LoadSQL(migrations.Files, "sql"); err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	if err := m.Run(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
