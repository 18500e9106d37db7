package domain

import (
	"fmt"
	"strings"
	"time"
)

// User represents a telegram user in the system
type User struct {
	ID         uint
	CreatedAt  time.Time
	UpdatedAt  time.Time
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
}

// Reading represents one blood pressure measurement.
// ReadingTime holds the user's wall-clock time with a UTC location.
type Reading struct {
	ID          uint
	UserID      int64
	Systolic    int
	Diastolic   int
	HeartRate   *int
	ReadingTime time.Time
	Description *string
}

// IsNormal reports a reading below 120/80
func (r Reading) IsNormal() bool {
	return r.Systolic < 120 && r.Diastolic < 80
}

// IsElevated reports systolic 120-129 with diastolic below 80
func (r Reading) IsElevated() bool {
	return r.Systolic >= 120 && r.Systolic <= 129 && r.Diastolic < 80
}

// IsStage1 reports stage 1 hypertension
func (r Reading) IsStage1() bool {
	return (r.Systolic >= 130 && r.Systolic <= 139) || (r.Diastolic >= 80 && r.Diastolic <= 89)
}

// IsStage2 reports stage 2 hypertension. Crisis readings satisfy it too.
func (r Reading) IsStage2() bool {
	return r.Systolic >= 140 || r.Diastolic >= 90
}

// IsCrisis reports a hypertensive crisis reading
func (r Reading) IsCrisis() bool {
	return r.Systolic > 180 || r.Diastolic > 120
}

// HasDescription reports whether the reading carries a non-empty description
func (r Reading) HasDescription() bool {
	return r.Description != nil && *r.Description != ""
}

// String renders the reading the way it appears in reports
func (r Reading) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - Systolic: %d, Diastolic: %d", r.ReadingTime.Format("15:04"), r.Systolic, r.Diastolic)
	if r.HeartRate != nil && *r.HeartRate != 0 {
		fmt.Fprintf(&b, ", Heart Rate: %d", *r.HeartRate)
	}
	if r.HasDescription() {
		fmt.Fprintf(&b, ", Description: %s", *r.Description)
	}
	return b.String()
}

// Summary holds the arithmetic means of a set of readings
type Summary struct {
	Count        int
	AvgSystolic  float64
	AvgDiastolic float64
	// AvgHeartRate is nil when no reading has a heart rate
	AvgHeartRate *float64
}

// Averages computes the means over readings. Heart rate ignores missing values.
func Averages(readings []Reading) Summary {
	s := Summary{Count: len(readings)}
	if len(readings) == 0 {
		return s
	}

	var sys, dia, hr, hrCount int
	for _, r := range readings {
		sys += r.Systolic
		dia += r.Diastolic
		if r.HeartRate != nil {
			hr += *r.HeartRate
			hrCount++
		}
	}

	s.AvgSystolic = float64(sys) / float64(len(readings))
	s.AvgDiastolic = float64(dia) / float64(len(readings))
	if hrCount > 0 {
		avg := float64(hr) / float64(hrCount)
		s.AvgHeartRate = &avg
	}
	return s
}

// Classification counts readings per category. Categories overlap.
type Classification struct {
	Normal   int
	Elevated int
	Stage1   int
	Stage2   int
	Crisis   int
}

// Classify tallies every predicate that holds for each reading
func Classify(readings []Reading) Classification {
	var c Classification
	for _, r := range readings {
		if r.IsNormal() {
			c.Normal++
		}
		if r.IsElevated() {
			c.Elevated++
		}
		if r.IsStage1() {
			c.Stage1++
		}
		if r.IsStage2() {
			c.Stage2++
		}
		if r.IsCrisis() {
			c.Crisis++
		}
	}
	return c
}

// LatestTime returns the greatest reading time, zero for an empty slice
func LatestTime(readings []Reading) time.Time {
	var latest time.Time
	for _, r := range readings {
		if r.ReadingTime.After(latest) {
			latest = r.ReadingTime
		}
	}
	return latest
}

// DateRange restricts a query to calendar days. Nil bounds mean "no restriction".
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// IsZero reports an all-time range
func (d DateRange) IsZero() bool {
	return d.Start == nil
}

// IsSingleDay reports whether the range covers exactly one calendar day
func (d DateRange) IsSingleDay() bool {
	if d.Start == nil {
		return false
	}
	return d.End == nil || d.Start.Equal(*d.End)
}

// Bounds returns the half-open [from, to) interval matching the range.
// A start without an end covers that one day; a start and end cover both days inclusive.
func (d DateRange) Bounds() (from, to time.Time, ok bool) {
	if d.Start == nil {
		return time.Time{}, time.Time{}, false
	}
	from = *d.Start
	end := from
	if d.End != nil {
		end = *d.End
	}
	return from, end.AddDate(0, 0, 1), true
}
