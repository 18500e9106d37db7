package domain

import (
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }
func strPtr(s string) *string { return &s }

func TestClassificationPredicates(t *testing.T) {
	tests := []struct {
		sys, dia                                 int
		normal, elevated, stage1, stage2, crisis bool
	}{
		{sys: 115, dia: 75, normal: true},
		{sys: 125, dia: 75, elevated: true},
		{sys: 135, dia: 75, stage1: true},
		{sys: 118, dia: 85, stage1: true},
		{sys: 145, dia: 85, stage1: true, stage2: true},
		{sys: 150, dia: 95, stage2: true},
		{sys: 185, dia: 100, stage2: true, crisis: true},
		{sys: 170, dia: 125, stage2: true, crisis: true},
		{sys: 180, dia: 120, stage2: true},
	}

	for _, tt := range tests {
		r := Reading{Systolic: tt.sys, Diastolic: tt.dia}
		if got := r.IsNormal(); got != tt.normal {
			t.Errorf("%d/%d IsNormal = %v", tt.sys, tt.dia, got)
		}
		if got := r.IsElevated(); got != tt.elevated {
			t.Errorf("%d/%d IsElevated = %v", tt.sys, tt.dia, got)
		}
		if got := r.IsStage1(); got != tt.stage1 {
			t.Errorf("%d/%d IsStage1 = %v", tt.sys, tt.dia, got)
		}
		if got := r.IsStage2(); got != tt.stage2 {
			t.Errorf("%d/%d IsStage2 = %v", tt.sys, tt.dia, got)
		}
		if got := r.IsCrisis(); got != tt.crisis {
			t.Errorf("%d/%d IsCrisis = %v", tt.sys, tt.dia, got)
		}
	}
}

func TestClassifyCountsOverlap(t *testing.T) {
	readings := []Reading{
		{Systolic: 115, Diastolic: 75},
		{Systolic: 190, Diastolic: 100},
		{Systolic: 145, Diastolic: 85},
	}
	got := Classify(readings)
	want := Classification{Normal: 1, Stage1: 1, Stage2: 2, Crisis: 1}
	if got != want {
		t.Fatalf("Classify = %+v, want %+v", got, want)
	}
}

func TestReadingString(t *testing.T) {
	at := time.Date(2023, 1, 1, 8, 30, 0, 0, time.UTC)
	tests := []struct {
		name    string
		reading Reading
		want    string
	}{
		{
			name:    "bare",
			reading: Reading{Systolic: 120, Diastolic: 80, ReadingTime: at},
			want:    "08:30 - Systolic: 120, Diastolic: 80",
		},
		{
			name:    "full",
			reading: Reading{Systolic: 120, Diastolic: 80, HeartRate: intPtr(72), Description: strPtr("morning"), ReadingTime: at},
			want:    "08:30 - Systolic: 120, Diastolic: 80, Heart Rate: 72, Description: morning",
		},
		{
			name:    "zero heart rate omitted",
			reading: Reading{Systolic: 120, Diastolic: 80, HeartRate: intPtr(0), Description: strPtr(""), ReadingTime: at},
			want:    "08:30 - Systolic: 120, Diastolic: 80",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.reading.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAverages(t *testing.T) {
	readings := []Reading{
		{Systolic: 120, Diastolic: 80, HeartRate: intPtr(70)},
		{Systolic: 130, Diastolic: 85},
		{Systolic: 125, Diastolic: 90, HeartRate: intPtr(80)},
	}
	s := Averages(readings)
	if s.Count != 3 || s.AvgSystolic != 125 {
		t.Errorf("summary = %+v", s)
	}
	if s.AvgDiastolic != 85 {
		t.Errorf("avg diastolic = %v, want 85", s.AvgDiastolic)
	}
	if s.AvgHeartRate == nil || *s.AvgHeartRate != 75 {
		t.Errorf("avg heart rate = %v, want 75", s.AvgHeartRate)
	}

	if empty := Averages(nil); empty.Count != 0 || empty.AvgHeartRate != nil {
		t.Errorf("empty summary = %+v", empty)
	}
}

func TestLatestTime(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	readings := []Reading{
		{ReadingTime: base.Add(2 * time.Hour)},
		{ReadingTime: base.Add(5 * time.Hour)},
		{ReadingTime: base},
	}
	if got := LatestTime(readings); !got.Equal(base.Add(5 * time.Hour)) {
		t.Errorf("LatestTime = %v", got)
	}
	if !LatestTime(nil).IsZero() {
		t.Errorf("LatestTime(nil) should be zero")
	}
}

func TestDateRangeBounds(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)

	if _, _, ok := (DateRange{}).Bounds(); ok {
		t.Errorf("zero range should have no bounds")
	}

	from, to, ok := DateRange{Start: &start}.Bounds()
	if !ok || !from.Equal(start) || !to.Equal(start.AddDate(0, 0, 1)) {
		t.Errorf("open end bounds = [%v, %v)", from, to)
	}

	from, to, _ = DateRange{Start: &start, End: &end}.Bounds()
	if !from.Equal(start) || !to.Equal(time.Date(2023, 1, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("closed bounds = [%v, %v)", from, to)
	}

	if (DateRange{Start: &start, End: &end}).IsSingleDay() {
		t.Errorf("three-day range reported as single day")
	}
	same := start
	if !(DateRange{Start: &start, End: &same}).IsSingleDay() {
		t.Errorf("equal bounds should be a single day")
	}
}
