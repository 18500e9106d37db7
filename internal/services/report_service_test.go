package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vladimiradmaev/pressure-helper/internal/domain"
)

func TestReportGenerate(t *testing.T) {
	dir := t.TempDir()
	svc := NewReportService(dir)

	readings := sampleReadings()
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

	path, err := svc.Generate(context.Background(), ReportRequest{
		UserID:     7,
		Range:      domain.DateRange{Start: &start, End: &end},
		Pattern:    "café",
		HasPattern: true,
		Readings:   readings,
		Advice:     "Keep monitoring.\n\nReduce salt.",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if filepath.Dir(path) != dir || !strings.HasPrefix(filepath.Base(path), "7_blood_pressure_report_") {
		t.Fatalf("unexpected report path %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF-") {
		t.Fatalf("report is not a PDF")
	}

	empty, err := svc.Generate(context.Background(), ReportRequest{UserID: 7})
	if err != nil {
		t.Fatalf("Generate(empty): %v", err)
	}
	if empty == path {
		t.Fatal("each report needs its own file")
	}
}

func TestReportTextHelpers(t *testing.T) {
	day := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		rng        domain.DateRange
		pattern    string
		hasPattern bool
		want       []string
	}{
		{name: "none", want: nil},
		{name: "single day", rng: domain.DateRange{Start: &day, End: &day}, want: []string{"Date: 2023-01-01"}},
		{name: "open single day", rng: domain.DateRange{Start: &day}, want: []string{"Date: 2023-01-01"}},
		{
			name:       "range with pattern",
			rng:        domain.DateRange{Start: &day, End: &later},
			pattern:    "run",
			hasPattern: true,
			want:       []string{"Date Range: 2023-01-01 to 2023-01-05", `Description Filter: Pattern "run"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterLines(tt.rng, tt.pattern, tt.hasPattern)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("FilterLines = %q, want %q", got, tt.want)
			}
		})
	}

	hr := 71.5
	line := AverageLine(domain.Summary{Count: 2, AvgSystolic: 130, AvgDiastolic: 85, AvgHeartRate: &hr})
	if line != "Average Blood Pressure: Systolic: 130.00, Diastolic: 85.00, Heart Rate: 71.50" {
		t.Errorf("AverageLine = %q", line)
	}
	if got := AverageLine(domain.Summary{Count: 1, AvgSystolic: 120, AvgDiastolic: 80}); !strings.HasSuffix(got, "Heart Rate: N/A") {
		t.Errorf("AverageLine without heart rate = %q", got)
	}
}
