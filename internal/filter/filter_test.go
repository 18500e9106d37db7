package filter

import (
	"testing"
	"time"

	"github.com/vladimiradmaev/pressure-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/pressure-helper/internal/errors"
)

func strPtr(s string) *string { return &s }

func sampleReadings() []domain.Reading {
	day := time.Date(2023, 1, 1, 8, 0, 0, 0, time.UTC)
	return []domain.Reading{
		{ID: 1, Systolic: 120, Diastolic: 80, ReadingTime: day},
		{ID: 2, Systolic: 140, Diastolic: 90, ReadingTime: day.AddDate(0, 0, 1), Description: strPtr("Elevated reading")},
		{ID: 3, Systolic: 110, Diastolic: 70, ReadingTime: day.AddDate(0, 0, 2), Description: strPtr("after coffee")},
		{ID: 4, Systolic: 130, Diastolic: 85, ReadingTime: day.AddDate(0, 0, 3), Description: strPtr("ELEVATED after run")},
	}
}

func ids(readings []domain.Reading) []uint {
	out := make([]uint, 0, len(readings))
	for _, r := range readings {
		out = append(out, r.ID)
	}
	return out
}

func equalIDs(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyPattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    []uint
	}{
		{name: "case insensitive", pattern: "elevated", want: []uint{2, 4}},
		{name: "substring search", pattern: "coffee", want: []uint{3}},
		{name: "anchored", pattern: "^after", want: []uint{3}},
		{name: "alternation keeps order", pattern: "run|coffee", want: []uint{3, 4}},
		{name: "no match", pattern: "salt", want: []uint{}},
		{name: "empty pattern matches any description", pattern: "", want: []uint{2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyPattern(sampleReadings(), tt.pattern)
			if err != nil {
				t.Fatalf("ApplyPattern(%q) error: %v", tt.pattern, err)
			}
			if got == nil {
				t.Fatalf("expected empty slice, got nil")
			}
			if !equalIDs(ids(got), tt.want) {
				t.Fatalf("ApplyPattern(%q) = %v, want %v", tt.pattern, ids(got), tt.want)
			}
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	re, err := Compile("elevated|coffee")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	once := Apply(sampleReadings(), re)
	twice := Apply(once, re)
	if !equalIDs(ids(once), ids(twice)) {
		t.Fatalf("filter not idempotent: %v vs %v", ids(once), ids(twice))
	}
}

func TestValidateRejectsInvalidPattern(t *testing.T) {
	err := Validate("[invalid")
	if err == nil {
		t.Fatal("expected error for invalid pattern")
	}
	if !apperrors.HasCode(err, apperrors.CodeInvalidPattern) {
		t.Fatalf("expected INVALID_PATTERN, got %v", err)
	}
	if msg := apperrors.UserMessage(err); msg != `Invalid regex pattern: "[invalid". Please check your pattern syntax.` {
		t.Fatalf("unexpected user message: %q", msg)
	}
}
