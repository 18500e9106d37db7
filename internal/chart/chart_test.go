package chart

import (
	"bytes"
	"errors"
	"image/png"
	"testing"
	"time"

	"github.com/vladimiradmaev/pressure-helper/internal/domain"
)

func readings(n int) []domain.Reading {
	base := time.Date(2023, 1, 1, 8, 0, 0, 0, time.UTC)
	out := make([]domain.Reading, n)
	for i := range out {
		out[i] = domain.Reading{
			Systolic:    115 + i%20,
			Diastolic:   75 + i%10,
			ReadingTime: base.AddDate(0, 0, i),
		}
	}
	return out
}

func TestRenderPressureProducesPNG(t *testing.T) {
	for _, n := range []int{2, 12, 45} {
		data, err := RenderPressure(readings(n))
		if err != nil {
			t.Fatalf("RenderPressure(%d): %v", n, err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decode PNG: %v", err)
		}
		if b := img.Bounds(); b.Dx() != Width || b.Dy() != Height {
			t.Fatalf("image size = %dx%d", b.Dx(), b.Dy())
		}
	}
}

func TestRenderPressureNeedsTwoReadings(t *testing.T) {
	if _, err := RenderPressure(readings(1)); !errors.Is(err, ErrTooFewReadings) {
		t.Fatalf("error = %v, want ErrTooFewReadings", err)
	}
}

func TestLabelStep(t *testing.T) {
	tests := map[int]int{1: 1, 30: 1, 31: 3, 45: 4, 100: 10}
	for n, want := range tests {
		if got := LabelStep(n); got != want {
			t.Errorf("LabelStep(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestValueRangeIsPadded(t *testing.T) {
	lo, hi := valueRange([]domain.Reading{{Systolic: 142, Diastolic: 88}, {Systolic: 121, Diastolic: 79}})
	if lo != 60 || hi != 160 {
		t.Fatalf("range = [%v, %v], want [60, 160]", lo, hi)
	}
}
