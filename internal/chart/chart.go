// Package chart draws blood pressure trends as PNG images.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/vladimiradmaev/pressure-helper/internal/domain"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	Width  = 1000
	Height = 500

	marginLeft   = 90.0
	marginRight  = 30.0
	marginTop    = 50.0
	marginBottom = 110.0

	// MaxDenseLabels is the number of points above which x labels are thinned
	MaxDenseLabels = 30
)

var (
	systolicColor  = color.NRGBA{R: 220, G: 30, B: 30, A: 255}
	diastolicColor = color.NRGBA{R: 30, G: 60, B: 220, A: 255}
	gridColor      = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	axisColor      = color.Black
)

// ErrTooFewReadings is returned when there is nothing to draw a line through
var ErrTooFewReadings = errors.New("chart needs at least two readings")

func loadFace(size float64) (font.Face, error) {
	parsed, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return truetype.NewFace(parsed, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}

// LabelStep returns how many points apart x labels are drawn
func LabelStep(n int) int {
	if n > MaxDenseLabels {
		return n / 10
	}
	return 1
}

// valueRange returns y bounds padded to multiples of ten
func valueRange(readings []domain.Reading) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, r := range readings {
		lo = math.Min(lo, float64(r.Diastolic))
		lo = math.Min(lo, float64(r.Systolic))
		hi = math.Max(hi, float64(r.Systolic))
		hi = math.Max(hi, float64(r.Diastolic))
	}
	lo = math.Floor(lo/10)*10 - 10
	hi = math.Ceil(hi/10)*10 + 10
	if lo < 0 {
		lo = 0
	}
	return lo, hi
}

// RenderPressure plots systolic and diastolic values against reading order
func RenderPressure(readings []domain.Reading) ([]byte, error) {
	if len(readings) < 2 {
		return nil, ErrTooFewReadings
	}

	labelFace, err := loadFace(12)
	if err != nil {
		return nil, err
	}
	titleFace, err := loadFace(15)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(Width, Height)
	dc.SetColor(color.White)
	dc.Clear()

	plotW := Width - marginLeft - marginRight
	plotH := Height - marginTop - marginBottom
	lo, hi := valueRange(readings)

	xAt := func(i int) float64 {
		return marginLeft + plotW*float64(i)/float64(len(readings)-1)
	}
	yAt := func(v int) float64 {
		return marginTop + plotH*(1-(float64(v)-lo)/(hi-lo))
	}

	// y grid and tick labels
	dc.SetFontFace(labelFace)
	step := 10.0
	if hi-lo > 120 {
		step = 20
	}
	for v := lo; v <= hi; v += step {
		y := yAt(int(v))
		dc.SetColor(gridColor)
		dc.SetLineWidth(1)
		dc.DrawLine(marginLeft, y, marginLeft+plotW, y)
		dc.Stroke()
		dc.SetColor(axisColor)
		dc.DrawStringAnchored(fmt.Sprintf("%.0f", v), marginLeft-8, y, 1, 0.35)
	}

	// axes
	dc.SetColor(axisColor)
	dc.SetLineWidth(1.5)
	dc.DrawLine(marginLeft, marginTop, marginLeft, marginTop+plotH)
	dc.DrawLine(marginLeft, marginTop+plotH, marginLeft+plotW, marginTop+plotH)
	dc.Stroke()

	// x labels, rotated and thinned
	labelStep := LabelStep(len(readings))
	for i, r := range readings {
		if i%labelStep != 0 {
			continue
		}
		x := xAt(i)
		dc.Push()
		dc.RotateAbout(gg.Radians(-90), x, marginTop+plotH+8)
		dc.DrawStringAnchored(r.ReadingTime.Format("02-Jan"), x, marginTop+plotH+8, 1, 0.35)
		dc.Pop()
	}

	series := []struct {
		clr   color.Color
		value func(domain.Reading) int
	}{
		{systolicColor, func(r domain.Reading) int { return r.Systolic }},
		{diastolicColor, func(r domain.Reading) int { return r.Diastolic }},
	}
	for _, s := range series {
		dc.SetColor(s.clr)
		dc.SetLineWidth(2)
		for i, r := range readings {
			if i == 0 {
				dc.MoveTo(xAt(i), yAt(s.value(r)))
			} else {
				dc.LineTo(xAt(i), yAt(s.value(r)))
			}
		}
		dc.Stroke()
		for i, r := range readings {
			dc.DrawCircle(xAt(i), yAt(s.value(r)), 3)
		}
		dc.Fill()
	}

	// legend
	legendX := marginLeft + plotW - 130
	for i, entry := range []struct {
		label string
		clr   color.Color
	}{{"Systolic", systolicColor}, {"Diastolic", diastolicColor}} {
		y := marginTop + 15 + float64(i)*20
		dc.SetColor(entry.clr)
		dc.SetLineWidth(3)
		dc.DrawLine(legendX, y, legendX+25, y)
		dc.Stroke()
		dc.SetColor(axisColor)
		dc.DrawStringAnchored(entry.label, legendX+32, y, 0, 0.35)
	}

	// axis titles
	dc.SetFontFace(titleFace)
	dc.SetColor(axisColor)
	dc.DrawStringAnchored("Time", marginLeft+plotW/2, Height-15, 0.5, 0)
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), 25, marginTop+plotH/2)
	dc.DrawStringAnchored("Pressure (mm Hg)", 25, marginTop+plotH/2, 0.5, 0.5)
	dc.Pop()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
