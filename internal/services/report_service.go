package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/vladimiradmaev/pressure-helper/internal/chart"
	"github.com/vladimiradmaev/pressure-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/pressure-helper/internal/errors"
	"github.com/vladimiradmaev/pressure-helper/internal/logger"
)

const (
	ReportTitle         = "Blood Pressure Readings Report"
	NoReportDataMessage = "No blood pressure readings found matching your criteria."

	pageMargin  = 40.0
	bodyWidth   = 532.0
	lineHeight  = 15.0
	chartWidth  = 500.0
	chartHeight = 250.0
	chartImage  = "pressure-chart"
)

// ReportRequest describes one report: the query that selected the readings and the advice to append
type ReportRequest struct {
	UserID     int64
	Range      domain.DateRange
	Pattern    string
	HasPattern bool
	Readings   []domain.Reading
	Advice     string
}

// ReportService renders readings into a transient PDF file
type ReportService struct {
	dir string
}

func NewReportService(dir string) *ReportService {
	if dir == "" {
		dir = os.TempDir()
	}
	return &ReportService{dir: dir}
}

// FilterLines describes the query in the "Report Filters" section
func FilterLines(rng domain.DateRange, pattern string, hasPattern bool) []string {
	var lines []string
	switch {
	case rng.IsSingleDay():
		lines = append(lines, "Date: "+rng.Start.Format("2006-01-02"))
	case rng.Start != nil:
		lines = append(lines, fmt.Sprintf("Date Range: %s to %s",
			rng.Start.Format("2006-01-02"), rng.End.Format("2006-01-02")))
	}
	if hasPattern {
		lines = append(lines, fmt.Sprintf("Description Filter: Pattern \"%s\"", pattern))
	}
	return lines
}

// AverageLine formats the mean values of readings
func AverageLine(s domain.Summary) string {
	heartRate := "N/A"
	if s.AvgHeartRate != nil {
		heartRate = fmt.Sprintf("%.2f", *s.AvgHeartRate)
	}
	return fmt.Sprintf("Average Blood Pressure: Systolic: %.2f, Diastolic: %.2f, Heart Rate: %s",
		s.AvgSystolic, s.AvgDiastolic, heartRate)
}

// ClassificationLine formats category counts. A reading can count in more than one category.
func ClassificationLine(c domain.Classification) string {
	return fmt.Sprintf("Normal: %d, Elevated: %d, Stage 1: %d, Stage 2: %d, Crisis: %d",
		c.Normal, c.Elevated, c.Stage1, c.Stage2, c.Crisis)
}

type reportWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (w *reportWriter) section(text string) {
	w.pdf.SetFont("Times", "BI", 14)
	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.CellFormat(bodyWidth, 20, w.tr(text), "", 1, "L", false, 0, "")
}

func (w *reportWriter) body(text string) {
	w.pdf.SetFont("Helvetica", "", 12)
	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.MultiCell(bodyWidth, lineHeight, w.tr(text), "", "L", false)
}

func (w *reportWriter) separator() {
	y := w.pdf.GetY() + 5
	w.pdf.SetDrawColor(211, 211, 211)
	w.pdf.Line(pageMargin, y, pageMargin+520, y)
	w.pdf.SetY(y + 12)
}

// Generate writes the report to a new file in the report directory and returns its path.
// The caller owns the file and must remove it.
func (s *ReportService) Generate(ctx context.Context, req ReportRequest) (string, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, 60)
	w := &reportWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Times", "B", 16)
		pdf.SetTextColor(0, 0, 139)
		pdf.CellFormat(bodyWidth, 30, ReportTitle, "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})
	pdf.AddPage()

	if len(req.Readings) == 0 {
		w.body(NoReportDataMessage)
	} else {
		s.writeReadings(ctx, w, req)
	}

	if err := pdf.Error(); err != nil {
		return "", apperrors.NewInternalError(fmt.Errorf("failed to render report: %w", err))
	}

	f, err := os.CreateTemp(s.dir, fmt.Sprintf("%d_blood_pressure_report_*.pdf", req.UserID))
	if err != nil {
		return "", apperrors.NewInternalError(fmt.Errorf("failed to create report file: %w", err))
	}
	path := f.Name()

	if err := pdf.Output(f); err != nil {
		f.Close()
		os.Remove(path)
		return "", apperrors.NewInternalError(fmt.Errorf("failed to write report: %w", err))
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", apperrors.NewInternalError(fmt.Errorf("failed to write report: %w", err))
	}

	logger.Info("Report generated", "user_id", req.UserID, "readings", len(req.Readings), "path", path)
	return path, nil
}

func (s *ReportService) writeReadings(ctx context.Context, w *reportWriter, req ReportRequest) {
	if filters := FilterLines(req.Range, req.Pattern, req.HasPattern); len(filters) > 0 {
		w.section("Report Filters:")
		for _, line := range filters {
			w.body(line)
		}
		w.pdf.Ln(20)
	}

	var current string
	for _, r := range req.Readings {
		day := r.ReadingTime.Format("2006-01-02")
		if day != current {
			if current != "" {
				w.separator()
			}
			w.section(r.ReadingTime.Format("Monday, January 02, 2006"))
			current = day
		}
		w.body(r.String())
	}

	w.pdf.Ln(30)
	w.pdf.SetFont("Helvetica", "B", 12)
	w.pdf.MultiCell(bodyWidth, lineHeight, AverageLine(domain.Averages(req.Readings)), "", "L", false)
	w.pdf.SetFont("Helvetica", "", 12)
	w.pdf.MultiCell(bodyWidth, lineHeight, ClassificationLine(domain.Classify(req.Readings)), "", "L", false)

	if len(req.Readings) > 1 {
		png, err := chart.RenderPressure(req.Readings)
		if err != nil {
			logger.WithContext(ctx).Warn("Failed to render chart", "user_id", req.UserID, "error", err)
		} else {
			w.pdf.Ln(20)
			opts := fpdf.ImageOptions{ImageType: "PNG"}
			w.pdf.RegisterImageOptionsReader(chartImage, opts, bytes.NewReader(png))
			w.pdf.ImageOptions(chartImage, pageMargin, w.pdf.GetY(), chartWidth, chartHeight, true, opts, 0, "")
		}
	}

	if advice := strings.TrimSpace(req.Advice); advice != "" {
		w.pdf.Ln(20)
		w.section("AI Medical Recommendations:")
		for _, para := range strings.Split(advice, "\n") {
			if strings.TrimSpace(para) == "" {
				w.pdf.Ln(lineHeight / 2)
				continue
			}
			w.body(para)
		}
	}
}
