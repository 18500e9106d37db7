// Package command turns one line of chat text into typed arguments.
// Nothing here touches storage.
package command

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vladimiradmaev/pressure-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/pressure-helper/internal/errors"
)

const (
	DateLayout     = "2006-01-02"
	DatetimeLayout = "2006-01-02 15:04"

	LogUsage = "Usage: /log <systolic> <diastolic> [heart rate] [description] [YYYY-MM-DD HH:MM]"
)

var (
	// Go's regexp has no backreferences, so each quote style gets its own branch.
	patternArgRegex = regexp.MustCompile(`pattern:(?:"([^"]*)"|'([^']*)')`)
	datetimeShape   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}$`)
	digitsOnly      = regexp.MustCompile(`^\d+$`)
)

// ExtractPattern finds a pattern:"..." or pattern:'...' argument.
// It returns the inner text, whether one was present, and the text with the argument removed.
func ExtractPattern(text string) (pattern string, found bool, rest string) {
	m := patternArgRegex.FindStringSubmatchIndex(text)
	if m == nil {
		return "", false, text
	}

	whole := text[m[0]:m[1]]
	if m[2] >= 0 {
		pattern = text[m[2]:m[3]]
	} else {
		pattern = text[m[4]:m[5]]
	}
	return pattern, true, strings.TrimSpace(strings.ReplaceAll(text, whole, ""))
}

// ParseDate parses a strict YYYY-MM-DD literal
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, apperrors.NewInvalidDateError(s)
	}
	return t, nil
}

// ParseDatetime parses a strict YYYY-MM-DD HH:MM literal
func ParseDatetime(s string) (time.Time, error) {
	t, err := time.Parse(DatetimeLayout, s)
	if err != nil {
		return time.Time{}, apperrors.NewInvalidDatetimeError(s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func FormatDatetime(t time.Time) string {
	return t.Format(DatetimeLayout)
}

// LogCommand is the parsed form of /log arguments
type LogCommand struct {
	Systolic    int
	Diastolic   int
	HeartRate   *int
	Description *string
	// ReadingTime is nil when the user did not supply one
	ReadingTime *time.Time
}

// ParseLog parses "<systolic> <diastolic> [heart rate] [description] [YYYY-MM-DD HH:MM]".
// The last two tokens are a timestamp only when together they have the exact datetime shape;
// otherwise they stay in the description.
func ParseLog(args string) (LogCommand, error) {
	var cmd LogCommand

	tokens := strings.Fields(args)
	if len(tokens) < 2 || !digitsOnly.MatchString(tokens[0]) || !digitsOnly.MatchString(tokens[1]) {
		return cmd, apperrors.NewUsageError(LogUsage)
	}

	var err error
	if cmd.Systolic, err = strconv.Atoi(tokens[0]); err != nil {
		return cmd, apperrors.NewUsageError(LogUsage)
	}
	if cmd.Diastolic, err = strconv.Atoi(tokens[1]); err != nil {
		return cmd, apperrors.NewUsageError(LogUsage)
	}

	rest := tokens[2:]
	if n := len(rest); n >= 2 {
		candidate := rest[n-2] + " " + rest[n-1]
		if datetimeShape.MatchString(candidate) {
			ts, err := ParseDatetime(candidate)
			if err != nil {
				return cmd, err
			}
			cmd.ReadingTime = &ts
			rest = rest[:n-2]
		}
	}

	if len(rest) > 0 && digitsOnly.MatchString(rest[0]) {
		hr, err := strconv.Atoi(rest[0])
		if err != nil {
			return cmd, apperrors.NewUsageError(LogUsage)
		}
		cmd.HeartRate = &hr
		rest = rest[1:]
	}

	if len(rest) > 0 {
		desc := strings.Join(rest, " ")
		cmd.Description = &desc
	}

	return cmd, nil
}

// RangeMode decides what a single date argument means
type RangeMode int

const (
	// SingleDay treats one date as that day only (reports and removals)
	SingleDay RangeMode = iota
	// ThroughToday treats one date as that day through today (summaries)
	ThroughToday
)

// ParseRange parses zero, one or two date arguments. Extra arguments are ignored.
// Start and end are not checked for order.
func ParseRange(args []string, mode RangeMode, today time.Time) (domain.DateRange, error) {
	var rng domain.DateRange

	switch {
	case len(args) >= 2:
		start, err := ParseDate(args[0])
		if err != nil {
			return rng, err
		}
		end, err := ParseDate(args[1])
		if err != nil {
			return rng, err
		}
		rng.Start, rng.End = &start, &end
	case len(args) == 1:
		start, err := ParseDate(args[0])
		if err != nil {
			return rng, err
		}
		end := start
		if mode == ThroughToday {
			end = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		}
		rng.Start, rng.End = &start, &end
	}

	return rng, nil
}

// Query is the parsed form of /report and /summarize arguments
type Query struct {
	Range      domain.DateRange
	Pattern    string
	HasPattern bool
}

// ParseQuery extracts the pattern argument, then parses the remaining date arguments
func ParseQuery(args string, mode RangeMode, today time.Time) (Query, error) {
	pattern, found, rest := ExtractPattern(args)
	rng, err := ParseRange(strings.Fields(rest), mode, today)
	if err != nil {
		return Query{}, err
	}
	return Query{Range: rng, Pattern: pattern, HasPattern: found && pattern != ""}, nil
}
