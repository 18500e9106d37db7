// Package filter narrows a set of readings by a regular expression over their descriptions.
package filter

import (
	"regexp"

	"github.com/vladimiradmaev/pressure-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/pressure-helper/internal/errors"
)

// Compile validates pattern and returns its case-insensitive form
func Compile(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, apperrors.NewInvalidPatternError(pattern, err)
	}
	return re, nil
}

// Validate reports whether pattern compiles
func Validate(pattern string) error {
	_, err := Compile(pattern)
	return err
}

// Apply keeps readings whose description contains a match for re, preserving order.
// Readings without a description never match. The result is empty, not nil, when nothing matches.
func Apply(readings []domain.Reading, re *regexp.Regexp) []domain.Reading {
	out := make([]domain.Reading, 0, len(readings))
	for _, r := range readings {
		if r.Description == nil {
			continue
		}
		if re.MatchString(*r.Description) {
			out = append(out, r)
		}
	}
	return out
}

// ApplyPattern compiles pattern and applies it
func ApplyPattern(readings []domain.Reading, pattern string) ([]domain.Reading, error) {
	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	return Apply(readings, re), nil
}
