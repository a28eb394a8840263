package validation

import (
	"regexp"
	"strings"
	"time"
)

// Validator provides common validation utilities
type Validator struct {
	colorRegex *regexp.Regexp
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		colorRegex: regexp.MustCompile(`^#[0-9a-fA-F]{6}$`),
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidColor checks if a string is a hex accent color like #1890FF
func (v *Validator) IsValidColor(color string) bool {
	return v.colorRegex.MatchString(color)
}

// IsFiniteInstant checks that a time value is usable as an absolute instant.
// The zero value marks a missing or unparseable date and is rejected.
func (v *Validator) IsFiniteInstant(t time.Time) bool {
	return !t.IsZero()
}

// IsKnownTimezone checks whether a string names a loadable IANA zone.
// Empty is allowed; unknown zones degrade to the system default at display
// time, so this is only used to warn at creation.
func (v *Validator) IsKnownTimezone(tz string) bool {
	if tz == "" {
		return true
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}
