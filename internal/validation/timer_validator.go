package validation

import (
	"time"

	"timepulse/internal/domain"
)

const (
	timerNameMinLength = 1
	timerNameMaxLength = 255
)

// TimerValidator provides validation for timer creation and edits.
// Display-time computation assumes its inputs were validated here, so a
// rejected timer must never reach the store.
type TimerValidator struct {
	validator *Validator
}

// NewTimerValidator creates a new timer validator
func NewTimerValidator() *TimerValidator {
	return &TimerValidator{
		validator: NewValidator(),
	}
}

// ValidateName validates a timer display name
func (tv *TimerValidator) ValidateName(name string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(name)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("name")
		return validationError
	}
	if !tv.validator.IsValidStringLength(trimmed, timerNameMinLength, timerNameMaxLength) {
		validationError.AddInvalidLengthError("name", trimmed, timerNameMinLength, timerNameMaxLength)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateForCreation validates a fully-assembled timer before it enters the
// store. Type-specific rules are matched exhaustively against the tag.
func (tv *TimerValidator) ValidateForCreation(t domain.Timer) error {
	validationError := NewValidationError()

	if nameErr := tv.ValidateName(t.Name); nameErr != nil {
		if nameValidationErr, ok := nameErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, nameValidationErr.Errors...)
		}
	}

	if t.Color != "" && !tv.validator.IsValidColor(t.Color) {
		validationError.AddInvalidFormatError("color", t.Color, "#RRGGBB")
	}

	if !t.Type.IsValid() {
		validationError.AddInvalidValueError("type", string(t.Type), "must be countdown, stopwatch or worldclock")
		return validationError
	}
	if !t.IsValid() {
		validationError.AddInvalidValueError("type", string(t.Type), "timer fields do not match its type")
		return validationError
	}

	switch t.Type {
	case domain.TypeCountdown:
		tv.validateCountdown(t.Countdown, validationError)
	case domain.TypeStopwatch:
		tv.validateStopwatch(t.Stopwatch, validationError)
	case domain.TypeWorldClock:
		tv.validateWorldClock(t.WorldClock, validationError)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateForUpdate validates a patched timer before the patch is committed.
// The update either fully applies or is rejected here with no field changed.
func (tv *TimerValidator) ValidateForUpdate(patched domain.Timer) error {
	return tv.ValidateForCreation(patched)
}

func (tv *TimerValidator) validateCountdown(spec *domain.CountdownSpec, ve *ValidationError) {
	if !tv.validator.IsFiniteInstant(spec.TargetDate) {
		ve.AddRequiredError("targetDate")
	}
	if !tv.validator.IsKnownTimezone(spec.Timezone) {
		ve.AddInvalidValueError("timezone", spec.Timezone, "not a known IANA zone")
	}
}

func (tv *TimerValidator) validateStopwatch(spec *domain.StopwatchSpec, ve *ValidationError) {
	if spec.Running && spec.PausedAt != nil {
		ve.AddInvalidValueError("pausedAt", *spec.PausedAt, "must be unset while the stopwatch is running")
	}
	if spec.TotalPaused < 0 {
		ve.AddInvalidValueError("totalPausedTime", spec.TotalPaused, "must not be negative")
	}
	if spec.PausedAt != nil && spec.StartTime != nil && spec.PausedAt.Before(*spec.StartTime) {
		ve.AddInvalidValueError("pausedAt", *spec.PausedAt, "must not be before the start time")
	}
}

func (tv *TimerValidator) validateWorldClock(spec *domain.WorldClockSpec, ve *ValidationError) {
	if spec.Timezone == "" {
		ve.AddRequiredError("timezone")
	} else if !tv.validator.IsKnownTimezone(spec.Timezone) {
		ve.AddInvalidValueError("timezone", spec.Timezone, "not a known IANA zone")
	}
}

// ParseTargetDate parses a user-supplied date/time string into an absolute
// instant, rejecting anything that does not produce a finite time value.
func (tv *TimerValidator) ParseTargetDate(value string) (time.Time, error) {
	validationError := NewValidationError()
	trimmed := tv.validator.TrimAndValidateString(value)
	if trimmed == "" {
		validationError.AddRequiredError("targetDate")
		return time.Time{}, validationError
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return parsed, nil
		}
	}

	validationError.AddInvalidFormatError("targetDate", trimmed, "RFC3339 or YYYY-MM-DD[ HH:MM[:SS]]")
	return time.Time{}, validationError
}
