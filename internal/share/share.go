// Package share encodes a reduced subset of timer fields into a single
// opaque token suitable for embedding in a URL, and decodes such tokens
// back. The pipeline is JSON, then percent-encoding, then base64, matching
// the tokens produced by the browser client so shares interoperate both ways.
package share

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"timepulse/internal/domain"
	"timepulse/internal/errors"
)

// SharedTimer is the reduced field subset carried by a share token.
type SharedTimer struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	TargetDate time.Time `json:"targetDate"`
	Timezone   string    `json:"timezone,omitempty"`
	Color      string    `json:"color,omitempty"`
}

type payload struct {
	Timers []SharedTimer `json:"timers"`
}

// Encode builds a share token for the countdown timers in the collection.
// Non-countdown timers carry no shareable target and are skipped.
func Encode(timers []domain.Timer) (string, error) {
	shared := make([]SharedTimer, 0, len(timers))
	for _, t := range timers {
		if t.Type != domain.TypeCountdown || t.Countdown == nil {
			continue
		}
		shared = append(shared, SharedTimer{
			ID:         t.ID,
			Name:       t.Name,
			TargetDate: t.Countdown.TargetDate,
			Timezone:   t.Countdown.Timezone,
			Color:      t.Color,
		})
	}
	if len(shared) == 0 {
		return "", errors.NewValidationError("nothing to share: no countdown timers in the collection", nil)
	}

	data, err := json.Marshal(payload{Timers: shared})
	if err != nil {
		return "", errors.WrapError(err, errors.ErrorTypeInvalidInput, "encode share payload")
	}
	return base64.StdEncoding.EncodeToString([]byte(percentEncode(string(data)))), nil
}

// Decode parses a share token back into the reduced timer subset.
func Decode(token string) ([]SharedTimer, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return nil, errors.NewInvalidInputError("token", token, "not valid base64")
	}
	decoded, err := url.PathUnescape(string(raw))
	if err != nil {
		return nil, errors.NewInvalidInputError("token", token, "malformed percent encoding")
	}

	var p payload
	if err := json.Unmarshal([]byte(decoded), &p); err != nil {
		return nil, errors.NewInvalidInputError("token", token, "payload is not valid JSON")
	}
	if len(p.Timers) == 0 {
		return nil, errors.NewInvalidInputError("token", token, "payload contains no timers")
	}
	return p.Timers, nil
}

// Timers converts decoded share entries into countdown timers ready to be
// added to a store.
func Timers(shared []SharedTimer) []domain.Timer {
	timers := make([]domain.Timer, len(shared))
	for i, s := range shared {
		timer := domain.NewCountdown(s.Name, s.TargetDate, s.Timezone)
		timer.ID = s.ID
		timer.Color = s.Color
		timers[i] = timer
	}
	return timers
}

// percentEncode escapes a string the way browsers escape URI components:
// everything except unreserved characters and !~*'() becomes %XX.
func percentEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnescaped(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xf])
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

func isUnescaped(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
