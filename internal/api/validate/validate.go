package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/emofit/emofit-server/internal/model"
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	MoodMin = 1
	MoodMax = 5

	GratitudeMaxLen = 500
	NotesMaxLen     = 1000

	PasswordMinLen = 6

	// DefaultWindowDays is the trailing window applied when ?days= is absent.
	DefaultWindowDays = 30
)

// EntryInput checks a journal submission and returns every violation found.
// Mood is a pointer so a missing field and a fractional value can both be
// reported as mood violations instead of opaque decode errors.
func EntryInput(mood *float64, gratitude, additionalNotes string) []model.FieldViolation {
	var out []model.FieldViolation

	switch {
	case mood == nil:
		out = append(out, model.FieldViolation{Field: "mood", Message: "Mood is required"})
	case *mood != math.Trunc(*mood):
		out = append(out, model.FieldViolation{Field: "mood", Message: "Mood is required"})
	case *mood < MoodMin || *mood > MoodMax:
		out = append(out, model.FieldViolation{Field: "mood", Message: "Mood is required"})
	}

	g := strings.TrimSpace(gratitude)
	switch {
	case g == "":
		out = append(out, model.FieldViolation{Field: "gratitude", Message: "Gratitude entry is required"})
	case len(g) > GratitudeMaxLen:
		out = append(out, model.FieldViolation{Field: "gratitude", Message: fmt.Sprintf("Gratitude exceeds %d characters", GratitudeMaxLen)})
	}

	if len(strings.TrimSpace(additionalNotes)) > NotesMaxLen {
		out = append(out, model.FieldViolation{Field: "additionalNotes", Message: fmt.Sprintf("Additional notes exceed %d characters", NotesMaxLen)})
	}

	return out
}

// Days parses the ?days= query value. An absent value yields the default
// window. Non-integer or negative values are rejected rather than silently
// clamped.
func Days(raw string) (int, *model.FieldViolation) {
	if raw == "" {
		return DefaultWindowDays, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &model.FieldViolation{Field: "days", Message: "days must be a non-negative integer"}
	}
	return n, nil
}

func Email(v string) error {
	if v == "" {
		return fmt.Errorf("email is required")
	}
	if len(v) > 320 || !emailRx.MatchString(v) {
		return fmt.Errorf("invalid email")
	}
	return nil
}

func Password(v string) error {
	if len(v) < PasswordMinLen {
		return fmt.Errorf("please enter a password with %d or more characters", PasswordMinLen)
	}
	return nil
}
