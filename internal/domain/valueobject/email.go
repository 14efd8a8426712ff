package valueobject

import (
	"regexp"
	"strings"
)

// local@domain.ext: non-empty parts, no whitespace, at least one domain dot.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email is a validated, trimmed e-mail address. The zero value is invalid;
// construct through NewEmail.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Email{}, validationErr("email is required")
	}
	if !emailPattern.MatchString(trimmed) {
		return Email{}, validationErr("email must be a valid address")
	}
	return Email{value: trimmed}, nil
}

func (e Email) String() string {
	return e.value
}

// Equals is value-based and case-sensitive, as input.
func (e Email) Equals(other Email) bool {
	return e.value == other.value
}
