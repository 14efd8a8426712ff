package valueobject

import "strings"

// Password holds a raw (not yet hashed) password that passed shape checks.
// It exists only transiently on the way to the hasher; never persist or log it.
type Password struct {
	value string
}

// NewPassword trims before the length check, so a blank-only password fails
// as required rather than too short.
func NewPassword(raw string) (Password, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Password{}, validationErr("password is required")
	}
	if len(trimmed) < 6 {
		return Password{}, validationErr("password must be at least 6 characters")
	}
	return Password{value: trimmed}, nil
}

func (p Password) String() string {
	return p.value
}
