package valueobject

import "strings"

// Name is a validated display name: trimmed, at least 2 characters.
type Name struct {
	value string
}

func NewName(raw string) (Name, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Name{}, validationErr("name is required")
	}
	if len([]rune(trimmed)) < 2 {
		return Name{}, validationErr("name must be at least 2 characters")
	}
	return Name{value: trimmed}, nil
}

func (n Name) String() string {
	return n.value
}
