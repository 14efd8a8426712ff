package valueobject

import (
	"strconv"
)

// Telephone is a validated phone pair. Area codes render as exactly 2 digits,
// subscriber numbers as exactly 8 or 9.
type Telephone struct {
	number   int
	areaCode int
}

// TelephoneInput is the raw pre-validation form of a telephone. Fields hold
// the decimal text of either a numeric or a numeric-string payload value.
type TelephoneInput struct {
	Number   string
	AreaCode string
}

func NewTelephone(number, areaCode int) (Telephone, error) {
	if number <= 0 {
		return Telephone{}, validationErr("telephone number is invalid")
	}
	if areaCode <= 0 {
		return Telephone{}, validationErr("area code is invalid")
	}
	if l := len(strconv.Itoa(number)); l != 8 && l != 9 {
		return Telephone{}, validationErr("telephone number must have 8 or 9 digits")
	}
	if len(strconv.Itoa(areaCode)) != 2 {
		return Telephone{}, validationErr("area code must have 2 digits")
	}
	return Telephone{number: number, areaCode: areaCode}, nil
}

// ParseTelephone builds a Telephone from textual input. Non-numeric text fails
// before any range or digit-length check runs.
func ParseTelephone(number, areaCode string) (Telephone, error) {
	n, err := strconv.Atoi(number)
	if err != nil {
		return Telephone{}, validationErr("telephone number must contain only digits")
	}
	a, err := strconv.Atoi(areaCode)
	if err != nil {
		return Telephone{}, validationErr("area code must contain only digits")
	}
	return NewTelephone(n, a)
}

// NewTelephones validates a collection. The collection itself must be
// non-empty; only then does per-item validation run.
func NewTelephones(inputs []TelephoneInput) ([]Telephone, error) {
	if len(inputs) == 0 {
		return nil, validationErr("at least one telephone number is required")
	}
	out := make([]Telephone, 0, len(inputs))
	for _, in := range inputs {
		t, err := ParseTelephone(in.Number, in.AreaCode)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (t Telephone) Number() int {
	return t.number
}

func (t Telephone) AreaCode() int {
	return t.areaCode
}
