package entity

import (
	"time"
)

// User is the aggregate root for the identity domain.
// PasswordHash holds a bcrypt digest and must never be serialized.
type User struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Telephones   []Telephone `json:"telephones"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Telephone is a Brazilian-style phone pair: 2-digit area code plus
// an 8 or 9 digit subscriber number.
type Telephone struct {
	Number   int `json:"number"`
	AreaCode int `json:"area_code"`
}

// DeletedUser is the minimal receipt returned after account removal.
type DeletedUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
