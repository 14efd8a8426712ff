package repository

import (
	"context"
	"errors"

	"identity-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no user backs the given id or email.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a write would violate email uniqueness.
	// The store enforces the constraint so concurrent check-then-write races
	// still surface as a conflict.
	ErrDuplicateEmail = errors.New("email already in use")
)

// UpdateFields is a partial update; nil fields are left untouched.
type UpdateFields struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Telephones   []entity.Telephone
}

// IsEmpty reports whether no field is set.
func (f UpdateFields) IsEmpty() bool {
	return f.Name == nil && f.Email == nil && f.PasswordHash == nil && f.Telephones == nil
}

// UserRepository defines the persistence port for identity records.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, id string, fields UpdateFields) (*entity.User, error)
	Delete(ctx context.Context, id string) (*entity.DeletedUser, error)
	ListAll(ctx context.Context) ([]entity.User, error)
}
