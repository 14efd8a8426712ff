package application

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the two outcomes stay indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	// ErrNoFieldsToUpdate rejects an update carrying no recognized field;
	// such a call never reaches the store.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)
