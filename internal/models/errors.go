package models

import "errors"

var (
	// ErrInvalidUser covers every failed user existence check: the user
	// directory answered not-found, or it could not be reached at all.
	// Both look the same to the caller.
	ErrInvalidUser = errors.New("invalid user_id")

	ErrOrderNotFound = errors.New("order not found")
	ErrUserNotFound  = errors.New("user not found")

	ErrDuplicateUser      = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
