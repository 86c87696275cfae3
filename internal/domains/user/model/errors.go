package model

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong
	// password so login failures do not reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)
