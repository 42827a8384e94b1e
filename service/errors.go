package service

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials covers both unknown email and wrong password
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering an email that already has an account
	ErrEmailTaken = errors.New("email already registered")
	// ErrPasswordTooLong is returned when a password is longer than bcrypt accepts
	ErrPasswordTooLong = errors.New("password is too long")
	// ErrInvalidDate is returned when a request date is not YYYY-MM-DD
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")
)
