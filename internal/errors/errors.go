package errors

import "errors"

// Common errors used throughout the application
var (
	// Database errors
	ErrCardNotFound  = errors.New("card not found")
	ErrDatabaseQuery = errors.New("database query failed")

	// Validation errors
	ErrEmptyText        = errors.New("card text cannot be empty")
	ErrInvalidCardID    = errors.New("invalid card ID")
	ErrInvalidPosition  = errors.New("invalid canvas position")
	ErrInvalidBoolean   = errors.New("invalid boolean value (use true/false)")
	ErrUnknownConfigKey = errors.New("unknown configuration key")
)
