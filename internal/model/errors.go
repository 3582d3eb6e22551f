package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrDocumentTaken  = errors.New("document already registered")

	// Validation errors
	ErrInvalidSchool = errors.New("invalid school")
	ErrInvalidGender = errors.New("invalid gender")
	ErrInvalidLevel  = errors.New("invalid level")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrDuplicateToken  = errors.New("session token already exists")

	// Item errors
	ErrItemNotFound = errors.New("item not found")

	// Data integrity errors
	ErrCorruptMoney = errors.New("money field is not a non-negative integer")
)
