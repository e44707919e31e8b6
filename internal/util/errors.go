package util

import "errors"

var (
	ErrCharacterRequired  = errors.New("character is required")
	ErrEventTypeRequired  = errors.New("eventType is required")
	ErrCharacterNotFound  = errors.New("character not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionClosed      = errors.New("session already ended")
	ErrInvalidInterval    = errors.New("review interval ladder must be non-empty positive days")
	ErrContentUnavailable = errors.New("hanja database not loaded")
)
