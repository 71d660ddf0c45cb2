package models

import "errors"

// Common errors
var (
	// ErrSessionExpired covers both expired and unknown share identifiers;
	// the two are deliberately indistinguishable to callers.
	ErrSessionExpired = errors.New("shared search expired or not found")
	ErrInvalidFilters = errors.New("invalid filter payload")
	ErrInvalidOwner   = errors.New("invalid owner id")
	ErrEmptyChatText  = errors.New("chat message text is empty")
)
