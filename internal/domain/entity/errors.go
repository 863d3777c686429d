package entity

import "errors"

var (
	// ErrInvalidTransition signals a requested status unreachable from the
	// booking's current status; the booking is left unmodified.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotFound signals a booking id absent from both collections
	ErrNotFound = errors.New("booking not found")
)
