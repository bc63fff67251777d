// Package fasting implements the fasting session state machine: starting,
// extending, cancelling and completing a user's fast, water tracking, and
// bounded history retrieval. It is the only component with write side
// effects; analytics and planning are pure reads over its output.
package fasting

import "errors"

// The four failure kinds lifecycle operations can return. Callers map
// these to their transport (conflict vs. not-found vs. bad request);
// everything else that bubbles up is a storage failure.
var (
	// ErrSessionConflict is returned by StartFast when the user already
	// has an active session.
	ErrSessionConflict = errors.New("an active fasting session already exists")

	// ErrSessionNotFound is returned when a session id does not exist or
	// belongs to a different user.
	ErrSessionNotFound = errors.New("fasting session not found")

	// ErrSessionNotActive is returned when an operation requires an active
	// session but the session has already completed or been cancelled.
	ErrSessionNotActive = errors.New("fasting session is not active")

	// ErrInvalidInput is returned when an argument is outside its
	// documented domain. Wrapped with detail at each call site.
	ErrInvalidInput = errors.New("invalid input")
)
