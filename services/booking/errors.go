package booking

import (
	"fmt"
	"strings"
)

// ValidationError carries the complete defect list from a pre-flight check.
// It never reaches the network layer and is never retried.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// TokenExpiredError means Book was attempted against an absent or expired
// hold. The caller must re-run Search and PreBook.
type TokenExpiredError struct {
	Code string
}

func (e *TokenExpiredError) Error() string {
	return fmt.Sprintf("reservation token for %s expired or missing, re-run search and prebook", e.Code)
}

// RoomGoneError means the recovery path re-searched and the room offer is no
// longer on sale. Terminal; no further retry.
type RoomGoneError struct {
	Code string
}

func (e *RoomGoneError) Error() string {
	return fmt.Sprintf("room %s no longer available", e.Code)
}

// SessionError is a bad session reference or an operation invoked in the
// wrong session state.
type SessionError struct {
	SessionID string
	Message   string
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session %s: %s", e.SessionID, e.Message)
}
