package models

import "time"

// LoadAttempt is the journal entry written for every order load.
type LoadAttempt struct {
	AttemptID     string    `json:"attemptId"`
	Source        Source    `json:"source"`
	FailureKind   string    `json:"failureKind,omitempty"`
	FailureReason string    `json:"failureReason,omitempty"`
	OrderID       string    `json:"orderId"`
	Username      string    `json:"username"`
	ItemCount     int       `json:"itemCount"`
	Total         string    `json:"total"`
	Committed     bool      `json:"committed"`
	StartedAt     time.Time `json:"startedAt"`
	DurationMs    int64     `json:"durationMs"`
}
