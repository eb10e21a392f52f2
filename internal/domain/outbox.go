package domain

import "time"

// Outbox entry lifecycle.
const (
	OutboxPending  = "pending"
	OutboxRetrying = "retrying"
	OutboxDone     = "done"
	OutboxFailed   = "failed"
)

// Outbox action types.
const (
	ActionEmail        = "email"
	ActionCalendarSync = "calendar_sync"
)

// OutboxEntry is one deferred side effect (email, calendar sync). Side
// effects never fail a booking; they are persisted here and retried with
// exponential backoff until they succeed or run out of attempts.
type OutboxEntry struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	ActionType      string    `json:"action_type" gorm:"index"`
	Payload         string    `json:"payload" gorm:"type:text"`
	Status          string    `json:"status" gorm:"index"`
	Attempts        int       `json:"attempts"`
	MaxAttempts     int       `json:"max_attempts"`
	LastAttemptedAt time.Time `json:"last_attempted_at"`
	CreatedAt       time.Time `json:"created_at"`
	ExternalID      string    `json:"external_id,omitempty"`
	ErrorMessage    string    `json:"error_message,omitempty" gorm:"type:text"`
}

// CanRetry reports whether the entry is still eligible for processing.
func (e *OutboxEntry) CanRetry() bool {
	return (e.Status == OutboxPending || e.Status == OutboxRetrying) &&
		e.Attempts < e.MaxAttempts
}

// MarkAttempt records a processing attempt.
func (e *OutboxEntry) MarkAttempt() {
	e.Attempts++
	e.LastAttemptedAt = time.Now()
	e.Status = OutboxRetrying
}

// MarkSuccess marks the entry done, recording the external resource ID.
func (e *OutboxEntry) MarkSuccess(externalID string) {
	e.Status = OutboxDone
	e.ExternalID = externalID
	e.ErrorMessage = ""
}

// MarkFailed records the error; the entry stays retryable until attempts
// reach MaxAttempts.
func (e *OutboxEntry) MarkFailed(err error) {
	e.ErrorMessage = err.Error()
	if e.Attempts >= e.MaxAttempts {
		e.Status = OutboxFailed
	}
}

// NextRetryDelay returns the exponential backoff delay for the next attempt,
// capped at maxDelay.
func (e *OutboxEntry) NextRetryDelay(baseDelay, maxDelay time.Duration) time.Duration {
	delay := baseDelay * (1 << e.Attempts)
	if delay > maxDelay {
		return maxDelay
	}
	return delay
}
