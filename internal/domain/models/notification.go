package models

import "time"

// NotificationResult is the outcome of a single send attempt. Senders convert
// transport errors into a failure result instead of returning them.
type NotificationResult struct {
	IsSuccess    bool      `json:"is_success"`
	Message      string    `json:"message"`
	ErrorMessage string    `json:"error_message,omitempty"`
	SentAt       time.Time `json:"sent_at"`
}

func SendSucceeded(message string) NotificationResult {
	return NotificationResult{
		IsSuccess: true,
		Message:   message,
		SentAt:    time.Now(),
	}
}

func SendFailed(message, errText string) NotificationResult {
	return NotificationResult{
		IsSuccess:    false,
		Message:      message,
		ErrorMessage: errText,
		SentAt:       time.Now(),
	}
}

// DispatchOutcome joins the per-channel results for one consumed event.
// A nil channel result means the channel was not attempted (empty recipient
// or duplicate suppressed by the deduper).
type DispatchOutcome struct {
	EventUUID string
	Email     *NotificationResult
	SMS       *NotificationResult
}

// Failed reports whether any attempted channel failed.
func (d DispatchOutcome) Failed() bool {
	if d.Email != nil && !d.Email.IsSuccess {
		return true
	}
	if d.SMS != nil && !d.SMS.IsSuccess {
		return true
	}
	return false
}
