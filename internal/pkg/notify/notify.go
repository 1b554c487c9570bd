// Package notify builds the transient notifications (toasts) shown after a
// user action. The HTML pages flash them through a cookie, the JSON API
// returns them next to the response data.
package notify

import "time"

// Status is the visual variant of a notification.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// DefaultDuration is how long a notification stays on screen.
const DefaultDuration = 5 * time.Second

// Notification holds toast options.
type Notification struct {
	Status     Status `json:"status"`
	Title      string `json:"title"`
	DurationMs int64  `json:"duration"`
	IsClosable bool   `json:"isClosable"`
}

// Success returns options for a success toast.
func Success(message string) Notification {
	return build(StatusSuccess, message)
}

// Error returns options for an error toast.
func Error(message string) Notification {
	return build(StatusError, message)
}

func build(status Status, message string) Notification {
	return Notification{
		Status:     status,
		Title:      message,
		DurationMs: DefaultDuration.Milliseconds(),
		IsClosable: true,
	}
}

// IsError reports whether the notification is a failure toast.
func (n Notification) IsError() bool {
	return n.Status == StatusError
}
