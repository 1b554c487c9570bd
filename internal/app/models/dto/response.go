package dto

import (
	"time"

	"github.com/yigit/studyplan/internal/pkg/notify"
)

// APIResponse is the envelope of every successful JSON response.
// Mutations also carry the single notification the client should show.
type APIResponse struct {
	Success      bool                 `json:"success" example:"true"`
	Data         interface{}          `json:"data,omitempty"`
	Notification *notify.Notification `json:"notification,omitempty"`
	Error        *ErrorDetail         `json:"error,omitempty"`
	Timestamp    time.Time            `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewAPIResponse wraps data in a success envelope.
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// WithNotification attaches a toast to the response.
func (r APIResponse) WithNotification(n notify.Notification) APIResponse {
	r.Notification = &n
	return r
}
