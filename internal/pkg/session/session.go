// Package session holds the per-request authentication state. It replaces a
// process-wide auth store: middleware resolves the state once per request and
// handlers read it from the gin context.
package session

import (
	"github.com/gin-gonic/gin"
)

// Status is the authentication status shown by the header.
type Status string

const (
	StatusLoggedIn  Status = "loggedIn"
	StatusLoggedOut Status = "loggedOut"
)

const contextKey = "session"

// State is the resolved authentication state of one request.
type State struct {
	Status Status `json:"status"`
	UserID int64  `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
}

// LoggedOut is the zero-knowledge state.
func LoggedOut() State {
	return State{Status: StatusLoggedOut}
}

// LoggedIn builds the state for an authenticated user.
func LoggedIn(userID int64, email string) State {
	return State{Status: StatusLoggedIn, UserID: userID, Email: email}
}

// IsLoggedIn reports whether the request is authenticated.
func (s State) IsLoggedIn() bool {
	return s.Status == StatusLoggedIn && s.UserID > 0
}

// Set stores the state on the gin context.
func Set(c *gin.Context, s State) {
	c.Set(contextKey, s)
}

// From returns the state stored on the gin context, or LoggedOut.
func From(c *gin.Context) State {
	v, ok := c.Get(contextKey)
	if !ok {
		return LoggedOut()
	}
	s, ok := v.(State)
	if !ok {
		return LoggedOut()
	}
	return s
}
