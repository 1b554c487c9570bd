package models

import "time"

// Programme is an academic plan with a minimum credit requirement
type Programme struct {
	ID         int64     `json:"id" db:"id" example:"1"`
	Name       string    `json:"name" db:"name" example:"Computer Science MSc"`
	MinCredits float64   `json:"minCredits" db:"min_credits" example:"120"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}
