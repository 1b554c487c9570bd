package dto

// ProgrammeRequest is the body for creating or updating a programme
type ProgrammeRequest struct {
	Name       string  `json:"name" form:"name" binding:"required,max=200"`
	MinCredits float64 `json:"minCredits" form:"min_credits" binding:"gte=0"`
}
