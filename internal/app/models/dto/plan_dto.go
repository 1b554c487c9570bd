package dto

import "github.com/yigit/studyplan/internal/app/models"

// CreatePlanRequest starts a new plan in a programme.
type CreatePlanRequest struct {
	ProgrammeID int64  `json:"programmeId" form:"programme_id" binding:"required,min=1"`
	Name        string `json:"name" form:"name" binding:"required,max=200"`
}

// PlanResponse is a plan with the ids of its taken courses.
type PlanResponse struct {
	*models.Plan
	TakenCourseIDs []int64 `json:"takenCourseIds"`
}
