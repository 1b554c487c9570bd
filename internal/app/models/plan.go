package models

import "time"

// Plan is a user's study plan inside a programme.
type Plan struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"userId" db:"user_id"`
	ProgrammeID int64     `json:"programmeId" db:"programme_id"`
	Name        string    `json:"name" db:"name" example:"My plan"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// TakenCourseData records that a course was taken in a plan.
type TakenCourseData struct {
	PlanID   int64     `json:"planId" db:"plan_id"`
	CourseID int64     `json:"courseId" db:"course_id"`
	TakenAt  time.Time `json:"takenAt" db:"taken_at"`
}

// TakenCourseIDs extracts the course ids of taken.
func TakenCourseIDs(taken []TakenCourseData) []int64 {
	ids := make([]int64, 0, len(taken))
	for _, t := range taken {
		ids = append(ids, t.CourseID)
	}
	return ids
}
