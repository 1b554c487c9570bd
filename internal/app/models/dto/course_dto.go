package dto

import (
	"strings"

	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/app/services"
)

// CourseRequest is the body for adding or editing a course.
type CourseRequest struct {
	SchoolCourseID string  `json:"schoolCourseId" form:"school_course_id" binding:"required,coursecode"`
	Name           string  `json:"name" form:"name" binding:"required,max=200"`
	Link           string  `json:"link" form:"link" binding:"omitempty,url"`
	Credits        float64 `json:"credits" form:"credits" binding:"credits"`
	SeasonID       int64   `json:"seasonId" form:"season_id" binding:"required,min=1"`
	CategoryID     int64   `json:"categoryId" form:"category_id" binding:"required,min=1"`
	SubcategoryID  *int64  `json:"subcategoryId,omitempty" form:"subcategory_id" binding:"omitempty,gte=0"`
	MajorID        *int64  `json:"majorId,omitempty" form:"major_id" binding:"omitempty,gte=0"`
	MinorID        *int64  `json:"minorId,omitempty" form:"minor_id" binding:"omitempty,gte=0"`
}

// ToInput converts the request to the service input.
func (r CourseRequest) ToInput() models.CourseInput {
	return models.CourseInput{
		SchoolCourseID: strings.TrimSpace(r.SchoolCourseID),
		Name:           strings.TrimSpace(r.Name),
		Link:           strings.TrimSpace(r.Link),
		Credits:        r.Credits,
		SeasonID:       r.SeasonID,
		CategoryID:     r.CategoryID,
		SubcategoryID:  optionalID(r.SubcategoryID),
		MajorID:        optionalID(r.MajorID),
		MinorID:        optionalID(r.MinorID),
	}
}

// optionalID treats a zero id as unset. Form posts send "" for "None",
// which binds to zero.
func optionalID(id *int64) *int64 {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

// CourseListResponse is the courses of a programme plus the taken-credit summary.
type CourseListResponse struct {
	Courses []*models.Course   `json:"courses"`
	Credits *services.Progress `json:"credits,omitempty"`
}
