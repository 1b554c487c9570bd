package models

import "time"

// Course is a course offered within a programme.
type Course struct {
	ID             int64     `json:"id" db:"id" example:"12"`
	ProgrammeID    int64     `json:"programmeId" db:"programme_id" example:"1"`
	SchoolCourseID string    `json:"schoolCourseId" db:"school_course_id" example:"TDT4100"`
	Name           string    `json:"name" db:"name" example:"Object-Oriented Programming"`
	Link           string    `json:"link" db:"link" example:"https://www.ntnu.edu/studies/courses/TDT4100"`
	Credits        float64   `json:"credits" db:"credits" example:"7.5"`
	SeasonID       int64     `json:"seasonId" db:"season_id" example:"2"`
	CategoryID     int64     `json:"categoryId" db:"category_id" example:"3"`
	SubcategoryID  *int64    `json:"subcategoryId,omitempty" db:"subcategory_id"`
	MajorID        *int64    `json:"majorId,omitempty" db:"major_id"`
	MinorID        *int64    `json:"minorId,omitempty" db:"minor_id"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// CourseInput carries the editable fields of a course for add and update.
type CourseInput struct {
	SchoolCourseID string
	Name           string
	Link           string
	Credits        float64
	SeasonID       int64
	CategoryID     int64
	SubcategoryID  *int64
	MajorID        *int64
	MinorID        *int64
}

// Apply copies the input onto c.
func (in CourseInput) Apply(c *Course) {
	c.SchoolCourseID = in.SchoolCourseID
	c.Name = in.Name
	c.Link = in.Link
	c.Credits = in.Credits
	c.SeasonID = in.SeasonID
	c.CategoryID = in.CategoryID
	c.SubcategoryID = in.SubcategoryID
	c.MajorID = in.MajorID
	c.MinorID = in.MinorID
}
