package services

import (
	"github.com/yigit/studyplan/internal/app/models"
)

// Cue is the visual state of the taken-credit summary.
type Cue string

const (
	CueNone  Cue = ""
	CueBelow Cue = "below"
	CueMet   Cue = "met"
)

// Color returns the background color token of the cue.
func (c Cue) Color() string {
	switch c {
	case CueBelow:
		return "red.50"
	case CueMet:
		return "green.50"
	}
	return ""
}

// Progress summarises credits taken against a programme minimum.
type Progress struct {
	Taken    float64 `json:"taken" example:"25"`
	Required float64 `json:"required" example:"30"`
	Cue      Cue     `json:"cue" example:"below"`
	Color    string  `json:"color,omitempty" example:"red.50"`
}

// TakenCredits sums the credits of the courses whose id is in taken.
// Ids that match no course contribute nothing.
func TakenCredits(courses []*models.Course, taken []int64) float64 {
	if len(taken) == 0 || len(courses) == 0 {
		return 0
	}
	set := make(map[int64]struct{}, len(taken))
	for _, id := range taken {
		set[id] = struct{}{}
	}

	var sum float64
	for _, c := range courses {
		if _, ok := set[c.ID]; ok {
			sum += c.Credits
		}
	}
	return sum
}

// CueFor compares a credit sum with the minimum. Without taken-course data
// there is no cue.
func CueFor(sum, minCredits float64, hasTakenData bool) Cue {
	if !hasTakenData {
		return CueNone
	}
	if sum < minCredits {
		return CueBelow
	}
	return CueMet
}

// NewProgress computes the summary for a programme. A nil taken slice means
// no taken-course data was supplied and yields nil.
func NewProgress(courses []*models.Course, taken []int64, minCredits float64) *Progress {
	if taken == nil {
		return nil
	}
	sum := TakenCredits(courses, taken)
	cue := CueFor(sum, minCredits, true)
	return &Progress{
		Taken:    sum,
		Required: minCredits,
		Cue:      cue,
		Color:    cue.Color(),
	}
}
