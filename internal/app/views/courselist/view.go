package courselist

import (
	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/app/services"
)

// Options configure how the panel is rendered.
type Options struct {
	Panel Panel

	// TakenCourseIDs are the courses taken in the bound plan. Nil means no
	// taken-course data, so no credit summary is shown.
	TakenCourseIDs []int64

	// CoursesIDsToShow restricts the displayed courses. Nil shows all.
	CoursesIDsToShow []int64

	// PlanID binds the panel to a plan and shows a take/untake checkbox
	// per course.
	PlanID int64
}

// View is the render model of the panel.
type View struct {
	ProgrammeID    int64
	ProgrammeName  string
	Panel          Panel
	Empty          bool
	Groups         []CategoryGroup
	ShowAddCourse  bool
	ShowCheckboxes bool
	PlanID         int64
	Progress       *services.Progress
	CategoriesData *models.CategoriesData
	Seasons        []*models.Season
}

// Build turns loaded data into the panel view.
func Build(data *Data, opts Options) View {
	v := View{
		Panel:          opts.Panel,
		ShowCheckboxes: opts.PlanID > 0,
		PlanID:         opts.PlanID,
		CategoriesData: data.CategoriesData,
		Seasons:        data.Seasons,
	}
	if data.Programme != nil {
		v.ProgrammeID = data.Programme.ID
		v.ProgrammeName = data.Programme.Name
		v.Progress = services.NewProgress(data.Courses, opts.TakenCourseIDs, data.Programme.MinCredits)
	}

	v.Empty = len(data.Courses) == 0
	v.ShowAddCourse = data.CategoriesData != nil && data.Seasons != nil && !opts.Panel.Embedded

	taken := make(map[int64]bool, len(opts.TakenCourseIDs))
	for _, id := range opts.TakenCourseIDs {
		taken[id] = true
	}
	shown := FilterByIDs(data.Courses, opts.CoursesIDsToShow)
	v.Groups = GroupByCategory(shown, data.CategoriesData, data.Seasons, taken)
	return v
}
