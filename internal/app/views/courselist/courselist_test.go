package courselist

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/app/services"
	"github.com/yigit/studyplan/internal/pkg/apperrors"
	"github.com/yigit/studyplan/internal/pkg/notify"
)

type fakeCourses struct {
	mu      sync.Mutex
	courses []*models.Course
	nextID  int64

	listErr   error
	mutateErr error
	listCalls int
}

func (f *fakeCourses) List(ctx context.Context, programmeID int64) ([]*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*models.Course, len(f.courses))
	copy(out, f.courses)
	return out, nil
}

func (f *fakeCourses) Add(ctx context.Context, programmeID int64, in models.CourseInput) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	f.nextID++
	c := &models.Course{ID: f.nextID, ProgrammeID: programmeID}
	in.Apply(c)
	f.courses = append(f.courses, c)
	return c, nil
}

func (f *fakeCourses) Update(ctx context.Context, programmeID, courseID int64, in models.CourseInput) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	for _, c := range f.courses {
		if c.ID == courseID {
			in.Apply(c)
			return c, nil
		}
	}
	return nil, apperrors.ErrCourseNotFound
}

func (f *fakeCourses) Remove(ctx context.Context, programmeID, courseID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	for i, c := range f.courses {
		if c.ID == courseID {
			f.courses = append(f.courses[:i], f.courses[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrCourseNotFound
}

type fakeCatalog struct {
	data       *models.CategoriesData
	seasons    []*models.Season
	dataErr    error
	seasonsErr error
}

func (f *fakeCatalog) CategoriesData(ctx context.Context, programmeID int64) (*models.CategoriesData, error) {
	return f.data, f.dataErr
}

func (f *fakeCatalog) Seasons(ctx context.Context, programmeID int64) ([]*models.Season, error) {
	return f.seasons, f.seasonsErr
}

type fakeProgrammes struct {
	programme *models.Programme
	err       error
}

func (f *fakeProgrammes) Get(ctx context.Context, id int64) (*models.Programme, error) {
	return f.programme, f.err
}

func int64Ptr(v int64) *int64 { return &v }

func sampleCatalog() *fakeCatalog {
	return &fakeCatalog{
		data: &models.CategoriesData{
			Categories: []*models.Category{
				{ID: 1, Name: "Mandatory", Position: 1},
				{ID: 2, Name: "Elective", Position: 2},
			},
			Subcategories: []*models.Subcategory{{ID: 5, CategoryID: 2, Name: "Complementary"}},
		},
		seasons: []*models.Season{
			{ID: 10, Name: "Autumn", Position: 1},
			{ID: 11, Name: "Spring", Position: 2},
		},
	}
}

func sampleCourses() []*models.Course {
	return []*models.Course{
		{ID: 1, Name: "Algorithms", Credits: 10, CategoryID: 1, SeasonID: 10},
		{ID: 2, Name: "Databases", Credits: 15, CategoryID: 1, SeasonID: 11},
		{ID: 3, Name: "Economics", Credits: 5, CategoryID: 2, SeasonID: 10, SubcategoryID: int64Ptr(5)},
	}
}

func newTestList(courses *fakeCourses, catalog *fakeCatalog) *List {
	programmes := &fakeProgrammes{programme: &models.Programme{ID: 1, Name: "CS", MinCredits: 30}}
	return NewList(courses, catalog, programmes, zerolog.Nop())
}

func TestPanelToggle(t *testing.T) {
	closed := NewPanel(false, false)
	assert.False(t, closed.IsOpen())
	assert.True(t, closed.Toggle().IsOpen())
	assert.Equal(t, closed, closed.Toggle().Toggle())

	embedded := NewPanel(false, true)
	assert.True(t, embedded.IsOpen())
	assert.True(t, embedded.Toggle().IsOpen())
	assert.False(t, embedded.ShowHeading())
}

func TestLoad(t *testing.T) {
	t.Run("loads everything", func(t *testing.T) {
		list := newTestList(&fakeCourses{courses: sampleCourses()}, sampleCatalog())

		data, err := list.Load(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "CS", data.Programme.Name)
		assert.Len(t, data.Courses, 3)
		assert.NotNil(t, data.CategoriesData)
		assert.Len(t, data.Seasons, 2)
	})

	t.Run("catalog failures leave fields nil", func(t *testing.T) {
		catalog := sampleCatalog()
		catalog.dataErr = errors.New("boom")
		catalog.seasonsErr = errors.New("boom")
		list := newTestList(&fakeCourses{courses: sampleCourses()}, catalog)

		data, err := list.Load(context.Background(), 1)
		require.NoError(t, err)
		assert.Nil(t, data.CategoriesData)
		assert.Nil(t, data.Seasons)

		view := Build(data, Options{Panel: NewPanel(true, false)})
		assert.False(t, view.ShowAddCourse)
	})

	t.Run("course failure fails the load", func(t *testing.T) {
		list := newTestList(&fakeCourses{listErr: errors.New("down")}, sampleCatalog())
		_, err := list.Load(context.Background(), 1)
		assert.Error(t, err)
	})

	t.Run("unknown programme", func(t *testing.T) {
		list := NewList(&fakeCourses{}, sampleCatalog(), &fakeProgrammes{err: apperrors.ErrProgrammeNotFound}, zerolog.Nop())
		_, err := list.Load(context.Background(), 9)
		assert.ErrorIs(t, err, apperrors.ErrProgrammeNotFound)
	})
}

func TestMutationsSucceed(t *testing.T) {
	courses := &fakeCourses{courses: sampleCourses(), nextID: 3}
	list := newTestList(courses, sampleCatalog())
	ctx := context.Background()
	previous := sampleCourses()

	added := list.AddCourse(ctx, 1, previous, models.CourseInput{SchoolCourseID: "TDT4100", Name: "OOP", Credits: 7.5, SeasonID: 10, CategoryID: 1})
	require.False(t, added.Failed())
	assert.Equal(t, notify.Success(MsgAddSuccess), added.Notification)
	assert.Len(t, added.Courses, 4)
	assert.Equal(t, int64(4), added.Course.ID)

	updated := list.UpdateCourse(ctx, 1, 4, added.Courses, models.CourseInput{SchoolCourseID: "TDT4100", Name: "OOP II", Credits: 7.5, SeasonID: 10, CategoryID: 1})
	require.False(t, updated.Failed())
	assert.Equal(t, MsgUpdateSuccess, updated.Notification.Title)
	assert.Equal(t, "OOP II", updated.Courses[3].Name)

	removed := list.RemoveCourse(ctx, 1, 4, updated.Courses)
	require.False(t, removed.Failed())
	assert.Equal(t, MsgRemoveSuccess, removed.Notification.Title)
	assert.Len(t, removed.Courses, 3)

	assert.Equal(t, 3, courses.listCalls)
}

func TestMutationsFail(t *testing.T) {
	courses := &fakeCourses{courses: sampleCourses(), mutateErr: errors.New("constraint violated")}
	list := newTestList(courses, sampleCatalog())
	ctx := context.Background()
	previous := sampleCourses()[:2]

	tests := []struct {
		name string
		run  func() Outcome
		msg  string
	}{
		{"add", func() Outcome { return list.AddCourse(ctx, 1, previous, models.CourseInput{}) }, MsgAddFailure},
		{"update", func() Outcome { return list.UpdateCourse(ctx, 1, 1, previous, models.CourseInput{}) }, MsgUpdateFailure},
		{"remove", func() Outcome { return list.RemoveCourse(ctx, 1, 1, previous) }, MsgRemoveFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.run()
			assert.True(t, out.Failed())
			assert.Equal(t, notify.Error(tt.msg), out.Notification)
			assert.NotContains(t, out.Notification.Title, "constraint")
			assert.Equal(t, previous, out.Courses)
			assert.Nil(t, out.Course)
		})
	}
	assert.Zero(t, courses.listCalls)
}

func TestRefetchFailureKeepsSuccess(t *testing.T) {
	courses := &fakeCourses{courses: sampleCourses()}
	list := newTestList(courses, sampleCatalog())
	previous := sampleCourses()

	courses.listErr = errors.New("timeout")
	out := list.RemoveCourse(context.Background(), 1, 2, previous)

	assert.False(t, out.Failed())
	assert.Equal(t, MsgRemoveSuccess, out.Notification.Title)
	assert.Equal(t, previous, out.Courses)
}

func TestGroupByCategory(t *testing.T) {
	catalog := sampleCatalog()
	courses := append(sampleCourses(), &models.Course{ID: 4, Name: "Orphan", Credits: 2, CategoryID: 99, SeasonID: 77})

	groups := GroupByCategory(courses, catalog.data, catalog.seasons, map[int64]bool{3: true})
	require.Len(t, groups, 3)

	assert.Equal(t, "Mandatory", groups[0].Name())
	require.Len(t, groups[0].Seasons, 2)
	assert.Equal(t, "Autumn", groups[0].Seasons[0].Season.Name)
	assert.Equal(t, "Spring", groups[0].Seasons[1].Season.Name)
	assert.Equal(t, float64(25), groups[0].Credits)

	assert.Equal(t, "Elective", groups[1].Name())
	row := groups[1].Seasons[0].Rows[0]
	assert.Equal(t, "Complementary", row.Subcategory)
	assert.True(t, row.Taken)

	assert.Equal(t, "Uncategorized", groups[2].Name())
	assert.Nil(t, groups[2].Seasons[0].Season)
}

func TestGroupByCategorySkipsEmptyGroups(t *testing.T) {
	catalog := sampleCatalog()
	groups := GroupByCategory(sampleCourses()[:1], catalog.data, catalog.seasons, nil)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Seasons, 1)
}

func TestFilterByIDs(t *testing.T) {
	courses := sampleCourses()
	assert.Equal(t, courses, FilterByIDs(courses, nil))
	assert.Empty(t, FilterByIDs(courses, []int64{}))

	out := FilterByIDs(courses, []int64{3, 1, 42})
	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].ID)
	assert.Equal(t, int64(3), out[1].ID)
}

func TestBuild(t *testing.T) {
	catalog := sampleCatalog()
	data := &Data{
		Programme:      &models.Programme{ID: 1, Name: "CS", MinCredits: 30},
		Courses:        sampleCourses(),
		CategoriesData: catalog.data,
		Seasons:        catalog.seasons,
	}

	t.Run("without taken data", func(t *testing.T) {
		v := Build(data, Options{Panel: NewPanel(false, false)})
		assert.Nil(t, v.Progress)
		assert.True(t, v.ShowAddCourse)
		assert.False(t, v.ShowCheckboxes)
		assert.False(t, v.Empty)
	})

	t.Run("below minimum", func(t *testing.T) {
		v := Build(data, Options{TakenCourseIDs: []int64{1, 2}})
		require.NotNil(t, v.Progress)
		assert.Equal(t, float64(25), v.Progress.Taken)
		assert.Equal(t, services.CueBelow, v.Progress.Cue)
		assert.Equal(t, "red.50", v.Progress.Color)
	})

	t.Run("met minimum", func(t *testing.T) {
		v := Build(data, Options{TakenCourseIDs: []int64{1, 2, 3}})
		require.NotNil(t, v.Progress)
		assert.Equal(t, services.CueMet, v.Progress.Cue)
		assert.Equal(t, "green.50", v.Progress.Color)
	})

	t.Run("embedded plan view", func(t *testing.T) {
		v := Build(data, Options{Panel: NewPanel(false, true), PlanID: 7, TakenCourseIDs: []int64{}, CoursesIDsToShow: []int64{1}})
		assert.True(t, v.Panel.IsOpen())
		assert.False(t, v.ShowAddCourse)
		assert.True(t, v.ShowCheckboxes)
		require.Len(t, v.Groups, 1)
		assert.Equal(t, float64(0), v.Progress.Taken)
		assert.Equal(t, services.CueBelow, v.Progress.Cue)
	})

	t.Run("empty list", func(t *testing.T) {
		v := Build(&Data{Programme: data.Programme}, Options{})
		assert.True(t, v.Empty)
		assert.Empty(t, v.Groups)
		assert.False(t, v.ShowAddCourse)
	})
}
