package controllers

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/app/services"
	"github.com/yigit/studyplan/internal/app/views"
	"github.com/yigit/studyplan/internal/app/views/courselist"
	"github.com/yigit/studyplan/internal/pkg/apperrors"
	"github.com/yigit/studyplan/internal/pkg/notify"
	"github.com/yigit/studyplan/internal/pkg/auth"
	"github.com/yigit/studyplan/internal/pkg/session"
	"github.com/yigit/studyplan/internal/pkg/validation"
)

type fakeAuth struct {
	revoked []string
}

func (f *fakeAuth) Register(ctx context.Context, in services.RegisterInput) (*auth.TokenPair, *models.User, error) {
	if in.Email == "taken@example.com" {
		return nil, nil, apperrors.ErrEmailAlreadyExists
	}
	return testPair(), &models.User{ID: 2, Email: in.Email}, nil
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*auth.TokenPair, *models.User, error) {
	if password != "secret123" {
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	return testPair(), &models.User{ID: 1, Email: email}, nil
}

func (f *fakeAuth) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	if refreshToken != "refresh" {
		return nil, apperrors.ErrTokenNotFound
	}
	return testPair(), nil
}

func (f *fakeAuth) SignOut(ctx context.Context, refreshToken string) error {
	f.revoked = append(f.revoked, refreshToken)
	return nil
}

func testPair() *auth.TokenPair {
	return &auth.TokenPair{
		AccessToken:      "access",
		RefreshToken:     "refresh",
		ExpiresIn:        3600,
		RefreshExpiresIn: 7200,
		RefreshExpiry:    time.Now().Add(2 * time.Hour),
	}
}

type fakeProgrammes struct {
	programmes map[int64]*models.Programme
	nextID     int64
}

func newFakeProgrammes() *fakeProgrammes {
	return &fakeProgrammes{
		programmes: map[int64]*models.Programme{1: {ID: 1, Name: "Computer Science", MinCredits: 30}},
		nextID:     1,
	}
}

func (f *fakeProgrammes) Create(ctx context.Context, name string, minCredits float64) (*models.Programme, error) {
	f.nextID++
	p := &models.Programme{ID: f.nextID, Name: name, MinCredits: minCredits}
	f.programmes[p.ID] = p
	return p, nil
}

func (f *fakeProgrammes) Get(ctx context.Context, id int64) (*models.Programme, error) {
	p, ok := f.programmes[id]
	if !ok {
		return nil, apperrors.ErrProgrammeNotFound
	}
	return p, nil
}

func (f *fakeProgrammes) List(ctx context.Context) ([]*models.Programme, error) {
	out := make([]*models.Programme, 0, len(f.programmes))
	for _, p := range f.programmes {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProgrammes) Update(ctx context.Context, id int64, name string, minCredits float64) (*models.Programme, error) {
	p, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name, p.MinCredits = name, minCredits
	return p, nil
}

func (f *fakeProgrammes) Delete(ctx context.Context, id int64) error {
	if _, ok := f.programmes[id]; !ok {
		return apperrors.ErrProgrammeNotFound
	}
	delete(f.programmes, id)
	return nil
}

type fakeCourses struct {
	mu        sync.Mutex
	courses   []*models.Course
	nextID    int64
	mutateErr error
}

func newFakeCourses() *fakeCourses {
	return &fakeCourses{
		courses: []*models.Course{
			{ID: 1, ProgrammeID: 1, SchoolCourseID: "TDT4100", Name: "Object-Oriented Programming", Credits: 10, SeasonID: 10, CategoryID: 1},
			{ID: 2, ProgrammeID: 1, SchoolCourseID: "TDT4120", Name: "Algorithms", Credits: 20, SeasonID: 10, CategoryID: 1},
		},
		nextID: 2,
	}
}

func (f *fakeCourses) List(ctx context.Context, programmeID int64) ([]*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Course, 0, len(f.courses))
	for _, c := range f.courses {
		if c.ProgrammeID == programmeID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCourses) Get(ctx context.Context, programmeID, courseID int64) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.courses {
		if c.ProgrammeID == programmeID && c.ID == courseID {
			return c, nil
		}
	}
	return nil, apperrors.ErrCourseNotFound
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
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	c, err := f.Get(ctx, programmeID, courseID)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	in.Apply(c)
	return c, nil
}

func (f *fakeCourses) Remove(ctx context.Context, programmeID, courseID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	for i, c := range f.courses {
		if c.ProgrammeID == programmeID && c.ID == courseID {
			f.courses = append(f.courses[:i], f.courses[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrCourseNotFound
}

type fakeCatalog struct{}

func (fakeCatalog) CategoriesData(ctx context.Context, programmeID int64) (*models.CategoriesData, error) {
	return &models.CategoriesData{
		Categories: []*models.Category{{ID: 1, ProgrammeID: programmeID, Name: "Mandatory"}},
	}, nil
}

func (fakeCatalog) Seasons(ctx context.Context, programmeID int64) ([]*models.Season, error) {
	return []*models.Season{{ID: 10, ProgrammeID: programmeID, Name: "Autumn"}}, nil
}

type fakePlans struct {
	plans map[int64]*models.Plan
	taken map[int64][]int64
}

func newFakePlans() *fakePlans {
	return &fakePlans{
		plans: map[int64]*models.Plan{7: {ID: 7, UserID: 1, ProgrammeID: 1, Name: "My plan"}},
		taken: map[int64][]int64{7: {2}},
	}
}

func (f *fakePlans) Create(ctx context.Context, userID, programmeID int64, name string) (*models.Plan, error) {
	p := &models.Plan{ID: int64(len(f.plans) + 100), UserID: userID, ProgrammeID: programmeID, Name: name}
	f.plans[p.ID] = p
	return p, nil
}

func (f *fakePlans) List(ctx context.Context, userID int64) ([]*models.Plan, error) {
	var out []*models.Plan
	for _, p := range f.plans {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlans) Get(ctx context.Context, userID, planID int64) (*models.Plan, []models.TakenCourseData, error) {
	p, ok := f.plans[planID]
	if !ok {
		return nil, nil, apperrors.ErrPlanNotFound
	}
	if p.UserID != userID {
		return nil, nil, apperrors.ErrPermissionDenied
	}
	taken := make([]models.TakenCourseData, 0, len(f.taken[planID]))
	for _, id := range f.taken[planID] {
		taken = append(taken, models.TakenCourseData{PlanID: planID, CourseID: id})
	}
	return p, taken, nil
}

func (f *fakePlans) Delete(ctx context.Context, userID, planID int64) error {
	if _, _, err := f.Get(ctx, userID, planID); err != nil {
		return err
	}
	delete(f.plans, planID)
	return nil
}

func (f *fakePlans) SetTaken(ctx context.Context, userID, planID, courseID int64, taken bool) error {
	if _, _, err := f.Get(ctx, userID, planID); err != nil {
		return err
	}
	ids := f.taken[planID][:0:0]
	for _, id := range f.taken[planID] {
		if id != courseID {
			ids = append(ids, id)
		}
	}
	if taken {
		ids = append(ids, courseID)
	}
	f.taken[planID] = ids
	return nil
}

func (f *fakePlans) Progress(ctx context.Context, userID, planID int64) (*services.Progress, error) {
	p, taken, err := f.Get(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	return services.NewProgress(newFakeCourses().courses, models.TakenCourseIDs(taken), float64(p.ProgrammeID*30)), nil
}

type testEnv struct {
	router     *gin.Engine
	auth       *fakeAuth
	programmes *fakeProgrammes
	courses    *fakeCourses
	plans      *fakePlans
}

// newTestEnv wires the controllers like the real router, with the session
// fixed to state.
func newTestEnv(state session.State) *testEnv {
	gin.SetMode(gin.TestMode)
	if err := validation.RegisterBindings(); err != nil {
		panic(err)
	}
	env := &testEnv{
		auth:       &fakeAuth{},
		programmes: newFakeProgrammes(),
		courses:    newFakeCourses(),
		plans:      newFakePlans(),
	}
	list := courselist.NewList(env.courses, fakeCatalog{}, env.programmes, zerolog.Nop())
	cookies := session.Cookies{Name: "sp"}

	authController := NewAuthController(env.auth, zerolog.Nop())
	courseController := NewCourseController(list, env.courses, env.programmes, env.plans, zerolog.Nop())
	planController := NewPlanController(env.plans)
	flashes := notify.NewFlashes([]byte("test-flash-key-test-flash-key-32"), false)
	pages := NewPageController(env.auth, env.programmes, env.plans, list, cookies, flashes, zerolog.Nop())

	r := gin.New()
	tmpl, err := views.Load()
	if err != nil {
		panic(err)
	}
	r.SetHTMLTemplate(tmpl)
	r.Use(func(c *gin.Context) {
		session.Set(c, state)
		c.Next()
	})

	v1 := r.Group("/api/v1")
	v1.GET("/auth/status", authController.Status)
	v1.POST("/auth/login", authController.Login)
	v1.POST("/auth/register", authController.Register)
	v1.POST("/auth/logout", authController.Logout)
	v1.GET("/programmes/:id/courses", courseController.ListCourses)
	v1.POST("/programmes/:id/courses", courseController.AddCourse)
	v1.PUT("/programmes/:id/courses/:courseId", courseController.UpdateCourse)
	v1.DELETE("/programmes/:id/courses/:courseId", courseController.RemoveCourse)
	v1.PUT("/plans/:id/courses/:courseId", planController.TakeCourse)
	v1.GET("/plans/:id", planController.GetPlan)

	r.GET("/", pages.Home)
	r.POST("/logout", pages.Logout)
	r.GET("/programmes/:id", pages.Programme)
	r.POST("/programmes/:id/courses", pages.AddCourse)
	r.POST("/programmes/:id/courses/:courseId/delete", pages.RemoveCourse)
	r.GET("/plans/:id", pages.Plan)
	r.POST("/plans/:id/courses/:courseId", pages.SetTaken)

	env.router = r
	return env
}
