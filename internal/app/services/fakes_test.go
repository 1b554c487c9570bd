package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/pkg/apperrors"
)

type fakeUsers struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUsers() *fakeUsers { return &fakeUsers{users: map[int64]*models.User{}} }

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUsers) UpdateLastLogin(_ context.Context, userID int64) error {
	now := time.Now()
	f.users[userID].LastLoginAt = &now
	return nil
}

type fakeToken struct {
	userID  int64
	expiry  time.Time
	revoked bool
}

type fakeTokens struct {
	tokens map[string]*fakeToken
}

func newFakeTokens() *fakeTokens { return &fakeTokens{tokens: map[string]*fakeToken{}} }

func (f *fakeTokens) CreateToken(_ context.Context, token string, userID int64, expiry time.Time) error {
	f.tokens[token] = &fakeToken{userID: userID, expiry: expiry}
	return nil
}

func (f *fakeTokens) GetTokenByValue(_ context.Context, token string) (int64, error) {
	t, ok := f.tokens[token]
	switch {
	case !ok:
		return 0, apperrors.ErrTokenNotFound
	case t.revoked:
		return 0, apperrors.ErrTokenRevoked
	case t.expiry.Before(time.Now()):
		return 0, apperrors.ErrTokenExpired
	}
	return t.userID, nil
}

func (f *fakeTokens) RevokeToken(_ context.Context, token string) error {
	t, ok := f.tokens[token]
	if !ok || t.revoked {
		return apperrors.ErrTokenNotFound
	}
	t.revoked = true
	return nil
}

type fakeProgrammes struct {
	items  map[int64]*models.Programme
	nextID int64
}

func newFakeProgrammes(ps ...*models.Programme) *fakeProgrammes {
	f := &fakeProgrammes{items: map[int64]*models.Programme{}}
	for _, p := range ps {
		f.items[p.ID] = p
		if p.ID > f.nextID {
			f.nextID = p.ID
		}
	}
	return f
}

func (f *fakeProgrammes) Create(_ context.Context, p *models.Programme) error {
	for _, existing := range f.items {
		if existing.Name == p.Name {
			return apperrors.ErrProgrammeAlreadyExists
		}
	}
	f.nextID++
	p.ID = f.nextID
	f.items[p.ID] = p
	return nil
}

func (f *fakeProgrammes) GetByID(_ context.Context, id int64) (*models.Programme, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, apperrors.ErrProgrammeNotFound
	}
	return p, nil
}

func (f *fakeProgrammes) GetAll(_ context.Context) ([]*models.Programme, error) {
	out := []*models.Programme{}
	for _, p := range f.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeProgrammes) Update(_ context.Context, p *models.Programme) error {
	if _, ok := f.items[p.ID]; !ok {
		return apperrors.ErrProgrammeNotFound
	}
	f.items[p.ID] = p
	return nil
}

func (f *fakeProgrammes) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return apperrors.ErrProgrammeNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeCourses struct {
	items     map[int64]*models.Course
	nextID    int64
	createErr error
}

func newFakeCourses(cs ...*models.Course) *fakeCourses {
	f := &fakeCourses{items: map[int64]*models.Course{}}
	for _, c := range cs {
		f.items[c.ID] = c
		if c.ID > f.nextID {
			f.nextID = c.ID
		}
	}
	return f
}

func (f *fakeCourses) ListByProgramme(_ context.Context, programmeID int64) ([]*models.Course, error) {
	out := []*models.Course{}
	for _, c := range f.items {
		if c.ProgrammeID == programmeID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCourses) GetByID(_ context.Context, programmeID, courseID int64) (*models.Course, error) {
	c, ok := f.items[courseID]
	if !ok || c.ProgrammeID != programmeID {
		return nil, apperrors.ErrCourseNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCourses) Create(_ context.Context, c *models.Course) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	c.ID = f.nextID
	cp := *c
	f.items[c.ID] = &cp
	return nil
}

func (f *fakeCourses) Update(_ context.Context, c *models.Course) error {
	existing, ok := f.items[c.ID]
	if !ok || existing.ProgrammeID != c.ProgrammeID {
		return apperrors.ErrCourseNotFound
	}
	cp := *c
	f.items[c.ID] = &cp
	return nil
}

func (f *fakeCourses) Delete(_ context.Context, programmeID, courseID int64) error {
	c, ok := f.items[courseID]
	if !ok || c.ProgrammeID != programmeID {
		return apperrors.ErrCourseNotFound
	}
	delete(f.items, courseID)
	return nil
}

type fakeCatalog struct {
	data      map[int64]*models.CategoriesData
	nextID    int64
	updates   []models.CatalogKind
	deleteErr error
}

func newFakeCatalog() *fakeCatalog { return &fakeCatalog{data: map[int64]*models.CategoriesData{}} }

func (f *fakeCatalog) get(programmeID int64) *models.CategoriesData {
	d, ok := f.data[programmeID]
	if !ok {
		d = &models.CategoriesData{}
		f.data[programmeID] = d
	}
	return d
}

func (f *fakeCatalog) GetCategoriesData(_ context.Context, programmeID int64) (*models.CategoriesData, error) {
	return f.get(programmeID), nil
}

func (f *fakeCatalog) CreateCategory(_ context.Context, c *models.Category) error {
	f.nextID++
	c.ID = f.nextID
	d := f.get(c.ProgrammeID)
	d.Categories = append(d.Categories, c)
	return nil
}

func (f *fakeCatalog) CreateSubcategory(_ context.Context, s *models.Subcategory) error {
	f.nextID++
	s.ID = f.nextID
	d := f.get(s.ProgrammeID)
	d.Subcategories = append(d.Subcategories, s)
	return nil
}

func (f *fakeCatalog) CreateMajor(_ context.Context, m *models.Major) error {
	f.nextID++
	m.ID = f.nextID
	d := f.get(m.ProgrammeID)
	d.Majors = append(d.Majors, m)
	return nil
}

func (f *fakeCatalog) CreateMinor(_ context.Context, m *models.Minor) error {
	f.nextID++
	m.ID = f.nextID
	d := f.get(m.ProgrammeID)
	d.Minors = append(d.Minors, m)
	return nil
}

func (f *fakeCatalog) UpdateEntry(_ context.Context, kind models.CatalogKind, _, _ int64, _ map[string]interface{}) error {
	f.updates = append(f.updates, kind)
	return nil
}

func (f *fakeCatalog) DeleteEntry(context.Context, models.CatalogKind, int64, int64) error {
	return f.deleteErr
}

type fakeSeasons struct {
	items  []*models.Season
	nextID int64
}

func (f *fakeSeasons) ListByProgramme(_ context.Context, programmeID int64) ([]*models.Season, error) {
	out := []*models.Season{}
	for _, s := range f.items {
		if s.ProgrammeID == programmeID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSeasons) Create(_ context.Context, s *models.Season) error {
	f.nextID++
	s.ID = f.nextID
	f.items = append(f.items, s)
	return nil
}

func (f *fakeSeasons) Update(_ context.Context, s *models.Season) error {
	for i, existing := range f.items {
		if existing.ID == s.ID && existing.ProgrammeID == s.ProgrammeID {
			f.items[i] = s
			return nil
		}
	}
	return apperrors.ErrSeasonNotFound
}

func (f *fakeSeasons) Delete(_ context.Context, programmeID, id int64) error {
	for i, existing := range f.items {
		if existing.ID == id && existing.ProgrammeID == programmeID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrSeasonNotFound
}

type fakePlans struct {
	plans  map[int64]*models.Plan
	taken  map[int64]map[int64]time.Time
	nextID int64
}

func newFakePlans() *fakePlans {
	return &fakePlans{plans: map[int64]*models.Plan{}, taken: map[int64]map[int64]time.Time{}}
}

func (f *fakePlans) Create(_ context.Context, p *models.Plan) error {
	f.nextID++
	p.ID = f.nextID
	f.plans[p.ID] = p
	return nil
}

func (f *fakePlans) GetByID(_ context.Context, id int64) (*models.Plan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, apperrors.ErrPlanNotFound
	}
	return p, nil
}

func (f *fakePlans) ListByUser(_ context.Context, userID int64) ([]*models.Plan, error) {
	out := []*models.Plan{}
	for _, p := range f.plans {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlans) Delete(_ context.Context, id int64) error {
	delete(f.plans, id)
	delete(f.taken, id)
	return nil
}

func (f *fakePlans) ListTaken(_ context.Context, planID int64) ([]models.TakenCourseData, error) {
	out := []models.TakenCourseData{}
	for courseID, at := range f.taken[planID] {
		out = append(out, models.TakenCourseData{PlanID: planID, CourseID: courseID, TakenAt: at})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseID < out[j].CourseID })
	return out, nil
}

func (f *fakePlans) Take(_ context.Context, planID, courseID int64) error {
	if f.taken[planID] == nil {
		f.taken[planID] = map[int64]time.Time{}
	}
	if _, ok := f.taken[planID][courseID]; !ok {
		f.taken[planID][courseID] = time.Now()
	}
	return nil
}

func (f *fakePlans) Untake(_ context.Context, planID, courseID int64) error {
	delete(f.taken[planID], courseID)
	return nil
}

type recordedChange struct {
	programmeID int64
	change      string
}

type recordingNotifier struct {
	mu      sync.Mutex
	changes []recordedChange
}

func (r *recordingNotifier) NotifyChange(programmeID int64, change string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, recordedChange{programmeID, change})
}
