package services

import (
	"context"
	"time"

	"github.com/yigit/studyplan/internal/app/models"
)

// UserStore is the user persistence the auth service needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// TokenStore persists refresh tokens.
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
}

// ProgrammeStore persists programmes.
type ProgrammeStore interface {
	Create(ctx context.Context, programme *models.Programme) error
	GetByID(ctx context.Context, id int64) (*models.Programme, error)
	GetAll(ctx context.Context) ([]*models.Programme, error)
	Update(ctx context.Context, programme *models.Programme) error
	Delete(ctx context.Context, id int64) error
}

// CourseStore persists courses of a programme.
type CourseStore interface {
	ListByProgramme(ctx context.Context, programmeID int64) ([]*models.Course, error)
	GetByID(ctx context.Context, programmeID, courseID int64) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, programmeID, courseID int64) error
}

// CatalogStore persists categories, subcategories, majors and minors.
type CatalogStore interface {
	GetCategoriesData(ctx context.Context, programmeID int64) (*models.CategoriesData, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	CreateSubcategory(ctx context.Context, s *models.Subcategory) error
	CreateMajor(ctx context.Context, m *models.Major) error
	CreateMinor(ctx context.Context, m *models.Minor) error
	UpdateEntry(ctx context.Context, kind models.CatalogKind, programmeID, id int64, values map[string]interface{}) error
	DeleteEntry(ctx context.Context, kind models.CatalogKind, programmeID, id int64) error
}

// SeasonStore persists seasons.
type SeasonStore interface {
	ListByProgramme(ctx context.Context, programmeID int64) ([]*models.Season, error)
	Create(ctx context.Context, season *models.Season) error
	Update(ctx context.Context, season *models.Season) error
	Delete(ctx context.Context, programmeID, seasonID int64) error
}

// PlanStore persists plans and their taken courses.
type PlanStore interface {
	Create(ctx context.Context, plan *models.Plan) error
	GetByID(ctx context.Context, id int64) (*models.Plan, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Plan, error)
	Delete(ctx context.Context, id int64) error
	ListTaken(ctx context.Context, planID int64) ([]models.TakenCourseData, error)
	Take(ctx context.Context, planID, courseID int64) error
	Untake(ctx context.Context, planID, courseID int64) error
}

// Change kinds published after successful writes.
const (
	ChangeProgramme = "programme.changed"
	ChangeCourses   = "courses.changed"
	ChangeCatalog   = "catalog.changed"
)

// ChangeNotifier tells connected clients that data of a programme changed
// so they can refetch it.
type ChangeNotifier interface {
	NotifyChange(programmeID int64, change string)
}

type noopNotifier struct{}

func (noopNotifier) NotifyChange(int64, string) {}

func notifierOrNoop(n ChangeNotifier) ChangeNotifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}
