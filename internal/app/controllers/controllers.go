// Package controllers handles HTTP request handling
package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/app/services"
	"github.com/yigit/studyplan/internal/middleware"
	"github.com/yigit/studyplan/internal/pkg/apperrors"
	"github.com/yigit/studyplan/internal/pkg/auth"
	"github.com/yigit/studyplan/internal/pkg/helpers"
)

// AuthUseCase is the account side of the auth service.
type AuthUseCase interface {
	Register(ctx context.Context, in services.RegisterInput) (*auth.TokenPair, *models.User, error)
	Login(ctx context.Context, email, password string) (*auth.TokenPair, *models.User, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	SignOut(ctx context.Context, refreshToken string) error
}

// ProgrammeUseCase manages programmes.
type ProgrammeUseCase interface {
	Create(ctx context.Context, name string, minCredits float64) (*models.Programme, error)
	Get(ctx context.Context, id int64) (*models.Programme, error)
	List(ctx context.Context) ([]*models.Programme, error)
	Update(ctx context.Context, id int64, name string, minCredits float64) (*models.Programme, error)
	Delete(ctx context.Context, id int64) error
}

// CourseReader lists the courses of a programme.
type CourseReader interface {
	List(ctx context.Context, programmeID int64) ([]*models.Course, error)
	Get(ctx context.Context, programmeID, courseID int64) (*models.Course, error)
}

// CatalogUseCase manages categories, subcategories, majors, minors and seasons.
type CatalogUseCase interface {
	CategoriesData(ctx context.Context, programmeID int64) (*models.CategoriesData, error)
	Seasons(ctx context.Context, programmeID int64) ([]*models.Season, error)
	CreateCategory(ctx context.Context, programmeID int64, name string, position int) (*models.Category, error)
	CreateSubcategory(ctx context.Context, programmeID, categoryID int64, name string) (*models.Subcategory, error)
	CreateMajor(ctx context.Context, programmeID int64, name string) (*models.Major, error)
	CreateMinor(ctx context.Context, programmeID int64, name string) (*models.Minor, error)
	UpdateCategory(ctx context.Context, programmeID, id int64, name string, position int) error
	UpdateSubcategory(ctx context.Context, programmeID, id, categoryID int64, name string) error
	RenameEntry(ctx context.Context, kind models.CatalogKind, programmeID, id int64, name string) error
	DeleteEntry(ctx context.Context, kind models.CatalogKind, programmeID, id int64) error
	CreateSeason(ctx context.Context, programmeID int64, name string, position int) (*models.Season, error)
	UpdateSeason(ctx context.Context, programmeID, id int64, name string, position int) (*models.Season, error)
	DeleteSeason(ctx context.Context, programmeID, id int64) error
}

// PlanUseCase manages the plans of the signed-in user.
type PlanUseCase interface {
	Create(ctx context.Context, userID, programmeID int64, name string) (*models.Plan, error)
	List(ctx context.Context, userID int64) ([]*models.Plan, error)
	Get(ctx context.Context, userID, planID int64) (*models.Plan, []models.TakenCourseData, error)
	Delete(ctx context.Context, userID, planID int64) error
	SetTaken(ctx context.Context, userID, planID, courseID int64, taken bool) error
	Progress(ctx context.Context, userID, planID int64) (*services.Progress, error)
}

// idParam reads a positive id path parameter. On failure it writes a 400
// response and returns false.
func idParam(ctx *gin.Context, name string) (int64, bool) {
	id, ok := helpers.ParseIDParam(ctx, name)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("invalid "+name))
		return 0, false
	}
	return id, true
}
