package services

import (
	"github.com/rs/zerolog"
	"github.com/yigit/studyplan/internal/app/repositories"
	"github.com/yigit/studyplan/internal/pkg/auth"
)

// Services groups the business services wired by bootstrap.
type Services struct {
	Auth      *AuthService
	Programme *ProgrammeService
	Course    *CourseService
	Catalog   *CatalogService
	Plan      *PlanService
}

// NewServices builds every service on top of the repositories.
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, changes ChangeNotifier, logger zerolog.Logger) *Services {
	return &Services{
		Auth:      NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService, logger.With().Str("service", "auth").Logger()),
		Programme: NewProgrammeService(repos.ProgrammeRepository, changes),
		Course:    NewCourseService(repos.CourseRepository, repos.ProgrammeRepository, repos.CatalogRepository, repos.SeasonRepository, changes, logger.With().Str("service", "course").Logger()),
		Catalog:   NewCatalogService(repos.CatalogRepository, repos.SeasonRepository, repos.ProgrammeRepository, changes),
		Plan:      NewPlanService(repos.PlanRepository, repos.ProgrammeRepository, repos.CourseRepository),
	}
}
