package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository      *UserRepository
	TokenRepository     *TokenRepository
	ProgrammeRepository *ProgrammeRepository
	CourseRepository    *CourseRepository
	CatalogRepository   *CatalogRepository
	SeasonRepository    *SeasonRepository
	PlanRepository      *PlanRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:      NewUserRepository(db),
		TokenRepository:     NewTokenRepository(db),
		ProgrammeRepository: NewProgrammeRepository(db),
		CourseRepository:    NewCourseRepository(db),
		CatalogRepository:   NewCatalogRepository(db),
		SeasonRepository:    NewSeasonRepository(db),
		PlanRepository:      NewPlanRepository(db),
	}
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
