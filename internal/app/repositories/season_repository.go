package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/pkg/apperrors"
	"github.com/yigit/studyplan/internal/pkg/dberrors"
)

// SeasonRepository handles database operations for seasons
type SeasonRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSeasonRepository creates a new season repository
func NewSeasonRepository(db *pgxpool.Pool) *SeasonRepository {
	return &SeasonRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// ListByProgramme returns the seasons of a programme in display order
func (r *SeasonRepository) ListByProgramme(ctx context.Context, programmeID int64) ([]*models.Season, error) {
	sql, args, err := r.sb.Select("id", "programme_id", "name", "position").
		From("seasons").
		Where(squirrel.Eq{"programme_id": programmeID}).
		OrderBy("position", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list seasons query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing seasons: %w", err)
	}
	defer rows.Close()

	seasons := []*models.Season{}
	for rows.Next() {
		var s models.Season
		if err := rows.Scan(&s.ID, &s.ProgrammeID, &s.Name, &s.Position); err != nil {
			return nil, fmt.Errorf("error scanning season: %w", err)
		}
		seasons = append(seasons, &s)
	}
	return seasons, rows.Err()
}

// Create creates a season
func (r *SeasonRepository) Create(ctx context.Context, season *models.Season) error {
	sql, args, err := r.sb.Insert("seasons").
		Columns("programme_id", "name", "position").
		Values(season.ProgrammeID, season.Name, season.Position).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create season query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&season.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "seasons_programme_name_key") {
			return apperrors.ErrCatalogEntryExists
		}
		return fmt.Errorf("error creating season: %w", err)
	}
	return nil
}

// Update renames or reorders a season
func (r *SeasonRepository) Update(ctx context.Context, season *models.Season) error {
	sql, args, err := r.sb.Update("seasons").
		Set("name", season.Name).
		Set("position", season.Position).
		Where(squirrel.Eq{"id": season.ID, "programme_id": season.ProgrammeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update season query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "seasons_programme_name_key") {
			return apperrors.ErrCatalogEntryExists
		}
		return fmt.Errorf("error updating season: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSeasonNotFound
	}
	return nil
}

// Delete deletes a season that no course references
func (r *SeasonRepository) Delete(ctx context.Context, programmeID, seasonID int64) error {
	sql, args, err := r.sb.Delete("seasons").
		Where(squirrel.Eq{"id": seasonID, "programme_id": programmeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete season query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewInUseError(fmt.Sprintf("season %d is referenced by courses", seasonID))
		}
		return fmt.Errorf("error deleting season: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSeasonNotFound
	}
	return nil
}
