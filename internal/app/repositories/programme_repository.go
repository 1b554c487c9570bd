package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/pkg/apperrors"
	"github.com/yigit/studyplan/internal/pkg/dberrors"
)

var programmeColumns = []string{"id", "name", "min_credits", "created_at", "updated_at"}

// ProgrammeRepository handles database operations for programmes
type ProgrammeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProgrammeRepository creates a new programme repository
func NewProgrammeRepository(db *pgxpool.Pool) *ProgrammeRepository {
	return &ProgrammeRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanProgramme(row pgx.Row) (*models.Programme, error) {
	var p models.Programme
	if err := row.Scan(&p.ID, &p.Name, &p.MinCredits, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a new programme
func (r *ProgrammeRepository) Create(ctx context.Context, programme *models.Programme) error {
	sql, args, err := r.sb.Insert("programmes").
		Columns("name", "min_credits").
		Values(programme.Name, programme.MinCredits).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create programme query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&programme.ID, &programme.CreatedAt, &programme.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "programmes_name_key") {
			return apperrors.ErrProgrammeAlreadyExists
		}
		return fmt.Errorf("error creating programme: %w", err)
	}
	return nil
}

// GetByID retrieves a programme by ID
func (r *ProgrammeRepository) GetByID(ctx context.Context, id int64) (*models.Programme, error) {
	sql, args, err := r.sb.Select(programmeColumns...).
		From("programmes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get programme query: %w", err)
	}

	programme, err := scanProgramme(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgrammeNotFound
		}
		return nil, fmt.Errorf("error retrieving programme: %w", err)
	}
	return programme, nil
}

// GetAll retrieves all programmes ordered by name
func (r *ProgrammeRepository) GetAll(ctx context.Context) ([]*models.Programme, error) {
	sql, args, err := r.sb.Select(programmeColumns...).
		From("programmes").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list programmes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing programmes: %w", err)
	}
	defer rows.Close()

	programmes := []*models.Programme{}
	for rows.Next() {
		p, err := scanProgramme(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning programme: %w", err)
		}
		programmes = append(programmes, p)
	}
	return programmes, rows.Err()
}

// Update updates name and minimum credits of a programme
func (r *ProgrammeRepository) Update(ctx context.Context, programme *models.Programme) error {
	sql, args, err := r.sb.Update("programmes").
		Set("name", programme.Name).
		Set("min_credits", programme.MinCredits).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": programme.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update programme query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&programme.CreatedAt, &programme.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return apperrors.ErrProgrammeNotFound
		case dberrors.IsDuplicateConstraintError(err, "programmes_name_key"):
			return apperrors.ErrProgrammeAlreadyExists
		}
		return fmt.Errorf("error updating programme: %w", err)
	}
	return nil
}

// Delete deletes a programme and, by cascade, everything scoped to it
func (r *ProgrammeRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("programmes").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete programme query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting programme: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProgrammeNotFound
	}
	return nil
}
