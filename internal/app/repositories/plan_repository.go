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

var planColumns = []string{"id", "user_id", "programme_id", "name", "created_at", "updated_at"}

// PlanRepository handles plans and the courses taken in them
type PlanRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanPlan(row pgx.Row) (*models.Plan, error) {
	var p models.Plan
	if err := row.Scan(&p.ID, &p.UserID, &p.ProgrammeID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a plan
func (r *PlanRepository) Create(ctx context.Context, plan *models.Plan) error {
	sql, args, err := r.sb.Insert("plans").
		Columns("user_id", "programme_id", "name").
		Values(plan.UserID, plan.ProgrammeID, plan.Name).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create plan query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrProgrammeNotFound
		}
		return fmt.Errorf("error creating plan: %w", err)
	}
	return nil
}

// GetByID retrieves a plan
func (r *PlanRepository) GetByID(ctx context.Context, id int64) (*models.Plan, error) {
	sql, args, err := r.sb.Select(planColumns...).From("plans").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get plan query: %w", err)
	}

	plan, err := scanPlan(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, fmt.Errorf("error retrieving plan: %w", err)
	}
	return plan, nil
}

// ListByUser returns the plans owned by a user, newest first
func (r *PlanRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Plan, error) {
	sql, args, err := r.sb.Select(planColumns...).
		From("plans").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list plans query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing plans: %w", err)
	}
	defer rows.Close()

	plans := []*models.Plan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// Delete deletes a plan
func (r *PlanRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("plans").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete plan query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPlanNotFound
	}
	return nil
}

// ListTaken returns the taken-course records of a plan
func (r *PlanRepository) ListTaken(ctx context.Context, planID int64) ([]models.TakenCourseData, error) {
	sql, args, err := r.sb.Select("plan_id", "course_id", "taken_at").
		From("plan_courses").
		Where(squirrel.Eq{"plan_id": planID}).
		OrderBy("taken_at", "course_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list taken courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing taken courses: %w", err)
	}
	defer rows.Close()

	taken := []models.TakenCourseData{}
	for rows.Next() {
		var t models.TakenCourseData
		if err := rows.Scan(&t.PlanID, &t.CourseID, &t.TakenAt); err != nil {
			return nil, fmt.Errorf("error scanning taken course: %w", err)
		}
		taken = append(taken, t)
	}
	return taken, rows.Err()
}

// Take marks a course as taken in a plan. Taking it twice is a no-op.
func (r *PlanRepository) Take(ctx context.Context, planID, courseID int64) error {
	sql, args, err := r.sb.Insert("plan_courses").
		Columns("plan_id", "course_id").
		Values(planID, courseID).
		Suffix("ON CONFLICT (plan_id, course_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build take course query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error taking course: %w", err)
	}
	return nil
}

// Untake removes a course from a plan. Removing an untaken course is a no-op.
func (r *PlanRepository) Untake(ctx context.Context, planID, courseID int64) error {
	sql, args, err := r.sb.Delete("plan_courses").
		Where(squirrel.Eq{"plan_id": planID, "course_id": courseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build untake course query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error untaking course: %w", err)
	}
	return nil
}
