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
	"github.com/yigit/studyplan/internal/pkg/logger"
)

var courseColumns = []string{
	"id", "programme_id", "school_course_id", "name", "link", "credits",
	"season_id", "category_id", "subcategory_id", "major_id", "minor_id",
	"created_at", "updated_at",
}

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(
		&c.ID, &c.ProgrammeID, &c.SchoolCourseID, &c.Name, &c.Link, &c.Credits,
		&c.SeasonID, &c.CategoryID, &c.SubcategoryID, &c.MajorID, &c.MinorID,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// translateWriteError maps constraint violations of course writes to domain errors
func translateWriteError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "courses_programme_code_key"):
		return apperrors.ErrCourseAlreadyExists
	case dberrors.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: course references an unknown catalog entry", apperrors.ErrValidationFailed)
	}
	return err
}

// ListByProgramme returns every course of a programme ordered by school course id
func (r *CourseRepository) ListByProgramme(ctx context.Context, programmeID int64) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"programme_id": programmeID}).
		OrderBy("school_course_id", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}
	return courses, nil
}

// GetByID retrieves a course of a programme
func (r *CourseRepository) GetByID(ctx context.Context, programmeID, courseID int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": courseID, "programme_id": programmeID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// Create inserts a course and sets its ID and timestamps
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("programme_id", "school_course_id", "name", "link", "credits",
			"season_id", "category_id", "subcategory_id", "major_id", "minor_id").
		Values(course.ProgrammeID, course.SchoolCourseID, course.Name, course.Link, course.Credits,
			course.SeasonID, course.CategoryID, course.SubcategoryID, course.MajorID, course.MinorID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if mapped := translateWriteError(err); mapped != err {
			return mapped
		}
		logger.Error().Err(err).Int64("programmeID", course.ProgrammeID).Msg("Error creating course")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// Update overwrites the editable fields of a course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"school_course_id": course.SchoolCourseID,
			"name":             course.Name,
			"link":             course.Link,
			"credits":          course.Credits,
			"season_id":        course.SeasonID,
			"category_id":      course.CategoryID,
			"subcategory_id":   course.SubcategoryID,
			"major_id":         course.MajorID,
			"minor_id":         course.MinorID,
			"updated_at":       squirrel.Expr("CURRENT_TIMESTAMP"),
		}).
		Where(squirrel.Eq{"id": course.ID, "programme_id": course.ProgrammeID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrCourseNotFound
		}
		if mapped := translateWriteError(err); mapped != err {
			return mapped
		}
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error updating course")
		return fmt.Errorf("error updating course: %w", err)
	}
	return nil
}

// Delete removes a course from a programme
func (r *CourseRepository) Delete(ctx context.Context, programmeID, courseID int64) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": courseID, "programme_id": programmeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}
