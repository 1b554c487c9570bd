package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/pkg/apperrors"
	"github.com/yigit/studyplan/internal/pkg/dberrors"
)

// CatalogRepository handles categories, subcategories, majors and minors
type CatalogRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// NotFoundError returns the not-found sentinel of a catalog kind.
func NotFoundError(kind models.CatalogKind) error {
	switch kind {
	case models.CatalogCategory:
		return apperrors.ErrCategoryNotFound
	case models.CatalogSubcategory:
		return apperrors.ErrSubcategoryNotFound
	case models.CatalogMajor:
		return apperrors.ErrMajorNotFound
	case models.CatalogMinor:
		return apperrors.ErrMinorNotFound
	}
	return apperrors.ErrResourceNotFound
}

// GetCategoriesData loads the four classification lists of a programme
func (r *CatalogRepository) GetCategoriesData(ctx context.Context, programmeID int64) (*models.CategoriesData, error) {
	data := &models.CategoriesData{
		Categories:    []*models.Category{},
		Subcategories: []*models.Subcategory{},
		Majors:        []*models.Major{},
		Minors:        []*models.Minor{},
	}

	err := r.list(ctx, models.CatalogCategory, []string{"id", "programme_id", "name", "position"}, programmeID,
		[]string{"position", "name"}, func(row pgx.Rows) error {
			var c models.Category
			if err := row.Scan(&c.ID, &c.ProgrammeID, &c.Name, &c.Position); err != nil {
				return err
			}
			data.Categories = append(data.Categories, &c)
			return nil
		})
	if err != nil {
		return nil, err
	}

	err = r.list(ctx, models.CatalogSubcategory, []string{"id", "programme_id", "category_id", "name"}, programmeID,
		[]string{"category_id", "name"}, func(row pgx.Rows) error {
			var s models.Subcategory
			if err := row.Scan(&s.ID, &s.ProgrammeID, &s.CategoryID, &s.Name); err != nil {
				return err
			}
			data.Subcategories = append(data.Subcategories, &s)
			return nil
		})
	if err != nil {
		return nil, err
	}

	err = r.list(ctx, models.CatalogMajor, []string{"id", "programme_id", "name"}, programmeID,
		[]string{"name"}, func(row pgx.Rows) error {
			var m models.Major
			if err := row.Scan(&m.ID, &m.ProgrammeID, &m.Name); err != nil {
				return err
			}
			data.Majors = append(data.Majors, &m)
			return nil
		})
	if err != nil {
		return nil, err
	}

	err = r.list(ctx, models.CatalogMinor, []string{"id", "programme_id", "name"}, programmeID,
		[]string{"name"}, func(row pgx.Rows) error {
			var m models.Minor
			if err := row.Scan(&m.ID, &m.ProgrammeID, &m.Name); err != nil {
				return err
			}
			data.Minors = append(data.Minors, &m)
			return nil
		})
	if err != nil {
		return nil, err
	}

	return data, nil
}

func (r *CatalogRepository) list(ctx context.Context, kind models.CatalogKind, columns []string, programmeID int64, orderBy []string, scan func(pgx.Rows) error) error {
	sql, args, err := r.sb.Select(columns...).
		From(string(kind)).
		Where(squirrel.Eq{"programme_id": programmeID}).
		OrderBy(orderBy...).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build list %s query: %w", kind, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error listing %s: %w", kind, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("error scanning %s: %w", kind, err)
		}
	}
	return rows.Err()
}

func (r *CatalogRepository) insert(ctx context.Context, kind models.CatalogKind, values map[string]interface{}) (int64, error) {
	sql, args, err := r.sb.Insert(string(kind)).
		SetMap(values).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create %s query: %w", kind, err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		switch {
		case dberrors.IsUniqueViolation(err):
			return 0, apperrors.ErrCatalogEntryExists
		case dberrors.IsForeignKeyViolation(err):
			return 0, fmt.Errorf("%w: unknown parent entry", apperrors.ErrValidationFailed)
		}
		return 0, fmt.Errorf("error creating %s: %w", kind, err)
	}
	return id, nil
}

// CreateCategory creates a category
func (r *CatalogRepository) CreateCategory(ctx context.Context, c *models.Category) error {
	id, err := r.insert(ctx, models.CatalogCategory, map[string]interface{}{
		"programme_id": c.ProgrammeID,
		"name":         c.Name,
		"position":     c.Position,
	})
	c.ID = id
	return err
}

// CreateSubcategory creates a subcategory under a category of the same programme
func (r *CatalogRepository) CreateSubcategory(ctx context.Context, s *models.Subcategory) error {
	id, err := r.insert(ctx, models.CatalogSubcategory, map[string]interface{}{
		"programme_id": s.ProgrammeID,
		"category_id":  s.CategoryID,
		"name":         s.Name,
	})
	s.ID = id
	return err
}

// CreateMajor creates a major
func (r *CatalogRepository) CreateMajor(ctx context.Context, m *models.Major) error {
	id, err := r.insert(ctx, models.CatalogMajor, map[string]interface{}{
		"programme_id": m.ProgrammeID,
		"name":         m.Name,
	})
	m.ID = id
	return err
}

// CreateMinor creates a minor
func (r *CatalogRepository) CreateMinor(ctx context.Context, m *models.Minor) error {
	id, err := r.insert(ctx, models.CatalogMinor, map[string]interface{}{
		"programme_id": m.ProgrammeID,
		"name":         m.Name,
	})
	m.ID = id
	return err
}

// UpdateEntry sets columns of one catalog entry of a programme
func (r *CatalogRepository) UpdateEntry(ctx context.Context, kind models.CatalogKind, programmeID, id int64, values map[string]interface{}) error {
	if !kind.Valid() {
		return apperrors.NewBadRequestError(fmt.Sprintf("unknown catalog kind %q", kind))
	}

	sql, args, err := r.sb.Update(string(kind)).
		SetMap(values).
		Where(squirrel.Eq{"id": id, "programme_id": programmeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update %s query: %w", kind, err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		switch {
		case dberrors.IsUniqueViolation(err):
			return apperrors.ErrCatalogEntryExists
		case dberrors.IsForeignKeyViolation(err):
			return fmt.Errorf("%w: unknown parent entry", apperrors.ErrValidationFailed)
		}
		return fmt.Errorf("error updating %s: %w", kind, err)
	}
	if tag.RowsAffected() == 0 {
		return NotFoundError(kind)
	}
	return nil
}

// DeleteEntry deletes one catalog entry of a programme. Categories still
// referenced by courses cannot be deleted.
func (r *CatalogRepository) DeleteEntry(ctx context.Context, kind models.CatalogKind, programmeID, id int64) error {
	if !kind.Valid() {
		return apperrors.NewBadRequestError(fmt.Sprintf("unknown catalog kind %q", kind))
	}

	sql, args, err := r.sb.Delete(string(kind)).
		Where(squirrel.Eq{"id": id, "programme_id": programmeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete %s query: %w", kind, err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewInUseError(fmt.Sprintf("%s entry %d is referenced by courses", kind, id))
		}
		return fmt.Errorf("error deleting %s: %w", kind, err)
	}
	if tag.RowsAffected() == 0 {
		return NotFoundError(kind)
	}
	return nil
}
