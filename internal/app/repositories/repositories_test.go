package repositories

import (
	"errors"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/pkg/apperrors"
)

func TestStatementBuilderUsesDollarPlaceholders(t *testing.T) {
	sql, args, err := statementBuilder().Select("id").From("courses").
		Where(squirrel.Eq{"programme_id": 3, "id": 4}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM courses WHERE id = $1 AND programme_id = $2", sql)
	assert.Equal(t, []interface{}{4, 3}, args)
}

func TestTranslateWriteError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "courses_programme_code_key"}
	assert.ErrorIs(t, translateWriteError(dup), apperrors.ErrCourseAlreadyExists)

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "courses_season_id_fkey"}
	assert.ErrorIs(t, translateWriteError(fk), apperrors.ErrValidationFailed)

	other := errors.New("connection reset")
	assert.Same(t, other, translateWriteError(other))
}

func TestNotFoundError(t *testing.T) {
	assert.ErrorIs(t, NotFoundError(models.CatalogCategory), apperrors.ErrCategoryNotFound)
	assert.ErrorIs(t, NotFoundError(models.CatalogSubcategory), apperrors.ErrSubcategoryNotFound)
	assert.ErrorIs(t, NotFoundError(models.CatalogMajor), apperrors.ErrMajorNotFound)
	assert.ErrorIs(t, NotFoundError(models.CatalogMinor), apperrors.ErrMinorNotFound)
	assert.ErrorIs(t, NotFoundError("seasons"), apperrors.ErrResourceNotFound)
}

func TestCatalogInsertSQL(t *testing.T) {
	sql, args, err := statementBuilder().Insert(string(models.CatalogMajor)).
		SetMap(map[string]interface{}{"programme_id": int64(1), "name": "AI"}).
		Suffix("RETURNING id").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO majors (name,programme_id) VALUES ($1,$2) RETURNING id", sql)
	assert.Equal(t, []interface{}{"AI", int64(1)}, args)
}
