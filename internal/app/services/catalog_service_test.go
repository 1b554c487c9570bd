package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/pkg/apperrors"
)

func TestCatalogServiceCreatesEntries(t *testing.T) {
	ctx := context.Background()
	catalog := newFakeCatalog()
	seasons := &fakeSeasons{}
	changes := &recordingNotifier{}
	svc := NewCatalogService(catalog, seasons, newFakeProgrammes(&models.Programme{ID: 1, Name: "CS"}), changes)

	cat, err := svc.CreateCategory(ctx, 1, "Mandatory", 1)
	require.NoError(t, err)

	_, err = svc.CreateSubcategory(ctx, 1, cat.ID, "Core")
	require.NoError(t, err)
	_, err = svc.CreateSubcategory(ctx, 1, 999, "Orphan")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.CreateMajor(ctx, 1, "AI")
	require.NoError(t, err)
	_, err = svc.CreateMinor(ctx, 1, "Economics")
	require.NoError(t, err)

	_, err = svc.CreateSeason(ctx, 1, "Autumn", 1)
	require.NoError(t, err)
	_, err = svc.CreateSeason(ctx, 7, "Spring", 2)
	assert.ErrorIs(t, err, apperrors.ErrProgrammeNotFound)

	_, err = svc.CreateMajor(ctx, 1, "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	data, err := svc.CategoriesData(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, data.Categories, 1)
	assert.Len(t, data.Subcategories, 1)
	assert.Len(t, data.Majors, 1)
	assert.Len(t, data.Minors, 1)

	list, err := svc.Seasons(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.Len(t, changes.changes, 5)
}

func TestCatalogServiceUpdatesAndDeletes(t *testing.T) {
	ctx := context.Background()
	catalog := newFakeCatalog()
	catalog.data[1] = &models.CategoriesData{Categories: []*models.Category{{ID: 3, ProgrammeID: 1}}}
	svc := NewCatalogService(catalog, &fakeSeasons{}, newFakeProgrammes(&models.Programme{ID: 1}), nil)

	require.NoError(t, svc.UpdateCategory(ctx, 1, 3, "Core", 2))
	require.NoError(t, svc.UpdateSubcategory(ctx, 1, 4, 3, "Advanced"))
	require.NoError(t, svc.RenameEntry(ctx, models.CatalogMinor, 1, 5, "Music"))
	assert.Equal(t, []models.CatalogKind{models.CatalogCategory, models.CatalogSubcategory, models.CatalogMinor}, catalog.updates)

	catalog.deleteErr = apperrors.ErrCatalogEntryInUse
	assert.ErrorIs(t, svc.DeleteEntry(ctx, models.CatalogCategory, 1, 3), apperrors.ErrCatalogEntryInUse)

	assert.ErrorIs(t, svc.DeleteSeason(ctx, 1, 8), apperrors.ErrSeasonNotFound)
	_, err := svc.UpdateSeason(ctx, 1, 8, "Summer", 3)
	assert.ErrorIs(t, err, apperrors.ErrSeasonNotFound)
}
