package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/pkg/apperrors"
	"github.com/yigit/studyplan/internal/pkg/validation"
)

// CatalogService manages the classification data and seasons of programmes
type CatalogService struct {
	catalogRepo   CatalogStore
	seasonRepo    SeasonStore
	programmeRepo ProgrammeStore
	changes       ChangeNotifier
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo CatalogStore, seasonRepo SeasonStore, programmeRepo ProgrammeStore, changes ChangeNotifier) *CatalogService {
	return &CatalogService{
		catalogRepo:   catalogRepo,
		seasonRepo:    seasonRepo,
		programmeRepo: programmeRepo,
		changes:       notifierOrNoop(changes),
	}
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if !validation.ValidName(name) {
		return "", fmt.Errorf("%w: name must be 1-%d characters", apperrors.ErrValidationFailed, validation.NameMaxLength)
	}
	return name, nil
}

func (s *CatalogService) requireProgramme(ctx context.Context, programmeID int64) error {
	_, err := s.programmeRepo.GetByID(ctx, programmeID)
	return err
}

// CategoriesData returns categories, subcategories, majors and minors of a programme
func (s *CatalogService) CategoriesData(ctx context.Context, programmeID int64) (*models.CategoriesData, error) {
	return s.catalogRepo.GetCategoriesData(ctx, programmeID)
}

// Seasons returns the seasons of a programme
func (s *CatalogService) Seasons(ctx context.Context, programmeID int64) ([]*models.Season, error) {
	return s.seasonRepo.ListByProgramme(ctx, programmeID)
}

// CreateCategory adds a category to a programme
func (s *CatalogService) CreateCategory(ctx context.Context, programmeID int64, name string, position int) (*models.Category, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	if err := s.requireProgramme(ctx, programmeID); err != nil {
		return nil, err
	}

	c := &models.Category{ProgrammeID: programmeID, Name: name, Position: position}
	if err := s.catalogRepo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	s.changes.NotifyChange(programmeID, ChangeCatalog)
	return c, nil
}

// CreateSubcategory adds a subcategory below a category of the same programme
func (s *CatalogService) CreateSubcategory(ctx context.Context, programmeID, categoryID int64, name string) (*models.Subcategory, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	if err := s.requireCategory(ctx, programmeID, categoryID); err != nil {
		return nil, err
	}

	sub := &models.Subcategory{ProgrammeID: programmeID, CategoryID: categoryID, Name: name}
	if err := s.catalogRepo.CreateSubcategory(ctx, sub); err != nil {
		return nil, err
	}
	s.changes.NotifyChange(programmeID, ChangeCatalog)
	return sub, nil
}

func (s *CatalogService) requireCategory(ctx context.Context, programmeID, categoryID int64) error {
	data, err := s.catalogRepo.GetCategoriesData(ctx, programmeID)
	if err != nil {
		return err
	}
	if _, ok := data.Category(categoryID); !ok {
		return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, apperrors.ErrCategoryNotFound)
	}
	return nil
}

// CreateMajor adds a major to a programme
func (s *CatalogService) CreateMajor(ctx context.Context, programmeID int64, name string) (*models.Major, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	if err := s.requireProgramme(ctx, programmeID); err != nil {
		return nil, err
	}

	m := &models.Major{ProgrammeID: programmeID, Name: name}
	if err := s.catalogRepo.CreateMajor(ctx, m); err != nil {
		return nil, err
	}
	s.changes.NotifyChange(programmeID, ChangeCatalog)
	return m, nil
}

// CreateMinor adds a minor to a programme
func (s *CatalogService) CreateMinor(ctx context.Context, programmeID int64, name string) (*models.Minor, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	if err := s.requireProgramme(ctx, programmeID); err != nil {
		return nil, err
	}

	m := &models.Minor{ProgrammeID: programmeID, Name: name}
	if err := s.catalogRepo.CreateMinor(ctx, m); err != nil {
		return nil, err
	}
	s.changes.NotifyChange(programmeID, ChangeCatalog)
	return m, nil
}

// UpdateCategory renames or moves a category
func (s *CatalogService) UpdateCategory(ctx context.Context, programmeID, id int64, name string, position int) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	return s.updateEntry(ctx, models.CatalogCategory, programmeID, id, map[string]interface{}{
		"name":     name,
		"position": position,
	})
}

// UpdateSubcategory renames a subcategory or moves it to another category
func (s *CatalogService) UpdateSubcategory(ctx context.Context, programmeID, id, categoryID int64, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	if err := s.requireCategory(ctx, programmeID, categoryID); err != nil {
		return err
	}
	return s.updateEntry(ctx, models.CatalogSubcategory, programmeID, id, map[string]interface{}{
		"name":        name,
		"category_id": categoryID,
	})
}

// RenameEntry renames a major or minor
func (s *CatalogService) RenameEntry(ctx context.Context, kind models.CatalogKind, programmeID, id int64, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	return s.updateEntry(ctx, kind, programmeID, id, map[string]interface{}{"name": name})
}

func (s *CatalogService) updateEntry(ctx context.Context, kind models.CatalogKind, programmeID, id int64, values map[string]interface{}) error {
	if err := s.catalogRepo.UpdateEntry(ctx, kind, programmeID, id, values); err != nil {
		return err
	}
	s.changes.NotifyChange(programmeID, ChangeCatalog)
	return nil
}

// DeleteEntry deletes a category, subcategory, major or minor.
// Categories still used by courses are rejected with ErrCatalogEntryInUse.
func (s *CatalogService) DeleteEntry(ctx context.Context, kind models.CatalogKind, programmeID, id int64) error {
	if err := s.catalogRepo.DeleteEntry(ctx, kind, programmeID, id); err != nil {
		return err
	}
	s.changes.NotifyChange(programmeID, ChangeCatalog)
	return nil
}

// CreateSeason adds a season to a programme
func (s *CatalogService) CreateSeason(ctx context.Context, programmeID int64, name string, position int) (*models.Season, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	if err := s.requireProgramme(ctx, programmeID); err != nil {
		return nil, err
	}

	season := &models.Season{ProgrammeID: programmeID, Name: name, Position: position}
	if err := s.seasonRepo.Create(ctx, season); err != nil {
		return nil, err
	}
	s.changes.NotifyChange(programmeID, ChangeCatalog)
	return season, nil
}

// UpdateSeason renames or reorders a season
func (s *CatalogService) UpdateSeason(ctx context.Context, programmeID, id int64, name string, position int) (*models.Season, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	season := &models.Season{ID: id, ProgrammeID: programmeID, Name: name, Position: position}
	if err := s.seasonRepo.Update(ctx, season); err != nil {
		return nil, err
	}
	s.changes.NotifyChange(programmeID, ChangeCatalog)
	return season, nil
}

// DeleteSeason deletes a season no course is offered in
func (s *CatalogService) DeleteSeason(ctx context.Context, programmeID, id int64) error {
	if err := s.seasonRepo.Delete(ctx, programmeID, id); err != nil {
		return err
	}
	s.changes.NotifyChange(programmeID, ChangeCatalog)
	return nil
}
