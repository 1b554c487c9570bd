package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/pkg/apperrors"
	"github.com/yigit/studyplan/internal/pkg/validation"
)

// ProgrammeService handles programme operations
type ProgrammeService struct {
	programmeRepo ProgrammeStore
	changes       ChangeNotifier
}

// NewProgrammeService creates a new programme service
func NewProgrammeService(programmeRepo ProgrammeStore, changes ChangeNotifier) *ProgrammeService {
	return &ProgrammeService{
		programmeRepo: programmeRepo,
		changes:       notifierOrNoop(changes),
	}
}

func validateProgramme(p *models.Programme) error {
	p.Name = strings.TrimSpace(p.Name)
	if !validation.ValidName(p.Name) {
		return fmt.Errorf("%w: name must be 1-%d characters", apperrors.ErrValidationFailed, validation.NameMaxLength)
	}
	if math.IsNaN(p.MinCredits) || math.IsInf(p.MinCredits, 0) || p.MinCredits < 0 {
		return fmt.Errorf("%w: minimum credits must be a non-negative number", apperrors.ErrValidationFailed)
	}
	return nil
}

// Create creates a programme
func (s *ProgrammeService) Create(ctx context.Context, name string, minCredits float64) (*models.Programme, error) {
	p := &models.Programme{Name: name, MinCredits: minCredits}
	if err := validateProgramme(p); err != nil {
		return nil, err
	}
	if err := s.programmeRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns a programme
func (s *ProgrammeService) Get(ctx context.Context, id int64) (*models.Programme, error) {
	if id <= 0 {
		return nil, apperrors.ErrProgrammeNotFound
	}
	return s.programmeRepo.GetByID(ctx, id)
}

// List returns all programmes
func (s *ProgrammeService) List(ctx context.Context) ([]*models.Programme, error) {
	return s.programmeRepo.GetAll(ctx)
}

// Update changes name and minimum credits of a programme
func (s *ProgrammeService) Update(ctx context.Context, id int64, name string, minCredits float64) (*models.Programme, error) {
	p := &models.Programme{ID: id, Name: name, MinCredits: minCredits}
	if err := validateProgramme(p); err != nil {
		return nil, err
	}
	if err := s.programmeRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.changes.NotifyChange(id, ChangeProgramme)
	return p, nil
}

// Delete deletes a programme with its courses, catalog and plans
func (s *ProgrammeService) Delete(ctx context.Context, id int64) error {
	if err := s.programmeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.changes.NotifyChange(id, ChangeProgramme)
	return nil
}
