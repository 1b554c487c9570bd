package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/pkg/apperrors"
	"github.com/yigit/studyplan/internal/pkg/validation"
)

// CourseService handles course operations of a programme
type CourseService struct {
	courseRepo    CourseStore
	programmeRepo ProgrammeStore
	catalogRepo   CatalogStore
	seasonRepo    SeasonStore
	changes       ChangeNotifier
	logger        zerolog.Logger
}

// NewCourseService creates a new course service
func NewCourseService(
	courseRepo CourseStore,
	programmeRepo ProgrammeStore,
	catalogRepo CatalogStore,
	seasonRepo SeasonStore,
	changes ChangeNotifier,
	logger zerolog.Logger,
) *CourseService {
	return &CourseService{
		courseRepo:    courseRepo,
		programmeRepo: programmeRepo,
		catalogRepo:   catalogRepo,
		seasonRepo:    seasonRepo,
		changes:       notifierOrNoop(changes),
		logger:        logger,
	}
}

// validateCourseInput checks the fields of a course that need no lookups
func validateCourseInput(in *models.CourseInput) error {
	in.SchoolCourseID = strings.TrimSpace(in.SchoolCourseID)
	in.Name = strings.TrimSpace(in.Name)
	in.Link = strings.TrimSpace(in.Link)

	if !validation.CompiledPatterns.CourseCode.MatchString(in.SchoolCourseID) {
		return fmt.Errorf("%w: invalid school course id", apperrors.ErrValidationFailed)
	}
	if !validation.ValidName(in.Name) {
		return fmt.Errorf("%w: name must be 1-%d characters", apperrors.ErrValidationFailed, validation.NameMaxLength)
	}
	if !validation.ValidCredits(in.Credits) {
		return fmt.Errorf("%w: credits must be between 0 and %g", apperrors.ErrValidationFailed, validation.MaxCredits)
	}
	if in.Link != "" {
		u, err := url.Parse(in.Link)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: link must be an http(s) URL", apperrors.ErrValidationFailed)
		}
	}
	if in.SeasonID <= 0 {
		return fmt.Errorf("%w: season is required", apperrors.ErrValidationFailed)
	}
	if in.CategoryID <= 0 {
		return fmt.Errorf("%w: category is required", apperrors.ErrValidationFailed)
	}
	return nil
}

// checkReferences makes sure every referenced catalog entry belongs to the programme
func (s *CourseService) checkReferences(ctx context.Context, programmeID int64, in models.CourseInput) error {
	seasons, err := s.seasonRepo.ListByProgramme(ctx, programmeID)
	if err != nil {
		return err
	}
	found := false
	for _, season := range seasons {
		if season.ID == in.SeasonID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, apperrors.ErrSeasonNotFound)
	}

	data, err := s.catalogRepo.GetCategoriesData(ctx, programmeID)
	if err != nil {
		return err
	}
	if _, ok := data.Category(in.CategoryID); !ok {
		return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, apperrors.ErrCategoryNotFound)
	}
	if in.SubcategoryID != nil {
		sub, ok := data.Subcategory(*in.SubcategoryID)
		if !ok || sub.CategoryID != in.CategoryID {
			return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, apperrors.ErrSubcategoryNotFound)
		}
	}
	if in.MajorID != nil && !data.HasMajor(*in.MajorID) {
		return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, apperrors.ErrMajorNotFound)
	}
	if in.MinorID != nil && !data.HasMinor(*in.MinorID) {
		return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, apperrors.ErrMinorNotFound)
	}
	return nil
}

// List returns the courses of a programme
func (s *CourseService) List(ctx context.Context, programmeID int64) ([]*models.Course, error) {
	return s.courseRepo.ListByProgramme(ctx, programmeID)
}

// Get returns one course of a programme
func (s *CourseService) Get(ctx context.Context, programmeID, courseID int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, programmeID, courseID)
}

// Add creates a course in a programme
func (s *CourseService) Add(ctx context.Context, programmeID int64, in models.CourseInput) (*models.Course, error) {
	if err := validateCourseInput(&in); err != nil {
		return nil, err
	}
	if _, err := s.programmeRepo.GetByID(ctx, programmeID); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, programmeID, in); err != nil {
		return nil, err
	}

	course := &models.Course{ProgrammeID: programmeID}
	in.Apply(course)
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("programmeID", programmeID).Int64("courseID", course.ID).Msg("Course added")
	s.changes.NotifyChange(programmeID, ChangeCourses)
	return course, nil
}

// Update overwrites the editable fields of a course
func (s *CourseService) Update(ctx context.Context, programmeID, courseID int64, in models.CourseInput) (*models.Course, error) {
	if err := validateCourseInput(&in); err != nil {
		return nil, err
	}
	course, err := s.courseRepo.GetByID(ctx, programmeID, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, programmeID, in); err != nil {
		return nil, err
	}

	in.Apply(course)
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("programmeID", programmeID).Int64("courseID", courseID).Msg("Course updated")
	s.changes.NotifyChange(programmeID, ChangeCourses)
	return course, nil
}

// Remove deletes a course. It also drops out of every plan that took it.
func (s *CourseService) Remove(ctx context.Context, programmeID, courseID int64) error {
	if err := s.courseRepo.Delete(ctx, programmeID, courseID); err != nil {
		return err
	}

	s.logger.Info().Int64("programmeID", programmeID).Int64("courseID", courseID).Msg("Course removed")
	s.changes.NotifyChange(programmeID, ChangeCourses)
	return nil
}
