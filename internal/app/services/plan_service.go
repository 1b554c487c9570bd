package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/pkg/apperrors"
	"github.com/yigit/studyplan/internal/pkg/validation"
)

// PlanService manages users' study plans
type PlanService struct {
	planRepo      PlanStore
	programmeRepo ProgrammeStore
	courseRepo    CourseStore
}

// NewPlanService creates a new plan service
func NewPlanService(planRepo PlanStore, programmeRepo ProgrammeStore, courseRepo CourseStore) *PlanService {
	return &PlanService{
		planRepo:      planRepo,
		programmeRepo: programmeRepo,
		courseRepo:    courseRepo,
	}
}

// Create starts an empty plan in a programme
func (s *PlanService) Create(ctx context.Context, userID, programmeID int64, name string) (*models.Plan, error) {
	name = strings.TrimSpace(name)
	if !validation.ValidName(name) {
		return nil, fmt.Errorf("%w: name must be 1-%d characters", apperrors.ErrValidationFailed, validation.NameMaxLength)
	}
	if _, err := s.programmeRepo.GetByID(ctx, programmeID); err != nil {
		return nil, err
	}

	plan := &models.Plan{UserID: userID, ProgrammeID: programmeID, Name: name}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// List returns the plans of a user
func (s *PlanService) List(ctx context.Context, userID int64) ([]*models.Plan, error) {
	return s.planRepo.ListByUser(ctx, userID)
}

// owned loads a plan and checks that userID owns it
func (s *PlanService) owned(ctx context.Context, userID, planID int64) (*models.Plan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.UserID != userID {
		return nil, apperrors.NewForbiddenError("plan belongs to another user")
	}
	return plan, nil
}

// Get returns a plan of the user together with its taken courses
func (s *PlanService) Get(ctx context.Context, userID, planID int64) (*models.Plan, []models.TakenCourseData, error) {
	plan, err := s.owned(ctx, userID, planID)
	if err != nil {
		return nil, nil, err
	}
	taken, err := s.planRepo.ListTaken(ctx, planID)
	if err != nil {
		return nil, nil, err
	}
	return plan, taken, nil
}

// Delete deletes a plan of the user
func (s *PlanService) Delete(ctx context.Context, userID, planID int64) error {
	if _, err := s.owned(ctx, userID, planID); err != nil {
		return err
	}
	return s.planRepo.Delete(ctx, planID)
}

// SetTaken marks a course of the plan's programme as taken or not taken.
func (s *PlanService) SetTaken(ctx context.Context, userID, planID, courseID int64, taken bool) error {
	plan, err := s.owned(ctx, userID, planID)
	if err != nil {
		return err
	}
	if _, err := s.courseRepo.GetByID(ctx, plan.ProgrammeID, courseID); err != nil {
		return err
	}

	if taken {
		return s.planRepo.Take(ctx, planID, courseID)
	}
	return s.planRepo.Untake(ctx, planID, courseID)
}

// Progress sums the credits taken in a plan against its programme minimum
func (s *PlanService) Progress(ctx context.Context, userID, planID int64) (*Progress, error) {
	plan, taken, err := s.Get(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	programme, err := s.programmeRepo.GetByID(ctx, plan.ProgrammeID)
	if err != nil {
		return nil, err
	}
	courses, err := s.courseRepo.ListByProgramme(ctx, plan.ProgrammeID)
	if err != nil {
		return nil, err
	}
	return NewProgress(courses, models.TakenCourseIDs(taken), programme.MinCredits), nil
}
