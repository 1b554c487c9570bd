package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/app/models/dto"
	"github.com/yigit/studyplan/internal/middleware"
	"github.com/yigit/studyplan/internal/pkg/session"
)

// PlanController handles the study plans of the signed-in user
type PlanController struct {
	planService PlanUseCase
}

// NewPlanController creates a new PlanController
func NewPlanController(planService PlanUseCase) *PlanController {
	return &PlanController{planService: planService}
}

// ListPlans returns the caller's plans
// @Summary List plans
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Plan} "Plans"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /plans [get]
func (c *PlanController) ListPlans(ctx *gin.Context) {
	plans, err := c.planService.List(ctx.Request.Context(), session.From(ctx).UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(plans))
}

// CreatePlan starts a plan in a programme
// @Summary Create plan
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePlanRequest true "Plan"
// @Success 201 {object} dto.APIResponse{data=dto.PlanResponse} "Plan created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Programme not found"
// @Router /plans [post]
func (c *PlanController) CreatePlan(ctx *gin.Context) {
	var req dto.CreatePlanRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	plan, err := c.planService.Create(ctx.Request.Context(), session.From(ctx).UserID, req.ProgrammeID, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.PlanResponse{Plan: plan, TakenCourseIDs: []int64{}}))
}

// GetPlan returns a plan with its taken courses
// @Summary Get plan
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.PlanResponse} "Plan"
// @Failure 403 {object} dto.ErrorResponse "Plan belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Router /plans/{id} [get]
func (c *PlanController) GetPlan(ctx *gin.Context) {
	planID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	plan, taken, err := c.planService.Get(ctx.Request.Context(), session.From(ctx).UserID, planID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PlanResponse{Plan: plan, TakenCourseIDs: models.TakenCourseIDs(taken)}))
}

// DeletePlan deletes a plan
// @Summary Delete plan
// @Tags plans
// @Security BearerAuth
// @Param id path int true "Plan ID" Format(int64) minimum(1)
// @Success 204 "Plan deleted"
// @Failure 403 {object} dto.ErrorResponse "Plan belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Router /plans/{id} [delete]
func (c *PlanController) DeletePlan(ctx *gin.Context) {
	planID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.planService.Delete(ctx.Request.Context(), session.From(ctx).UserID, planID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// TakeCourse marks a course as taken
// @Summary Take course
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID" Format(int64) minimum(1)
// @Param courseId path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=services.Progress} "Updated progress"
// @Failure 404 {object} dto.ErrorResponse "Plan or course not found"
// @Router /plans/{id}/courses/{courseId} [put]
func (c *PlanController) TakeCourse(ctx *gin.Context) {
	c.setTaken(ctx, true)
}

// UntakeCourse clears the taken mark of a course
// @Summary Untake course
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID" Format(int64) minimum(1)
// @Param courseId path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=services.Progress} "Updated progress"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Router /plans/{id}/courses/{courseId} [delete]
func (c *PlanController) UntakeCourse(ctx *gin.Context) {
	c.setTaken(ctx, false)
}

func (c *PlanController) setTaken(ctx *gin.Context, taken bool) {
	planID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := idParam(ctx, "courseId")
	if !ok {
		return
	}
	userID := session.From(ctx).UserID
	if err := c.planService.SetTaken(ctx.Request.Context(), userID, planID, courseID, taken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	progress, err := c.planService.Progress(ctx.Request.Context(), userID, planID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(progress))
}

// GetProgress returns taken credits against the programme minimum
// @Summary Plan progress
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=services.Progress} "Progress"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Router /plans/{id}/progress [get]
func (c *PlanController) GetProgress(ctx *gin.Context) {
	planID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	progress, err := c.planService.Progress(ctx.Request.Context(), session.From(ctx).UserID, planID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(progress))
}
