package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/app/models/dto"
	"github.com/yigit/studyplan/internal/app/services"
	"github.com/yigit/studyplan/internal/app/views/courselist"
	"github.com/yigit/studyplan/internal/middleware"
	"github.com/yigit/studyplan/internal/pkg/apperrors"
	"github.com/yigit/studyplan/internal/pkg/helpers"
	"github.com/yigit/studyplan/internal/pkg/notify"
	"github.com/yigit/studyplan/internal/pkg/session"
)

// PlanReader loads a plan with its taken courses.
type PlanReader interface {
	Get(ctx context.Context, userID, planID int64) (*models.Plan, []models.TakenCourseData, error)
}

// CourseController serves the course list of a programme and its mutations
type CourseController struct {
	list       *courselist.List
	courses    CourseReader
	programmes courselist.ProgrammeSource
	plans      PlanReader
	logger     zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(list *courselist.List, courses CourseReader, programmes courselist.ProgrammeSource, plans PlanReader, logger zerolog.Logger) *CourseController {
	return &CourseController{
		list:       list,
		courses:    courses,
		programmes: programmes,
		plans:      plans,
		logger:     logger,
	}
}

// takenIDs resolves the taken-course data of a list request: an explicit
// "taken" id list or the courses taken in the caller's plan "planId".
// Nil means the request carries no taken-course data.
func (c *CourseController) takenIDs(ctx *gin.Context, programmeID int64) ([]int64, error) {
	if raw, ok := ctx.GetQuery("taken"); ok {
		ids, valid := helpers.ParseIDList(raw)
		if !valid {
			return nil, apperrors.NewBadRequestError("taken must be a list of course ids")
		}
		if ids == nil {
			ids = []int64{}
		}
		return ids, nil
	}

	raw := ctx.Query("planId")
	if raw == "" {
		return nil, nil
	}
	planIDs, valid := helpers.ParseIDList(raw)
	if !valid || len(planIDs) != 1 {
		return nil, apperrors.NewBadRequestError("invalid planId")
	}
	state := session.From(ctx)
	if !state.IsLoggedIn() {
		return nil, apperrors.NewForbiddenError("planId requires a signed-in user")
	}
	plan, taken, err := c.plans.Get(ctx.Request.Context(), state.UserID, planIDs[0])
	if err != nil {
		return nil, err
	}
	if plan.ProgrammeID != programmeID {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("plan %d belongs to another programme", plan.ID))
	}
	return models.TakenCourseIDs(taken), nil
}

// ListCourses returns the courses of a programme
// @Summary List courses
// @Description Lists the courses of a programme. With "taken" or "planId" the response carries the taken-credit summary; "show" restricts the listed courses.
// @Tags courses
// @Produce json
// @Param id path int true "Programme ID" Format(int64) minimum(1)
// @Param taken query string false "Comma separated ids of taken courses"
// @Param planId query int false "Plan whose taken courses are used"
// @Param show query string false "Comma separated ids of courses to list"
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Courses"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 404 {object} dto.ErrorResponse "Programme not found"
// @Router /programmes/{id}/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	programmeID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	show, valid := helpers.ParseIDList(ctx.Query("show"))
	if !valid {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("show must be a list of course ids"))
		return
	}
	if _, present := ctx.GetQuery("show"); present && show == nil {
		show = []int64{}
	}

	taken, err := c.takenIDs(ctx, programmeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	programme, err := c.programmes.Get(ctx.Request.Context(), programmeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	courses, err := c.courses.List(ctx.Request.Context(), programmeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.CourseListResponse{
		Courses: courselist.FilterByIDs(courses, show),
		Credits: services.NewProgress(courses, taken, programme.MinCredits),
	}))
}

// GetCourse returns one course
// @Summary Get course
// @Tags courses
// @Produce json
// @Param id path int true "Programme ID" Format(int64) minimum(1)
// @Param courseId path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /programmes/{id}/courses/{courseId} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	programmeID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := idParam(ctx, "courseId")
	if !ok {
		return
	}
	course, err := c.courses.Get(ctx.Request.Context(), programmeID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course))
}

// AddCourse adds a course and returns the refetched list
// @Summary Add course
// @Description Adds a course. The response carries the refetched course list and one notification.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Programme ID" Format(int64) minimum(1)
// @Param request body dto.CourseRequest true "Course"
// @Success 201 {object} dto.APIResponse{data=dto.CourseListResponse} "Course added"
// @Failure 400 {object} dto.ErrorResponse "Invalid course"
// @Failure 409 {object} dto.ErrorResponse "Course code already used"
// @Router /programmes/{id}/courses [post]
func (c *CourseController) AddCourse(ctx *gin.Context) {
	programmeID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.CourseRequest
	if !c.bindCourse(ctx, &req, courselist.MsgAddFailure) {
		return
	}
	out := c.list.AddCourse(ctx.Request.Context(), programmeID, nil, req.ToInput())
	c.respond(ctx, out, http.StatusCreated)
}

// UpdateCourse edits a course and returns the refetched list
// @Summary Update course
// @Description Edits a course. The response carries the refetched course list and one notification.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Programme ID" Format(int64) minimum(1)
// @Param courseId path int true "Course ID" Format(int64) minimum(1)
// @Param request body dto.CourseRequest true "Course"
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Course edited"
// @Failure 400 {object} dto.ErrorResponse "Invalid course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /programmes/{id}/courses/{courseId} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	programmeID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := idParam(ctx, "courseId")
	if !ok {
		return
	}
	var req dto.CourseRequest
	if !c.bindCourse(ctx, &req, courselist.MsgUpdateFailure) {
		return
	}
	out := c.list.UpdateCourse(ctx.Request.Context(), programmeID, courseID, nil, req.ToInput())
	c.respond(ctx, out, http.StatusOK)
}

// RemoveCourse removes a course and returns the refetched list
// @Summary Remove course
// @Description Removes a course. The response carries the refetched course list and one notification.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Programme ID" Format(int64) minimum(1)
// @Param courseId path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Course removed"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /programmes/{id}/courses/{courseId} [delete]
func (c *CourseController) RemoveCourse(ctx *gin.Context) {
	programmeID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := idParam(ctx, "courseId")
	if !ok {
		return
	}
	out := c.list.RemoveCourse(ctx.Request.Context(), programmeID, courseID, nil)
	c.respond(ctx, out, http.StatusOK)
}

// bindCourse binds a course body. A rejected body is a failed mutation and
// carries its failure notification.
func (c *CourseController) bindCourse(ctx *gin.Context, req *dto.CourseRequest, failure string) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		c.logger.Debug().Err(err).Msg("Invalid course payload")
		resp := dto.NewErrorResponse(dto.HandleValidationError(err)).WithNotification(notify.Error(failure))
		ctx.AbortWithStatusJSON(http.StatusBadRequest, resp)
		return false
	}
	return true
}

func (c *CourseController) respond(ctx *gin.Context, out courselist.Outcome, successStatus int) {
	if out.Failed() {
		status, detail := middleware.ErrorStatus(out.Err)
		ctx.AbortWithStatusJSON(status, dto.NewErrorResponse(detail).WithNotification(out.Notification))
		return
	}
	resp := dto.NewAPIResponse(dto.CourseListResponse{Courses: out.Courses}).WithNotification(out.Notification)
	ctx.JSON(successStatus, resp)
}
