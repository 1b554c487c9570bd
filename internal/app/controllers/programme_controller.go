package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyplan/internal/app/models/dto"
	"github.com/yigit/studyplan/internal/middleware"
)

// ProgrammeController handles programme CRUD
type ProgrammeController struct {
	programmeService ProgrammeUseCase
}

// NewProgrammeController creates a new ProgrammeController
func NewProgrammeController(programmeService ProgrammeUseCase) *ProgrammeController {
	return &ProgrammeController{programmeService: programmeService}
}

// ListProgrammes returns all programmes
// @Summary List programmes
// @Tags programmes
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Programme} "Programmes"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programmes [get]
func (c *ProgrammeController) ListProgrammes(ctx *gin.Context) {
	programmes, err := c.programmeService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(programmes))
}

// GetProgramme returns one programme
// @Summary Get programme
// @Tags programmes
// @Produce json
// @Param id path int true "Programme ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Programme} "Programme"
// @Failure 400 {object} dto.ErrorResponse "Invalid programme ID"
// @Failure 404 {object} dto.ErrorResponse "Programme not found"
// @Router /programmes/{id} [get]
func (c *ProgrammeController) GetProgramme(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	programme, err := c.programmeService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(programme))
}

// CreateProgramme creates a programme
// @Summary Create programme
// @Tags programmes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProgrammeRequest true "Programme"
// @Success 201 {object} dto.APIResponse{data=models.Programme} "Programme created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Programme already exists"
// @Router /programmes [post]
func (c *ProgrammeController) CreateProgramme(ctx *gin.Context) {
	var req dto.ProgrammeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	programme, err := c.programmeService.Create(ctx.Request.Context(), req.Name, req.MinCredits)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(programme))
}

// UpdateProgramme renames a programme or changes its minimum
// @Summary Update programme
// @Tags programmes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Programme ID" Format(int64) minimum(1)
// @Param request body dto.ProgrammeRequest true "Programme"
// @Success 200 {object} dto.APIResponse{data=models.Programme} "Programme updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Programme not found"
// @Router /programmes/{id} [put]
func (c *ProgrammeController) UpdateProgramme(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ProgrammeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	programme, err := c.programmeService.Update(ctx.Request.Context(), id, req.Name, req.MinCredits)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(programme))
}

// DeleteProgramme deletes a programme with its courses and catalog
// @Summary Delete programme
// @Tags programmes
// @Security BearerAuth
// @Param id path int true "Programme ID" Format(int64) minimum(1)
// @Success 204 "Programme deleted"
// @Failure 404 {object} dto.ErrorResponse "Programme not found"
// @Router /programmes/{id} [delete]
func (c *ProgrammeController) DeleteProgramme(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.programmeService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
