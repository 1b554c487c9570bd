package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/app/models/dto"
	"github.com/yigit/studyplan/internal/middleware"
)

// CatalogController manages the classification data and seasons of a programme
type CatalogController struct {
	catalogService CatalogUseCase
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService CatalogUseCase) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// GetCategoriesData returns categories, subcategories, majors and minors
// @Summary Get categories data
// @Tags catalog
// @Produce json
// @Param id path int true "Programme ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.CategoriesData} "Categories data"
// @Failure 404 {object} dto.ErrorResponse "Programme not found"
// @Router /programmes/{id}/categories-data [get]
func (c *CatalogController) GetCategoriesData(ctx *gin.Context) {
	programmeID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	data, err := c.catalogService.CategoriesData(ctx.Request.Context(), programmeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(data))
}

// ListSeasons returns the seasons of a programme
// @Summary List seasons
// @Tags catalog
// @Produce json
// @Param id path int true "Programme ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Season} "Seasons"
// @Failure 404 {object} dto.ErrorResponse "Programme not found"
// @Router /programmes/{id}/seasons [get]
func (c *CatalogController) ListSeasons(ctx *gin.Context) {
	programmeID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	seasons, err := c.catalogService.Seasons(ctx.Request.Context(), programmeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(seasons))
}

// CreateCategory adds a category
// @Summary Create category
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Programme ID" Format(int64) minimum(1)
// @Param request body dto.CatalogEntryRequest true "Category"
// @Success 201 {object} dto.APIResponse{data=models.Category} "Category created"
// @Failure 409 {object} dto.ErrorResponse "Category already exists"
// @Router /programmes/{id}/categories [post]
func (c *CatalogController) CreateCategory(ctx *gin.Context) {
	programmeID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.CatalogEntryRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	category, err := c.catalogService.CreateCategory(ctx.Request.Context(), programmeID, req.Name, req.Position)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(category))
}

// UpdateCategory renames or moves a category
// @Summary Update category
// @Tags catalog
// @Accept json
// @Security BearerAuth
// @Param id path int true "Programme ID" Format(int64) minimum(1)
// @Param entryId path int true "Category ID" Format(int64) minimum(1)
// @Param request body dto.CatalogEntryRequest true "Category"
// @Success 204 "Category updated"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /programmes/{id}/categories/{entryId} [put]
func (c *CatalogController) UpdateCategory(ctx *gin.Context) {
	programmeID, entryID, ok := entryParams(ctx)
	if !ok {
		return
	}
	var req dto.CatalogEntryRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	if err := c.catalogService.UpdateCategory(ctx.Request.Context(), programmeID, entryID, req.Name, req.Position); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateSubcategory adds a subcategory to a category
// @Summary Create subcategory
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Programme ID" Format(int64) minimum(1)
// @Param request body dto.SubcategoryRequest true "Subcategory"
// @Success 201 {object} dto.APIResponse{data=models.Subcategory} "Subcategory created"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /programmes/{id}/subcategories [post]
func (c *CatalogController) CreateSubcategory(ctx *gin.Context) {
	programmeID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.SubcategoryRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	sub, err := c.catalogService.CreateSubcategory(ctx.Request.Context(), programmeID, req.CategoryID, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(sub))
}

// UpdateSubcategory renames or moves a subcategory
// @Summary Update subcategory
// @Tags catalog
// @Accept json
// @Security BearerAuth
// @Param id path int true "Programme ID" Format(int64) minimum(1)
// @Param entryId path int true "Subcategory ID" Format(int64) minimum(1)
// @Param request body dto.SubcategoryRequest true "Subcategory"
// @Success 204 "Subcategory updated"
// @Failure 404 {object} dto.ErrorResponse "Subcategory not found"
// @Router /programmes/{id}/subcategories/{entryId} [put]
func (c *CatalogController) UpdateSubcategory(ctx *gin.Context) {
	programmeID, entryID, ok := entryParams(ctx)
	if !ok {
		return
	}
	var req dto.SubcategoryRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	if err := c.catalogService.UpdateSubcategory(ctx.Request.Context(), programmeID, entryID, req.CategoryID, req.Name); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateNamedEntry returns the handler adding a major or a minor.
// @Summary Create major or minor
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Programme ID" Format(int64) minimum(1)
// @Param request body dto.CatalogEntryRequest true "Entry"
// @Success 201 {object} dto.APIResponse "Entry created"
// @Failure 409 {object} dto.ErrorResponse "Entry already exists"
// @Router /programmes/{id}/majors [post]
// @Router /programmes/{id}/minors [post]
func (c *CatalogController) CreateNamedEntry(kind models.CatalogKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		programmeID, ok := idParam(ctx, "id")
		if !ok {
			return
		}
		var req dto.CatalogEntryRequest
		if !middleware.BindJSON(ctx, &req) {
			return
		}

		var (
			entry interface{}
			err   error
		)
		switch kind {
		case models.CatalogMajor:
			entry, err = c.catalogService.CreateMajor(ctx.Request.Context(), programmeID, req.Name)
		default:
			entry, err = c.catalogService.CreateMinor(ctx.Request.Context(), programmeID, req.Name)
		}
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusCreated, dto.NewAPIResponse(entry))
	}
}

// RenameEntry returns the handler renaming a major or a minor.
// @Summary Rename major or minor
// @Tags catalog
// @Accept json
// @Security BearerAuth
// @Param id path int true "Programme ID" Format(int64) minimum(1)
// @Param entryId path int true "Entry ID" Format(int64) minimum(1)
// @Param request body dto.CatalogEntryRequest true "Entry"
// @Success 204 "Entry renamed"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Router /programmes/{id}/majors/{entryId} [put]
// @Router /programmes/{id}/minors/{entryId} [put]
func (c *CatalogController) RenameEntry(kind models.CatalogKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		programmeID, entryID, ok := entryParams(ctx)
		if !ok {
			return
		}
		var req dto.CatalogEntryRequest
		if !middleware.BindJSON(ctx, &req) {
			return
		}
		if err := c.catalogService.RenameEntry(ctx.Request.Context(), kind, programmeID, entryID, req.Name); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.Status(http.StatusNoContent)
	}
}

// DeleteEntry returns the handler deleting a category, subcategory, major or minor.
// @Summary Delete catalog entry
// @Description Deleting a category still used by courses fails with 409.
// @Tags catalog
// @Security BearerAuth
// @Param id path int true "Programme ID" Format(int64) minimum(1)
// @Param entryId path int true "Entry ID" Format(int64) minimum(1)
// @Success 204 "Entry deleted"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 409 {object} dto.ErrorResponse "Entry is in use"
// @Router /programmes/{id}/categories/{entryId} [delete]
// @Router /programmes/{id}/subcategories/{entryId} [delete]
// @Router /programmes/{id}/majors/{entryId} [delete]
// @Router /programmes/{id}/minors/{entryId} [delete]
func (c *CatalogController) DeleteEntry(kind models.CatalogKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		programmeID, entryID, ok := entryParams(ctx)
		if !ok {
			return
		}
		if err := c.catalogService.DeleteEntry(ctx.Request.Context(), kind, programmeID, entryID); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.Status(http.StatusNoContent)
	}
}

// CreateSeason adds a season
// @Summary Create season
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Programme ID" Format(int64) minimum(1)
// @Param request body dto.SeasonRequest true "Season"
// @Success 201 {object} dto.APIResponse{data=models.Season} "Season created"
// @Failure 409 {object} dto.ErrorResponse "Season already exists"
// @Router /programmes/{id}/seasons [post]
func (c *CatalogController) CreateSeason(ctx *gin.Context) {
	programmeID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.SeasonRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	season, err := c.catalogService.CreateSeason(ctx.Request.Context(), programmeID, req.Name, req.Position)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(season))
}

// UpdateSeason renames or moves a season
// @Summary Update season
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Programme ID" Format(int64) minimum(1)
// @Param entryId path int true "Season ID" Format(int64) minimum(1)
// @Param request body dto.SeasonRequest true "Season"
// @Success 200 {object} dto.APIResponse{data=models.Season} "Season updated"
// @Failure 404 {object} dto.ErrorResponse "Season not found"
// @Router /programmes/{id}/seasons/{entryId} [put]
func (c *CatalogController) UpdateSeason(ctx *gin.Context) {
	programmeID, entryID, ok := entryParams(ctx)
	if !ok {
		return
	}
	var req dto.SeasonRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	season, err := c.catalogService.UpdateSeason(ctx.Request.Context(), programmeID, entryID, req.Name, req.Position)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(season))
}

// DeleteSeason deletes a season
// @Summary Delete season
// @Tags catalog
// @Security BearerAuth
// @Param id path int true "Programme ID" Format(int64) minimum(1)
// @Param entryId path int true "Season ID" Format(int64) minimum(1)
// @Success 204 "Season deleted"
// @Failure 409 {object} dto.ErrorResponse "Season is in use"
// @Router /programmes/{id}/seasons/{entryId} [delete]
func (c *CatalogController) DeleteSeason(ctx *gin.Context) {
	programmeID, entryID, ok := entryParams(ctx)
	if !ok {
		return
	}
	if err := c.catalogService.DeleteSeason(ctx.Request.Context(), programmeID, entryID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func entryParams(ctx *gin.Context) (programmeID, entryID int64, ok bool) {
	if programmeID, ok = idParam(ctx, "id"); !ok {
		return 0, 0, false
	}
	if entryID, ok = idParam(ctx, "entryId"); !ok {
		return 0, 0, false
	}
	return programmeID, entryID, true
}
