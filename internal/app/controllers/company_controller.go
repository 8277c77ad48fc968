package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pastoral/providencia/internal/app/models/dto"
	"github.com/pastoral/providencia/internal/app/services"
	"github.com/pastoral/providencia/internal/middleware"
)

// CompanyController handles the company directory
type CompanyController struct {
	companyService *services.CompanyService
	logger         zerolog.Logger
}

// NewCompanyController creates a new CompanyController
func NewCompanyController(companyService *services.CompanyService, logger zerolog.Logger) *CompanyController {
	return &CompanyController{
		companyService: companyService,
		logger:         logger,
	}
}

// Directory handles the public company directory listing
// @Summary Company directory
// @Description Lists companies with segment, city and search filters
// @Tags companies
// @Produce json
// @Param segment query string false "Filter by segment"
// @Param city query string false "Filter by city"
// @Param search query string false "Match against name, description or segment"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.CompanyListResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid filters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /companies/directory [get]
// @Router /companies [get]
func (c *CompanyController) Directory(ctx *gin.Context) {
	var req dto.CompanyFilterRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	companies, err := c.companyService.List(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list companies")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: companies,
	})
}

// GetByID handles fetching a single company
// @Summary Get company
// @Tags companies
// @Produce json
// @Param id path int true "Company ID"
// @Success 200 {object} dto.APIResponse{data=dto.CompanyResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /companies/{id} [get]
func (c *CompanyController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	company, err := c.companyService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: company,
	})
}

// Create handles an admin creating a company
// @Summary Create company
// @Tags companies
// @Accept json
// @Produce json
// @Param request body dto.CreateCompanyRequest true "Company information"
// @Success 201 {object} dto.APIResponse{data=dto.CompanyResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail} "Owner already has a company"
// @Security BearerAuth
// @Router /companies [post]
func (c *CompanyController) Create(ctx *gin.Context) {
	var req dto.CreateCompanyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	company, err := c.companyService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: company,
	})
}

// Update handles an admin updating a company
// @Summary Update company
// @Tags companies
// @Accept json
// @Produce json
// @Param id path int true "Company ID"
// @Param request body dto.UpdateCompanyRequest true "Company information"
// @Success 200 {object} dto.APIResponse{data=dto.CompanyResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Security BearerAuth
// @Router /companies/{id} [put]
func (c *CompanyController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	company, err := c.companyService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: company,
	})
}

// Delete handles an admin deleting a company
// @Summary Delete company
// @Description Removes a company. Stored images are cleaned up best effort.
// @Tags companies
// @Produce json
// @Param id path int true "Company ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Security BearerAuth
// @Router /companies/{id} [delete]
func (c *CompanyController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.companyService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Company deleted"},
	})
}

// UploadImage handles logo and gallery uploads
// @Summary Upload company image
// @Description Stores a logo or gallery image. A new logo replaces the old one; the gallery holds at most six images.
// @Tags companies
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Company ID"
// @Param kind formData string true "Image kind" Enums(logo, gallery)
// @Param file formData file true "Image file"
// @Success 200 {object} dto.APIResponse{data=dto.CompanyImageResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing file or unknown kind"
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail} "Gallery full"
// @Security BearerAuth
// @Router /companies/{id}/images [post]
func (c *CompanyController) UploadImage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	kind := ctx.PostForm("kind")
	file, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Image file is required").
			WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	image, err := c.companyService.UploadImage(ctx.Request.Context(), id, kind, file)
	if err != nil {
		c.logger.Warn().Err(err).Int64("companyID", id).Str("kind", kind).Msg("Image upload failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: image,
	})
}

// DeleteImage handles removing a logo or gallery image
// @Summary Delete company image
// @Tags companies
// @Produce json
// @Param id path int true "Company ID"
// @Param url query string true "Image URL to remove"
// @Success 200 {object} dto.APIResponse{data=dto.CompanyImageResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Security BearerAuth
// @Router /companies/{id}/images [delete]
func (c *CompanyController) DeleteImage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	imageURL := ctx.Query("url")
	if imageURL == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Image URL is required").
			WithField("url")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	image, err := c.companyService.DeleteImage(ctx.Request.Context(), id, imageURL)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: image,
	})
}
