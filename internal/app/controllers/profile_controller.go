package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pastoral/providencia/internal/app/models/dto"
	"github.com/pastoral/providencia/internal/app/services"
	"github.com/pastoral/providencia/internal/middleware"
)

// ProfileController handles the authenticated participant's own data
type ProfileController struct {
	profileService *services.ProfileService
	logger         zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService *services.ProfileService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		logger:         logger,
	}
}

// callerIdentity pulls the authenticated identity out of the context.
// JWTAuth guarantees both keys are present on these routes.
func callerIdentity(ctx *gin.Context) (int64, string, bool) {
	userID, exists := ctx.Get(middleware.ContextUserID)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return 0, "", false
	}
	userIDInt, ok := userID.(int64)
	if !ok {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Invalid user ID format")))
		return 0, "", false
	}

	email, _ := ctx.Get(middleware.ContextEmail)
	emailStr, _ := email.(string)

	return userIDInt, emailStr, true
}

// GetProfile handles fetching the caller's person record
// @Summary Get own profile
// @Tags profile
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.PersonResponse}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Security BearerAuth
// @Router /profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	userID, email, ok := callerIdentity(ctx)
	if !ok {
		return
	}

	profile, err := c.profileService.GetProfile(ctx.Request.Context(), userID, email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: profile,
	})
}

// UpdateProfile handles the caller editing their own record
// @Summary Update own profile
// @Tags profile
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile information"
// @Success 200 {object} dto.APIResponse{data=dto.PersonResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or phone number"
// @Security BearerAuth
// @Router /profile [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	userID, email, ok := callerIdentity(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	profile, err := c.profileService.UpdateProfile(ctx.Request.Context(), userID, email, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: profile,
	})
}

// GetCompany handles fetching the caller's linked company
// @Summary Get own company
// @Tags profile
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CompanyResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail} "No linked company"
// @Security BearerAuth
// @Router /profile/company [get]
func (c *ProfileController) GetCompany(ctx *gin.Context) {
	userID, email, ok := callerIdentity(ctx)
	if !ok {
		return
	}

	company, err := c.profileService.GetCompany(ctx.Request.Context(), userID, email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: company,
	})
}

// UpdateCompany handles the caller editing their linked company
// @Summary Update own company
// @Tags profile
// @Accept json
// @Produce json
// @Param request body dto.UpdateCompanyRequest true "Company information"
// @Success 200 {object} dto.APIResponse{data=dto.CompanyResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail} "No linked company"
// @Security BearerAuth
// @Router /profile/company [put]
func (c *ProfileController) UpdateCompany(ctx *gin.Context) {
	userID, email, ok := callerIdentity(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	company, err := c.profileService.UpdateCompany(ctx.Request.Context(), userID, email, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: company,
	})
}

// UploadCompanyImage handles image uploads on the caller's company
// @Summary Upload own company image
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Param kind formData string true "Image kind" Enums(logo, gallery)
// @Param file formData file true "Image file"
// @Success 200 {object} dto.APIResponse{data=dto.CompanyImageResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing file or unknown kind"
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail} "No linked company"
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail} "Gallery full"
// @Security BearerAuth
// @Router /profile/company/images [post]
func (c *ProfileController) UploadCompanyImage(ctx *gin.Context) {
	userID, email, ok := callerIdentity(ctx)
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

	image, err := c.profileService.UploadCompanyImage(ctx.Request.Context(), userID, email, kind, file)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Str("kind", kind).Msg("Profile image upload failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: image,
	})
}
