package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pastoral/providencia/internal/app/models/dto"
	"github.com/pastoral/providencia/internal/app/services"
	"github.com/pastoral/providencia/internal/middleware"
	"github.com/pastoral/providencia/internal/pkg/apperrors"
	"github.com/pastoral/providencia/internal/pkg/phone"
)

// CheckinController handles kiosk attendance
type CheckinController struct {
	checkinService *services.CheckinService
	logger         zerolog.Logger
}

// NewCheckinController creates a new CheckinController
func NewCheckinController(checkinService *services.CheckinService, logger zerolog.Logger) *CheckinController {
	return &CheckinController{
		checkinService: checkinService,
		logger:         logger,
	}
}

// CheckIn records attendance by phone number
// @Summary Kiosk check-in
// @Description Records attendance for the person matching the phone number. An unknown phone returns 404 with the registration path so the kiosk can redirect.
// @Tags checkins
// @Accept json
// @Produce json
// @Param request body dto.CheckinRequest true "Phone number and optional event"
// @Success 201 {object} dto.APIResponse{data=dto.CheckinResponse} "Check-in recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid phone number"
// @Failure 404 {object} dto.APIResponse{data=dto.CheckinNotFoundResponse} "Phone not registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /checkins [post]
func (c *CheckinController) CheckIn(ctx *gin.Context) {
	var req dto.CheckinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	checkin, err := c.checkinService.CheckIn(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPhoneNotRegistered) {
			digits := phone.Normalize(req.Phone)
			ctx.JSON(http.StatusNotFound, dto.APIResponse{
				Data: dto.CheckinNotFoundResponse{
					Phone:            digits,
					RegistrationPath: "/cadastro?telefone=" + digits,
				},
			})
			return
		}
		c.logger.Error().Err(err).Msg("Check-in failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: checkin,
	})
}
