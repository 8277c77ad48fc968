package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pastoral/providencia/internal/app/models/dto"
	"github.com/pastoral/providencia/internal/app/services"
	"github.com/pastoral/providencia/internal/middleware"
)

// PersonController handles people management
type PersonController struct {
	personService *services.PersonService
	logger        zerolog.Logger
}

// NewPersonController creates a new PersonController
func NewPersonController(personService *services.PersonService, logger zerolog.Logger) *PersonController {
	return &PersonController{
		personService: personService,
		logger:        logger,
	}
}

func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID parameter").
			WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// Register handles public self-registration
// @Summary Self-registration
// @Description Registers a participant from the public signup form. A phone already on file returns the existing record.
// @Tags people
// @Accept json
// @Produce json
// @Param request body dto.RegistrationRequest true "Registration information"
// @Success 201 {object} dto.APIResponse{data=dto.PersonResponse} "Registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or phone number"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /registrations [post]
func (c *PersonController) Register(ctx *gin.Context) {
	var req dto.RegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	person, err := c.personService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: person,
	})
}

// List handles the admin people listing
// @Summary List people
// @Description Lists people with search, role and attendance filters
// @Tags people
// @Produce json
// @Param search query string false "Match against name, phone or email"
// @Param role query string false "Filter by role" Enums(participant, administrator)
// @Param attendance query string false "Filter by attendance" Enums(attended, never)
// @Param eventId query []int false "Attendees of any of these events" collectionFormat(multi)
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PersonListResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid filters"
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Security BearerAuth
// @Router /people [get]
func (c *PersonController) List(ctx *gin.Context) {
	var req dto.PersonFilterRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	people, err := c.personService.List(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list people")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: people,
	})
}

// ListWithoutCompany handles the company owner picker listing
// @Summary List people without a company
// @Description Lists people not yet linked to any company
// @Tags people
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.PersonResponse}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Security BearerAuth
// @Router /people/without-company [get]
func (c *PersonController) ListWithoutCompany(ctx *gin.Context) {
	people, err := c.personService.ListWithoutCompany(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: people,
	})
}

// GetByID handles fetching a single person
// @Summary Get person
// @Tags people
// @Produce json
// @Param id path int true "Person ID"
// @Success 200 {object} dto.APIResponse{data=dto.PersonResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Security BearerAuth
// @Router /people/{id} [get]
func (c *PersonController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	person, err := c.personService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: person,
	})
}

// Create handles an admin creating a person
// @Summary Create person
// @Tags people
// @Accept json
// @Produce json
// @Param request body dto.CreatePersonRequest true "Person information"
// @Success 201 {object} dto.APIResponse{data=dto.PersonResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or phone number"
// @Security BearerAuth
// @Router /people [post]
func (c *PersonController) Create(ctx *gin.Context) {
	var req dto.CreatePersonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	person, err := c.personService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: person,
	})
}

// Update handles an admin updating a person
// @Summary Update person
// @Tags people
// @Accept json
// @Produce json
// @Param id path int true "Person ID"
// @Param request body dto.UpdatePersonRequest true "Person information"
// @Success 200 {object} dto.APIResponse{data=dto.PersonResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Security BearerAuth
// @Router /people/{id} [put]
func (c *PersonController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePersonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	person, err := c.personService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: person,
	})
}

// Delete handles an admin deleting a person
// @Summary Delete person
// @Description Removes a person and their attendance history
// @Tags people
// @Produce json
// @Param id path int true "Person ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Security BearerAuth
// @Router /people/{id} [delete]
func (c *PersonController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.personService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("personID", id).Msg("Person deleted")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Person deleted"},
	})
}
