package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/pastoral/providencia/internal/app/controllers"
	"github.com/pastoral/providencia/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	personController *controllers.PersonController,
	eventController *controllers.EventController,
	checkinController *controllers.CheckinController,
	companyController *controllers.CompanyController,
	profileController *controllers.ProfileController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
		auth.POST("/signup", authController.Signup)
	}

	// --- Public routes ---
	// Self-registration from the public signup form
	v1.POST("/registrations", personController.Register)

	// Kiosk check-in by phone number
	v1.POST("/checkins", checkinController.CheckIn)

	// Public site listings
	v1.GET("/events/upcoming", eventController.ListUpcoming)
	v1.GET("/companies/directory", companyController.Directory)
	v1.GET("/companies/:id", companyController.GetByID)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		profile := authenticated.Group("/profile")
		{
			profile.GET("", profileController.GetProfile)
			profile.PUT("", profileController.UpdateProfile)
			profile.GET("/company", profileController.GetCompany)
			profile.PUT("/company", profileController.UpdateCompany)
			profile.POST("/company/images", profileController.UploadCompanyImage)
		}

		// --- Administrator routes ---
		admin := authenticated.Group("")
		admin.Use(authMiddleware.AdminRequired())
		{
			people := admin.Group("/people")
			{
				people.GET("", personController.List)
				people.GET("/without-company", personController.ListWithoutCompany)
				people.GET("/:id", personController.GetByID)
				people.POST("", personController.Create)
				people.PUT("/:id", personController.Update)
				people.DELETE("/:id", personController.Delete)
			}

			events := admin.Group("/events")
			{
				events.GET("", eventController.ListAll)
				events.GET("/:id", eventController.GetByID)
				events.GET("/:id/checkins", eventController.ListCheckins)
				events.POST("", eventController.Create)
				events.PUT("/:id", eventController.Update)
				events.DELETE("/:id", eventController.Delete)
			}

			companies := admin.Group("/companies")
			{
				companies.GET("", companyController.Directory)
				companies.POST("", companyController.Create)
				companies.PUT("/:id", companyController.Update)
				companies.DELETE("/:id", companyController.Delete)
				companies.POST("/:id/images", companyController.UploadImage)
				companies.DELETE("/:id/images", companyController.DeleteImage)
			}
		}
	}
}
