package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/pastoral/providencia/internal/app/controllers"
	appMigrations "github.com/pastoral/providencia/internal/app/migrations"
	appRepos "github.com/pastoral/providencia/internal/app/repositories"
	appRoutes "github.com/pastoral/providencia/internal/app/routes"
	appServices "github.com/pastoral/providencia/internal/app/services"
	"github.com/pastoral/providencia/internal/config"
	"github.com/pastoral/providencia/internal/db"
	appMiddleware "github.com/pastoral/providencia/internal/middleware"
	pkgAuth "github.com/pastoral/providencia/internal/pkg/auth"
	"github.com/pastoral/providencia/internal/pkg/filestorage"
	"github.com/pastoral/providencia/internal/pkg/helpers"
	"github.com/pastoral/providencia/internal/pkg/logger"
	"github.com/pastoral/providencia/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       *appServices.AuthService
	PersonService     *appServices.PersonService
	EventService      *appServices.EventService
	CheckinService    *appServices.CheckinService
	CompanyService    *appServices.CompanyService
	ProfileService    *appServices.ProfileService
	AuthController    *appControllers.AuthController
	PersonController  *appControllers.PersonController
	EventController   *appControllers.EventController
	CheckinController *appControllers.CheckinController
	CompanyController *appControllers.CompanyController
	ProfileController *appControllers.ProfileController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	Logger            zerolog.Logger
	FileStorage       *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// Housekeeping: expired refresh tokens accumulate between restarts
	if removed, err := deps.Repos.TokenRepository.DeleteExpired(context.Background()); err != nil {
		lgr.Warn().Err(err).Msg("Failed to prune expired refresh tokens")
	} else if removed > 0 {
		lgr.Info().Int64("removed", removed).Msg("Pruned expired refresh tokens")
	}

	// File storage serves company images through the /uploads static route
	fileStorageBaseURL := cfg.PublicBaseURL() + "/uploads"
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.PersonRepository,
		deps.JWTService,
		lgr,
	)
	deps.PersonService = appServices.NewPersonService(deps.Repos.PersonRepository, deps.Repos.TokenRepository, lgr)
	deps.EventService = appServices.NewEventService(deps.Repos.EventRepository, deps.Repos.CheckinRepository, lgr)
	deps.CheckinService = appServices.NewCheckinService(
		deps.Repos.PersonRepository,
		deps.Repos.CheckinRepository,
		deps.Repos.EventRepository,
		lgr,
	)
	deps.CompanyService = appServices.NewCompanyService(
		deps.Repos.CompanyRepository,
		deps.Repos.PersonRepository,
		deps.FileStorage,
		lgr,
	)
	deps.ProfileService = appServices.NewProfileService(
		deps.Repos.PersonRepository,
		deps.Repos.CompanyRepository,
		deps.CompanyService,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.PersonRepository)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.PersonController = appControllers.NewPersonController(deps.PersonService, lgr)
	deps.EventController = appControllers.NewEventController(deps.EventService, lgr)
	deps.CheckinController = appControllers.NewCheckinController(deps.CheckinService, lgr)
	deps.CompanyController = appControllers.NewCompanyController(deps.CompanyService, lgr)
	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.PersonController,
		deps.EventController,
		deps.CheckinController,
		deps.CompanyController,
		deps.ProfileController,
		deps.AuthMiddleware,
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
