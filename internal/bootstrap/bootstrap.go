package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/mrc-edu/matricula-backend/internal/app/controllers"
	appMigrations "github.com/mrc-edu/matricula-backend/internal/app/migrations"
	appRepos "github.com/mrc-edu/matricula-backend/internal/app/repositories"
	appRoutes "github.com/mrc-edu/matricula-backend/internal/app/routes"
	appServices "github.com/mrc-edu/matricula-backend/internal/app/services"
	"github.com/mrc-edu/matricula-backend/internal/config"
	"github.com/mrc-edu/matricula-backend/internal/db"
	appMiddleware "github.com/mrc-edu/matricula-backend/internal/middleware"
	pkgAuth "github.com/mrc-edu/matricula-backend/internal/pkg/auth"
	"github.com/mrc-edu/matricula-backend/internal/pkg/filestorage"
	"github.com/mrc-edu/matricula-backend/internal/pkg/helpers"
	"github.com/mrc-edu/matricula-backend/internal/pkg/logger"
	"github.com/mrc-edu/matricula-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	FileStorage       *filestorage.LocalStorage
	AuthService       *appServices.AuthService
	StudentService    *appServices.StudentService
	AcademicService   *appServices.AcademicService
	EnrollmentService *appServices.EnrollmentService
	DocumentService   *appServices.DocumentService
	Controllers       *appRoutes.Controllers
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Logger            zerolog.Logger
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
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
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
	lgr.Info().Msg("Database connection successfully established")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Partial seed data is tolerated at startup.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services, controllers and middleware.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	dbPool := database.Pool
	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 8*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, lgr)
	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentRepository,
		deps.Repos.GuardianRepository,
		deps.Repos.EnrollmentRepository,
	)
	deps.AcademicService = appServices.NewAcademicService(
		deps.Repos.AcademicYearRepository,
		deps.Repos.GradeRepository,
		deps.Repos.SectionRepository,
	)
	deps.EnrollmentService = appServices.NewEnrollmentService(
		database,
		deps.Repos.EnrollmentRepository,
		deps.Repos.DocumentRepository,
		deps.Repos.StudentRepository,
		deps.Repos.AcademicYearRepository,
		deps.Repos.SectionRepository,
		deps.FileStorage,
		lgr,
	)
	deps.DocumentService = appServices.NewDocumentService(
		deps.Repos.DocumentRepository,
		deps.Repos.EnrollmentRepository,
		deps.FileStorage,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = &appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(deps.AuthService),
		Student:    appControllers.NewStudentController(deps.StudentService),
		Academic:   appControllers.NewAcademicController(deps.AcademicService),
		Enrollment: appControllers.NewEnrollmentController(deps.EnrollmentService),
		Document:   appControllers.NewDocumentController(deps.DocumentService),
	}

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
	appRoutes.SetupRoutes(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
