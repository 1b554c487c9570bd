package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/studyplan/internal/app/controllers"
	appMigrations "github.com/yigit/studyplan/internal/app/migrations"
	appRepos "github.com/yigit/studyplan/internal/app/repositories"
	appRoutes "github.com/yigit/studyplan/internal/app/routes"
	appServices "github.com/yigit/studyplan/internal/app/services"
	"github.com/yigit/studyplan/internal/app/views"
	"github.com/yigit/studyplan/internal/app/views/courselist"
	"github.com/yigit/studyplan/internal/config"
	"github.com/yigit/studyplan/internal/db"
	appMiddleware "github.com/yigit/studyplan/internal/middleware"
	pkgAuth "github.com/yigit/studyplan/internal/pkg/auth"
	"github.com/yigit/studyplan/internal/pkg/logger"
	"github.com/yigit/studyplan/internal/pkg/notify"
	"github.com/yigit/studyplan/internal/pkg/session"
	"github.com/yigit/studyplan/internal/pkg/validation"
	"github.com/yigit/studyplan/internal/pkg/websocket"
	"github.com/yigit/studyplan/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	JWTService     *pkgAuth.JWTService
	Hub            *websocket.Hub
	AuthMiddleware *appMiddleware.AuthMiddleware
	Handlers       appRoutes.Handlers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	if len(cfg.EnvOverrides) > 0 {
		lgr.Debug().Strs("vars", cfg.EnvOverrides).Msg("Configuration overridden from environment")
	}
	return cfg, lgr, nil
}

// ConnectDatabase opens the pool without touching the schema.
func ConnectDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database.Pool, nil
}

// Migrate applies pending migrations from the configured directory.
func Migrate(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr.With().Str("component", "migrator").Logger())
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// SetupDatabase connects, migrates and seeds when enabled.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	ctx := context.Background()

	dbPool, err := ConnectDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}

	if err := Migrate(ctx, cfg, dbPool, lgr); err != nil {
		dbPool.Close()
		return nil, err
	}

	if cfg.Seed.Enabled {
		admin := seed.Admin{Email: cfg.Seed.AdminEmail, Password: cfg.Seed.AdminPassword}
		if err := seed.CreateDefaultData(ctx, dbPool, admin, lgr); err != nil {
			// Startup continues without sample data.
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  cfg.AccessTokenTTL(),
		RefreshTokenExp: cfg.RefreshTokenTTL(),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Hub = websocket.NewHub(logger.Component("ws-hub"))
	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, deps.Hub, lgr)

	cookies := session.Cookies{Name: cfg.Session.CookieName, Secure: cfg.Session.SecureCookie}
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, cookies, deps.Services.Auth, logger.Component("auth"))

	list := courselist.NewList(deps.Services.Course, deps.Services.Catalog, deps.Services.Programme, logger.Component("courselist"))

	deps.Handlers = appRoutes.Handlers{
		Auth:      appControllers.NewAuthController(deps.Services.Auth, logger.Component("auth-controller")),
		Programme: appControllers.NewProgrammeController(deps.Services.Programme),
		Course:    appControllers.NewCourseController(list, deps.Services.Course, deps.Services.Programme, deps.Services.Plan, logger.Component("course-controller")),
		Catalog:   appControllers.NewCatalogController(deps.Services.Catalog),
		Plan:      appControllers.NewPlanController(deps.Services.Plan),
		Pages: appControllers.NewPageController(
			deps.Services.Auth,
			deps.Services.Programme,
			deps.Services.Plan,
			list,
			cookies,
			notify.NewFlashes(cfg.FlashKey(), cfg.Session.SecureCookie),
			logger.Component("pages"),
		),
		Changes: websocket.NewHandler(deps.Hub, deps.Repos.ProgrammeRepository, cfg.Server.PublicBaseURL, logger.Component("ws")),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := validation.RegisterBindings(); err != nil {
		return nil, fmt.Errorf("failed to register validation rules: %w", err)
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(logger.Component("http")), appMiddleware.Recovery(lgr))

	tmpl, err := views.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	appRoutes.SetupRouter(router, deps.Handlers, deps.AuthMiddleware,
		appMiddleware.CSRF(cfg.CSRFKey(), cfg.Session.SecureCookie))
	appRoutes.SetupSwagger(router)

	return router, nil
}
