package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/acemedformatics/acemed/internal/app/auth"
	appControllers "github.com/acemedformatics/acemed/internal/app/controllers"
	appMigrations "github.com/acemedformatics/acemed/internal/app/migrations"
	"github.com/acemedformatics/acemed/internal/app/models"
	appRepos "github.com/acemedformatics/acemed/internal/app/repositories"
	appRoutes "github.com/acemedformatics/acemed/internal/app/routes"
	appServices "github.com/acemedformatics/acemed/internal/app/services"
	"github.com/acemedformatics/acemed/internal/config"
	"github.com/acemedformatics/acemed/internal/db"
	appMiddleware "github.com/acemedformatics/acemed/internal/middleware"
	pkgAuth "github.com/acemedformatics/acemed/internal/pkg/auth"
	"github.com/acemedformatics/acemed/internal/pkg/cache"
	"github.com/acemedformatics/acemed/internal/pkg/email"
	"github.com/acemedformatics/acemed/internal/pkg/filestorage"
	"github.com/acemedformatics/acemed/internal/pkg/helpers"
	"github.com/acemedformatics/acemed/internal/pkg/identity"
	"github.com/acemedformatics/acemed/internal/pkg/imagehost"
	"github.com/acemedformatics/acemed/internal/pkg/logger"
	"github.com/acemedformatics/acemed/internal/pkg/telemetry"
	"github.com/acemedformatics/acemed/internal/seed"
)

// UploadsRoute is where locally stored program materials are served from
const UploadsRoute = "/uploads"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos        *appRepos.Repositories
	Redis        *redis.Client
	Cache        cache.Cache
	JWTService   *pkgAuth.JWTService
	AuthzService *appAuth.AuthorizationService
	FileStorage  *filestorage.LocalStorage
	Controllers  appRoutes.Controllers
	Logger       zerolog.Logger
}

// LoadConfigAndSetupLogger loads .env, configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		logger.Error().Err(err).Msg("Failed to load .env file")
		return nil, zerolog.Logger{}, err
	}

	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:   logLevel,
		Pretty:  prettyLog,
		Service: cfg.Telemetry.ServiceName,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds defaults.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	database, err := db.NewPostgresDB(connectCtx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if cfg.Database.RunMigrations {
		lgr.Info().Msg("Running database migrations...")
		if err := appMigrations.NewMigrator(database.Pool).Up(ctx); err != nil {
			lgr.Error().Err(err).Msg("Database migration error")
			database.Close()
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")
	}

	if err := seed.CreateDefaultData(ctx,
		appRepos.NewAdminRepository(database.Pool),
		appRepos.NewSettingsRepository(database.Pool),
		cfg.Site.AdminEmails,
		lgr,
	); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// SetupRedis connects to redis when it is enabled. A nil client means the
// public cache is off and revoked tokens are tracked in memory.
func SetupRedis(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		lgr.Info().Msg("Redis disabled; public reads are not cached")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Redis.Addr, err)
	}
	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")
	return rdb, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, rdb *redis.Client, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Redis: rdb}
	deps.Repos = appRepos.NewRepositories(database)
	stores := appServices.NewStores(deps.Repos)

	var revoked pkgAuth.RevocationStore
	if rdb != nil {
		deps.Cache = cache.NewRedisCache(rdb, helpers.ParseDuration(cfg.Redis.CacheTTL, 5*time.Minute))
		revoked = pkgAuth.NewRedisRevocationStore(rdb)
	} else {
		deps.Cache = cache.Nop{}
		revoked = pkgAuth.NewMemoryRevocationStore()
	}

	baseURL := strings.TrimRight(cfg.Server.BaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+UploadsRoute)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	httpClient := telemetry.HTTPClient(&http.Client{Timeout: 30 * time.Second})
	provider := identity.NewClient(cfg.BaaS.URL, cfg.BaaS.AnonKey, httpClient)

	// Leave the interface nil when disabled so image uploads report not configured.
	var images imagehost.Uploader
	if cfg.ImageHost.Enabled {
		images = imagehost.NewClient(imagehost.Config{
			CloudName:    cfg.ImageHost.CloudName,
			UploadPreset: cfg.ImageHost.UploadPreset,
			Folder:       cfg.ImageHost.Folder,
			APIKey:       cfg.ImageHost.APIKey,
			APISecret:    cfg.ImageHost.APISecret,
		}, httpClient)
	}

	notifier := email.NewSMTPNotifier(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		SiteName:  models.DefaultSettings().SiteName,
	}, lgr.With().Str("component", "email").Logger())

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 8*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.AuthzService = appAuth.NewAuthorizationService(deps.JWTService, revoked, deps.Repos.AdminLookup)

	maxUpload := int64(cfg.Server.MaxUploadMB) << 20

	contentService := appServices.NewContentService(stores, deps.Cache, cfg.Site.BaseURL)
	submissionService := appServices.NewSubmissionService(stores, contentService, notifier, cfg.SMTP.NotifyTo, lgr)
	authService := appServices.NewAuthService(provider, deps.AuthzService, deps.JWTService, revoked, lgr)
	mentorshipService := appServices.NewMentorshipService(stores.MentorshipApplications, deps.Repos.Mentorship, deps.Cache, lgr)
	materialService := appServices.NewMaterialService(stores.Programs, stores.ProgramMaterials, deps.FileStorage, deps.Cache, maxUpload, lgr)
	settingsService := appServices.NewSettingsService(stores.Settings, deps.Cache)
	dashboardService := appServices.NewDashboardService(stores)

	team := appServices.NewResourceService(appServices.TeamMemberDefinition(), stores.TeamMembers, deps.Cache, images, maxUpload, lgr)
	mentees := appServices.NewResourceService(appServices.MenteeDefinition(), stores.Mentees, deps.Cache, images, maxUpload, lgr)

	deps.Controllers = appRoutes.Controllers{
		Public:     appControllers.NewPublicController(contentService),
		Submission: appControllers.NewSubmissionController(submissionService),
		Auth:       appControllers.NewAuthController(authService, lgr),
		Admin: appControllers.NewAdminController(
			dashboardService,
			settingsService,
			mentorshipService,
			materialService,
			team,
			mentees,
		),
		Resources: []appRoutes.Registrar{
			resource(appServices.ProgramDefinition(), stores.Programs, deps.Cache, images, maxUpload, lgr),
			resource(appServices.ProgramCategoryDefinition(), stores.ProgramCategories, deps.Cache, images, maxUpload, lgr),
			resource(appServices.ProgramMaterialDefinition(), stores.ProgramMaterials, deps.Cache, images, maxUpload, lgr),
			resource(appServices.ProgramReviewDefinition(), stores.ProgramReviews, deps.Cache, images, maxUpload, lgr),
			resource(appServices.MentorDefinition(), stores.Mentors, deps.Cache, images, maxUpload, lgr),
			appControllers.NewResourceController[models.Mentee](mentees),
			appControllers.NewResourceController[models.TeamMember](team),
			resource(appServices.TestimonialDefinition(), stores.Testimonials, deps.Cache, images, maxUpload, lgr),
			resource(appServices.ResearchDefinition(), stores.Research, deps.Cache, images, maxUpload, lgr),
			resource(appServices.MediaDefinition(), stores.Media, deps.Cache, images, maxUpload, lgr),
			resource(appServices.CollaborationDefinition(), stores.Collaborations, deps.Cache, images, maxUpload, lgr),
			resource(appServices.ContactMessageDefinition(), stores.ContactMessages, deps.Cache, images, maxUpload, lgr),
			resource(appServices.AboutSectionDefinition(), stores.AboutSections, deps.Cache, images, maxUpload, lgr),
			resource(appServices.AboutGalleryDefinition(), stores.AboutGallery, deps.Cache, images, maxUpload, lgr),
			resource(appServices.AdminDefinition(), stores.Admins, deps.Cache, images, maxUpload, lgr),
		},
	}

	return deps, nil
}

func resource[T any](def appServices.Definition[T], store appServices.Store[T], c cache.Cache, images imagehost.Uploader, maxUpload int64, lgr zerolog.Logger) appRoutes.Registrar {
	return appControllers.NewResourceController[T](appServices.NewResourceService(def, store, c, images, maxUpload, lgr))
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}
	appMiddleware.UseJSONFieldNames()

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery(), appMiddleware.CORS(cfg.Server.AllowedOrigins))
	router.MaxMultipartMemory = int64(cfg.Server.MaxUploadMB) << 20

	router.Static(UploadsRoute, deps.FileStorage.BasePath())
	lgr.Info().Str("path", deps.FileStorage.BasePath()).Msg("Static file serving configured for uploads directory")

	appRoutes.SetupRouter(router, deps.Controllers, appMiddleware.AdminGate(deps.AuthzService))

	return router
}
