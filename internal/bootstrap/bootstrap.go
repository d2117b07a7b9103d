package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/mentorlink/backend/internal/app/controllers"
	appMigrations "github.com/mentorlink/backend/internal/app/migrations"
	appRepos "github.com/mentorlink/backend/internal/app/repositories"
	appRoutes "github.com/mentorlink/backend/internal/app/routes"
	appServices "github.com/mentorlink/backend/internal/app/services"
	"github.com/mentorlink/backend/internal/config"
	"github.com/mentorlink/backend/internal/db"
	appMiddleware "github.com/mentorlink/backend/internal/middleware"
	pkgAuth "github.com/mentorlink/backend/internal/pkg/auth"
	"github.com/mentorlink/backend/internal/pkg/email"
	"github.com/mentorlink/backend/internal/pkg/filestorage"
	"github.com/mentorlink/backend/internal/pkg/helpers"
	"github.com/mentorlink/backend/internal/pkg/logger"
	"github.com/mentorlink/backend/internal/pkg/ratelimit"
	"github.com/mentorlink/backend/internal/pkg/websocket"
	"github.com/mentorlink/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	FileStorage    *filestorage.LocalStorage
	EmailService   email.Service
	Hub            *websocket.Hub
	MessageHandler *websocket.MessageHandler
	WSHandler      *websocket.Handler
	RateLimiter    *ratelimit.Limiter
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
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

// SetupDatabase establishes the database connection and runs migrations.
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
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// SetupRedis connects to redis when it is enabled; a nil client disables
// rate limiting.
func SetupRedis(cfg *config.Config, lgr zerolog.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		lgr.Info().Msg("Redis disabled, rate limiting is off")
		return nil
	}

	client, err := db.NewRedisClient(cfg)
	if err != nil {
		lgr.Warn().Err(err).Msg("Failed to connect to redis, rate limiting is off")
		return nil
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")
	return client
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, rdb *redis.Client, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	fileStorageBaseURL := strings.TrimRight(cfg.Server.BaseURL, "/") + "/uploads"
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

	deps.EmailService = email.NewService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, lgr)

	if rdb != nil && cfg.RateLimit.Enabled {
		deps.RateLimiter = ratelimit.NewLimiter(rdb, cfg.RateLimit.RequestsPerWindow,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second)
	} else {
		deps.RateLimiter = ratelimit.NewLimiter(nil, 0, 0)
	}

	// Websocket hub and the handler persisting socket-originated messages
	deps.Hub = websocket.NewHub(lgr)
	go deps.Hub.Run()

	deps.MessageHandler = websocket.NewMessageHandler(deps.Repos.ConversationRepository, deps.Hub, lgr)
	deps.MessageHandler.Start()

	deps.WSHandler = websocket.NewHandler(deps.Hub, roomAuthorizer(deps.Repos, lgr), lgr)

	// Services
	authService := appServices.NewAuthService(
		dbPool,
		deps.Repos.UserRepository,
		deps.Repos.StudentRepository,
		deps.Repos.MentorRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)
	studentService := appServices.NewStudentService(deps.Repos.StudentRepository, deps.Repos.UserRepository, lgr)
	mentorService := appServices.NewMentorService(deps.Repos.MentorRepository, deps.Repos.UserRepository, lgr)
	sessionService := appServices.NewSessionService(
		deps.Repos.SessionRepository,
		deps.Repos.MentorRepository,
		deps.Repos.StudentRepository,
		deps.Repos.UserRepository,
		appServices.PoolTxRunner(dbPool),
		deps.EmailService,
		cfg.Server.BaseURL,
		lgr,
	)
	quizService := appServices.NewQuizService(deps.Repos.StudentRepository, lgr)
	resourceService := appServices.NewResourceService(deps.Repos.ResourceRepository, lgr)
	chatService := appServices.NewChatService(deps.Repos.ConversationRepository, deps.Repos.UserRepository, deps.Hub, lgr)
	fileService := appServices.NewFileService(deps.Repos.FileRepository, deps.FileStorage, lgr)
	adminService := appServices.NewAdminService(deps.Repos.MentorRepository, deps.Repos.UserRepository, deps.EmailService, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(
		deps.JWTService,
		deps.Repos.StudentRepository,
		deps.Repos.MentorRepository,
	)

	deps.Controllers = appRoutes.Controllers{
		Auth:     appControllers.NewAuthController(authService, lgr),
		Student:  appControllers.NewStudentController(studentService, lgr),
		Mentor:   appControllers.NewMentorController(mentorService, lgr),
		Session:  appControllers.NewSessionController(sessionService, lgr),
		Quiz:     appControllers.NewQuizController(quizService, lgr),
		Resource: appControllers.NewResourceController(resourceService, lgr),
		Chat:     appControllers.NewChatController(chatService, lgr),
		File:     appControllers.NewFileController(fileService, lgr),
		Admin:    appControllers.NewAdminController(adminService, lgr),
		Health:   appControllers.NewHealthController(cfg),
	}

	return deps, nil
}

// roomAuthorizer gates joining websocket rooms. A user may always join their
// own user room; a session room is open only to the session's participants.
func roomAuthorizer(repos *appRepos.Repositories, lgr zerolog.Logger) websocket.RoomAuthorizer {
	return func(userID int64, room string) bool {
		if room == websocket.UserRoom(userID) {
			return true
		}

		sessionID, ok := parseSessionRoom(room)
		if !ok {
			return false
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		session, err := repos.SessionRepository.GetByID(ctx, sessionID)
		if err != nil {
			lgr.Warn().Err(err).Str("room", room).Msg("Room authorization lookup failed")
			return false
		}

		if student, err := repos.StudentRepository.GetByUserID(ctx, userID); err == nil && student.ID == session.StudentID {
			return true
		}
		if mentor, err := repos.MentorRepository.GetByUserID(ctx, userID); err == nil && mentor.ID == session.MentorID {
			return true
		}
		return false
	}
}

func parseSessionRoom(room string) (int64, bool) {
	const prefix = "session-"
	if !strings.HasPrefix(room, prefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(room, prefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
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
	appMiddleware.SetDebugMode(!cfg.IsProduction())

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.RateLimiter, deps.WSHandler)

	return router
}
