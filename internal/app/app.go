package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dvitale199/blossom/internal/config"
	"github.com/dvitale199/blossom/internal/controller"
	"github.com/dvitale199/blossom/internal/repository"
	"github.com/dvitale199/blossom/internal/service"
	"github.com/dvitale199/blossom/pkg/database"
	"github.com/dvitale199/blossom/pkg/logger"
	"github.com/dvitale199/blossom/pkg/monitoring"
	"github.com/dvitale199/blossom/pkg/security"
	"github.com/dvitale199/blossom/pkg/tracing"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	ai             *service.AIService
	tracerProvider *sdktrace.TracerProvider
}

type repositories struct {
	user         *repository.UserRepository
	space        *repository.SpaceRepository
	conversation *repository.ConversationRepository
	message      *repository.MessageRepository
}

type services struct {
	auth         *service.AuthService
	space        *service.SpaceService
	conversation *service.ConversationService
	message      *service.MessageService
	tutor        *service.TutorService
}

type controllers struct {
	auth         *controller.AuthController
	space        *controller.SpaceController
	conversation *controller.ConversationController
	message      *controller.MessageController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		space:        repository.NewSpaceRepository(db),
		conversation: repository.NewConversationRepository(db),
		message:      repository.NewMessageRepository(db, rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.space = service.NewSpaceService(repos.space)
	s.conversation = service.NewConversationService(repos.conversation)
	s.message = service.NewMessageService(repos.message, repos.conversation)

	a.ai = service.NewAIService(cfg.Anthropic)
	s.tutor = service.NewTutorService(a.ai)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		space:        controller.NewSpaceController(s.space),
		conversation: controller.NewConversationController(s.conversation, s.space),
		message:      controller.NewMessageController(s.message, s.conversation, s.space, s.tutor),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests == 0 {
		maxRequests = 1000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes == 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.ForceMigrate || cfg.Server.Mode != "release" {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The message window cache is an optimization; run without it.
		logger.Log.Warn("Redis unavailable, running without message cache", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("blossom-api", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, cfg)

	return app
}

// ApplyConfig applies a reloaded configuration to the running app.
// Only the Anthropic model settings take effect without a restart.
func (a *App) ApplyConfig(cfg *config.Config) {
	if a.ai == nil {
		return
	}
	a.ai.UpdateConfig(cfg.Anthropic)
	logger.Log.Info("Applied reloaded Anthropic config",
		zap.String("model", cfg.Anthropic.Model),
		zap.Int64("max_tokens", cfg.Anthropic.MaxTokens))
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
