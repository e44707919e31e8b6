package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hanja_edu_backend/internal/config"
	"hanja_edu_backend/internal/controller"
	"hanja_edu_backend/internal/repository"
	"hanja_edu_backend/internal/service"
	"hanja_edu_backend/pkg/configwatcher"
	"hanja_edu_backend/pkg/database"
	"hanja_edu_backend/pkg/logger"
	"hanja_edu_backend/pkg/monitoring"
	"hanja_edu_backend/pkg/security"
	"hanja_edu_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type App struct {
	Config    *config.Config
	Router    *gin.Engine
	Redis     *redis.Client
	services  *services
	scheduler *gocron.Scheduler
}

type repositories struct {
	learning *repository.LearningRepository
	content  *repository.ContentRepository
}

type services struct {
	progress *service.ProgressService
	review   *service.ReviewService
	content  *service.ContentService
	session  *service.SessionService
	report   *service.ReportService
	storage  *service.StorageService
	snapshot *service.SnapshotService
}

type controllers struct {
	learning *controller.LearningController
	content  *controller.ContentController
	admin    *controller.AdminController
	health   *controller.HealthController
}

func (a *App) initRepositories(cfg *config.Config) (*repositories, error) {
	contentRepo, err := repository.NewContentRepository(cfg.Data)
	if err != nil {
		return nil, err
	}
	return &repositories{
		learning: repository.NewLearningRepository(cfg.Data.LearningDir),
		content:  contentRepo,
	}, nil
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.progress = service.NewProgressService(repos.learning, cfg.Learning)
	s.review = service.NewReviewService(repos.learning, repos.content)
	s.content = service.NewContentService(repos.content, rdb)
	s.session = service.NewSessionService(repos.learning)
	s.report = service.NewReportService(s.progress, repos.learning)
	s.snapshot = service.NewSnapshotService(repos.learning, storage)

	return s, nil
}

func (a *App) initControllers(s *services, repos *repositories, cfg *config.Config) *controllers {
	return &controllers{
		learning: controller.NewLearningController(s.progress, s.review, s.session, s.report),
		content:  controller.NewContentController(s.content),
		admin:    controller.NewAdminController(s.snapshot, s.content),
		health:   controller.NewHealthController(repos.content, cfg.Data.LearningDir),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services, cfg *config.Config) {
	if !cfg.Snapshot.Enabled {
		return
	}

	a.scheduler = gocron.NewScheduler(time.Local)
	a.scheduler.Every(1).Day().At(cfg.Snapshot.DailyAt).Do(func() {
		if _, err := s.snapshot.Run(context.Background()); err != nil {
			logger.Log.Error("scheduled snapshot failed", zap.Error(err))
		}
	})
	a.scheduler.StartAsync()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	app := &App{Config: cfg}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		var err error
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
		app.Redis = rdb
	}

	repos, err := app.initRepositories(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to load content data", zap.Error(err))
	}

	if cfg.ValidateOnly {
		logger.Log.Info("content validation finished",
			zap.String("source", repos.content.Source()),
			zap.Int("characters", repos.content.Count()))
		return app
	}

	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services, repos, cfg)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("hanja-learning", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	app.startBackgroundTasks(services, cfg)

	// Hot-reload of tunable learning parameters; structural changes still
	// need a restart.
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		app.services.progress.Learning = newCfg.Learning
		logger.Log.Info("configuration reloaded",
			zap.Ints("review_intervals", newCfg.Learning.ReviewIntervals),
			zap.Int("daily_goal", newCfg.Learning.DailyGoal))
	})

	return app
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

	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
