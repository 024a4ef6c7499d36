package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/openroutine/timetable-api/api/swagger"
	"github.com/openroutine/timetable-api/internal/handler"
	"github.com/openroutine/timetable-api/internal/middleware"
	"github.com/openroutine/timetable-api/internal/repository"
	"github.com/openroutine/timetable-api/internal/service"
	"github.com/openroutine/timetable-api/pkg/cache"
	"github.com/openroutine/timetable-api/pkg/config"
	"github.com/openroutine/timetable-api/pkg/database"
	"github.com/openroutine/timetable-api/pkg/logger"
	corsmiddleware "github.com/openroutine/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/openroutine/timetable-api/pkg/middleware/requestid"
)

// @title Timetable API
// @version 0.1.0
// @description Constraint-based university timetable generation
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	validate := validator.New()
	metrics := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, timetable cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheSvc = service.NewCacheService(redisClient, logr, metrics, cfg.Cache.TimetableTTL)
		}
	}

	subjectRepo := repository.NewSubjectRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	timeSlotRepo := repository.NewTimeSlotRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	userRepo := repository.NewUserRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
	})
	timetableSvc := service.NewTimetableService(
		subjectRepo, groupRepo, roomRepo, facultyRepo, timeSlotRepo,
		timetableRepo, settingRepo,
		cacheSvc, metrics, validate, logr,
		service.TimetableServiceConfig{MaxTimeLimit: cfg.Solver.MaxTimeLimit},
	)
	settingSvc := service.NewSettingService(settingRepo, validate, logr)
	exportSvc := service.NewExportService(timetableRepo, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	timetableHandler := handler.NewTimetableHandler(timetableSvc, exportSvc)
	settingHandler := handler.NewSettingHandler(settingSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Scrape)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	protected.POST("/timetable/generate", timetableHandler.Generate)
	protected.GET("/timetable", timetableHandler.List)
	protected.GET("/timetable/grouped", timetableHandler.Grouped)
	protected.GET("/timetable/export", timetableHandler.Export)
	protected.GET("/settings", settingHandler.List)
	protected.PUT("/settings", settingHandler.Update)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
