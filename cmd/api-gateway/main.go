package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/timetable-engine/api/swagger"
	"github.com/noah-isme/timetable-engine/internal/catalog"
	"github.com/noah-isme/timetable-engine/internal/engine"
	"github.com/noah-isme/timetable-engine/internal/exportjob"
	internalhandler "github.com/noah-isme/timetable-engine/internal/handler"
	internalmiddleware "github.com/noah-isme/timetable-engine/internal/middleware"
	"github.com/noah-isme/timetable-engine/internal/models"
	"github.com/noah-isme/timetable-engine/internal/repository"
	"github.com/noah-isme/timetable-engine/internal/service"
	"github.com/noah-isme/timetable-engine/pkg/cache"
	"github.com/noah-isme/timetable-engine/pkg/config"
	"github.com/noah-isme/timetable-engine/pkg/database"
	"github.com/noah-isme/timetable-engine/pkg/logger"
	corsmiddleware "github.com/noah-isme/timetable-engine/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/timetable-engine/pkg/middleware/requestid"
	"github.com/noah-isme/timetable-engine/pkg/storage"
)

// @title Timetable Engine API
// @version 0.1.0
// @description Conflict-graph coloring and cost-minimizing local search for weekly university timetabling
// @BasePath /
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()
	metricsHandler := internalhandler.NewMetricsHandler(metricsSvc)

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to initialise database", "error", err)
	}
	defer db.Close()

	var cacheRepo service.CacheRepository
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("cache disabled", "error", err)
	} else {
		defer redisClient.Close()
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Scheduler.CacheTTL, logr, cacheRepo != nil)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))
	r.Use(internalmiddleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	// Authentication
	authRepo := repository.NewUserRepository(db)
	authSvc := service.NewAuthService(authRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "timetable-engine",
		Audience:           []string{"timetable-engine-clients"},
	})
	authHandler := internalhandler.NewAuthHandler(authSvc)

	authRoutes := api.Group("/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/forgot-password", authHandler.ForgotPassword)
	authRoutes.POST("/reset-password", authHandler.ResetPassword)

	protectedAuth := authRoutes.Group("")
	protectedAuth.Use(internalmiddleware.JWT(authSvc))
	protectedAuth.POST("/logout", authHandler.Logout)
	protectedAuth.POST("/change-password", authHandler.ChangePassword)
	protectedAuth.GET("/me", authHandler.Me)

	// Catalog: sourced from Postgres. A structured document at the configured
	// path is only detected and logged; it is neither used as the row source
	// nor seeded into the database.
	catalogRepo := repository.NewCatalogRepository(db)
	rowSource := catalogRepo.AsRowSource()
	if loaderEvents, err := catalog.NewLoader(cfg.Catalog.SourcePath, cfg.Catalog.Format).Events(); err == nil && len(loaderEvents) > 0 {
		logr.Sugar().Infow("catalog document available as fallback row source", "path", cfg.Catalog.SourcePath, "records", len(loaderEvents))
	}
	catalogSvc := service.NewCatalogService(catalogRepo, rowSource, logr)
	catalogHandler := internalhandler.NewCatalogHandler(catalogSvc)

	catalogGroup := api.Group("/catalog")
	catalogGroup.Use(internalmiddleware.JWT(authSvc))
	catalogGroup.GET("/teachers", catalogHandler.ListTeachers)
	catalogGroup.GET("/subjects", catalogHandler.ListSubjects)
	catalogGroup.GET("/groups", catalogHandler.ListGroups)
	catalogGroup.GET("/events", catalogHandler.Events)

	catalogWrite := catalogGroup.Group("")
	catalogWrite.Use(internalmiddleware.RequireRoles(models.RoleAdmin))
	catalogWrite.Use(internalmiddleware.Audit(authRepo, "CATALOG_WRITE", "catalog"))
	catalogWrite.POST("/teachers", catalogHandler.CreateTeacher)
	catalogWrite.POST("/subjects", catalogHandler.CreateSubject)
	catalogWrite.POST("/groups", catalogHandler.CreateGroup)
	catalogWrite.POST("/loads", catalogHandler.CreateLoad)
	catalogWrite.DELETE("/loads/:id", catalogHandler.DeleteLoad)

	// Scheduler
	schedulerRepo := repository.NewSchedulerRepository(db)
	engineCfg := engine.DefaultConfig()
	if strategy, ok := engine.ParseStrategy(cfg.Scheduler.Strategy); ok {
		engineCfg.Strategy = strategy
	}
	if cfg.Scheduler.PesoContinuidad > 0 {
		engineCfg.PesoContinuidad = cfg.Scheduler.PesoContinuidad
	}
	if cfg.Scheduler.MaxIterations > 0 {
		engineCfg.MaxIterations = cfg.Scheduler.MaxIterations
	}
	schedulerSvc := service.NewSchedulerService(catalogSvc, schedulerRepo, cacheSvc, metricsSvc, logr, engineCfg)
	schedulerHandler := internalhandler.NewSchedulerHandler(schedulerSvc)

	schedulerGroup := api.Group("/scheduler")
	schedulerGroup.Use(internalmiddleware.JWT(authSvc))
	schedulerGroup.GET("/assignments", schedulerHandler.Assignments)
	schedulerGroup.GET("/conflicts", schedulerHandler.Conflicts)
	schedulerGroup.GET("/metrics", schedulerHandler.Metrics)
	schedulerGroup.GET("/graph", schedulerHandler.GraphInfo)
	schedulerGroup.GET("/matrix", schedulerHandler.AdjacencyMatrix)
	schedulerGroup.GET("/history", schedulerHandler.History)
	schedulerGroup.POST("/run",
		internalmiddleware.RequireRoles(models.RoleAdmin),
		internalmiddleware.Audit(authRepo, "SCHEDULER_RUN", "scheduler"),
		schedulerHandler.Run)

	// Export
	ctx := context.Background()
	localStorage, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to initialise export storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exportSvc := exportjob.NewService(ctx, schedulerSvc, localStorage, signer, cfg.Exports.WorkerConcurrency, cfg.Exports.WorkerRetries, logr)
	defer exportSvc.Stop()
	exportHandler := internalhandler.NewExportHandler(exportSvc)

	exportGroup := api.Group("/exports")
	exportGroup.GET("/download", exportHandler.Download)
	exportGroupAuthed := exportGroup.Group("")
	exportGroupAuthed.Use(internalmiddleware.JWT(authSvc))
	exportGroupAuthed.POST("", exportHandler.Create)
	exportGroupAuthed.GET("/:id", exportHandler.Status)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("starting server", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server exited", "error", err)
	}
}
