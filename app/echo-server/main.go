package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stableCraft/app/echo-server/metrics"
	"stableCraft/app/echo-server/router"
	"stableCraft/business/assignment"
	"stableCraft/business/compat"
	groomService "stableCraft/business/groom"
	horseService "stableCraft/business/horse"
	"stableCraft/business/milestone"
	userService "stableCraft/business/user"
	"stableCraft/internal/middleware"
	"stableCraft/internal/repository/notification"
	psqlRepo "stableCraft/internal/repository/postgres"
	redisRepo "stableCraft/internal/repository/redis"
	"stableCraft/internal/rest"
	"stableCraft/pkg/config"
	"stableCraft/pkg/database"
	redisdb "stableCraft/pkg/database/redis"
	"stableCraft/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting StableCraft", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer redisdb.CloseRedisClient(redisClient)

	logger.Info("Redis connected successfully")

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	horseRepo := psqlRepo.NewHorseRepository(db)
	groomRepo := psqlRepo.NewGroomRepository(db)
	assignmentRepo := psqlRepo.NewAssignmentRepository(db)
	milestoneRepo := psqlRepo.NewMilestoneRepository(db)
	bonusTraitRepo := psqlRepo.NewBonusTraitRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)

	// Init service
	userSvc := userService.NewUserService(userRepo, validate, mailjetEmail, tokenRepo, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	horseSvc := horseService.NewHorseService(horseRepo)
	groomSvc := groomService.NewGroomService(groomRepo)
	assignmentSvc := assignment.NewAssignmentService(assignmentRepo, horseRepo, groomRepo)
	bonusTraitRegistry := compat.NewBonusTraitRegistry(bonusTraitRepo)
	compatSvc := compat.NewService(groomRepo, horseRepo, assignmentRepo, bonusTraitRegistry)
	milestoneSvc := milestone.NewService(horseRepo, groomRepo, assignmentRepo, milestoneRepo, bonusTraitRegistry)

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	horseHandler := rest.NewHorseHandler(horseSvc)
	groomHandler := rest.NewGroomHandler(groomSvc, bonusTraitRegistry)
	assignmentHandler := rest.NewAssignmentHandler(assignmentSvc)
	compatHandler := rest.NewCompatHandler(compatSvc)
	milestoneHandler := rest.NewMilestoneHandler(milestoneSvc)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.TraceMiddleware())

	metrics.Init()
	e.Use(metrics.Middleware())

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(userSvc)
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly)
	router.SetupHorseRoutes(api, horseHandler, authRequired)
	router.SetupGroomRoutes(api, groomHandler, authRequired, adminOnly)
	router.SetupAssignmentRoutes(api, assignmentHandler, authRequired)
	router.SetupCompatibilityRoutes(api, compatHandler, authRequired)
	router.SetupMilestoneRoutes(api, milestoneHandler, authRequired)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
