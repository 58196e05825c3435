package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/nexaboard/nexaboard/docs"
	"github.com/nexaboard/nexaboard/internal/api/handler"
	"github.com/nexaboard/nexaboard/internal/api/middleware"
	"github.com/nexaboard/nexaboard/internal/core/service"
	"github.com/nexaboard/nexaboard/internal/infrastructure/config"
	mongodb "github.com/nexaboard/nexaboard/internal/infrastructure/db/mongo"
	redisdb "github.com/nexaboard/nexaboard/internal/infrastructure/db/redis"
	"github.com/nexaboard/nexaboard/pkg/identity"
	"github.com/nexaboard/nexaboard/pkg/logger"
)

const sessionTTL = 24 * time.Hour

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("nexaboard"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)
	revoker := redisdb.NewRevocationStore(rdb)

	authService := service.NewAuthService(userRepo, revoker, cfg.JWTSecret, sessionTTL)
	userService := service.NewUserService(userRepo)
	projectService := service.NewProjectService(projectRepo, userRepo)
	taskService := service.NewTaskService(taskRepo, userRepo)
	messageService := service.NewMessageService(messageRepo)
	statsService := service.NewStatsService(projectRepo, userRepo, messageRepo)
	insightService := service.NewInsightService(projectRepo, taskRepo, userRepo)

	authHandler := handler.NewAuthHandler(authService, cfg.JWTSecret, cfg.CookieSecure, sessionTTL)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)
	messageHandler := handler.NewMessageHandler(messageService)
	statsHandler := handler.NewStatsHandler(statsService)
	insightHandler := handler.NewInsightHandler(insightService)

	authRequired := middleware.Auth(cfg.JWTSecret, revoker)
	managerOnly := middleware.RequireRole(identity.RoleManager)

	// --- Auth routes ---
	// Logout stays outside the auth guard so an expired or revoked
	// session can still be cleared client-side.
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/logout", authHandler.Logout)
	e.GET("/api/auth/me", authHandler.Me, authRequired)

	// --- Dashboard routes ---
	e.GET("/api/stats", statsHandler.Get)

	api := e.Group("/api", authRequired)
	api.GET("/users", userHandler.List)
	api.GET("/users/leads", userHandler.Leads)

	api.GET("/projects", projectHandler.List)
	api.GET("/projects/my-projects", projectHandler.Mine)
	api.GET("/projects/:id", projectHandler.Get)
	api.POST("/projects", projectHandler.Create, managerOnly)
	api.DELETE("/projects/:id", projectHandler.Delete, managerOnly)

	api.GET("/tasks/project/:projectId", taskHandler.ByProject)
	api.GET("/tasks/my-tasks", taskHandler.Mine)
	api.POST("/tasks", taskHandler.Create)
	api.PUT("/tasks/:id", taskHandler.Update)
	api.PATCH("/tasks/:id/status", taskHandler.UpdateStatus)
	api.DELETE("/tasks/:id", taskHandler.Delete)

	api.GET("/messages", messageHandler.List)
	api.GET("/messages/project/:projectId", messageHandler.ByProject)
	api.POST("/messages", messageHandler.Create)

	api.GET("/insights", insightHandler.Insights)
	api.GET("/insights/leaderboard", insightHandler.Leaderboard)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
