package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "todoapi/internal/app"
	"todoapi/internal/bootstrap"
	"todoapi/internal/platform/rabbitmq"
	"todoapi/internal/repository"
	"todoapi/internal/transport/http/handler"
	"todoapi/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	userRepo := repository.NewUserRepository(app.MySQL)
	todoRepo := repository.NewTodoRepository(app.MySQL)

	var events appsvc.EventPublisher
	if app.MQConn != nil {
		events = rabbitmq.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.AuditQueue)
	}

	authService := appsvc.NewAuthService(userRepo, events)
	tokenService := appsvc.NewTokenService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.TokenTTLMinute)*time.Minute,
	)
	todoService := appsvc.NewTodoService(todoRepo, events)

	authGate := middleware.Auth(authService, tokenService)

	healthHandler := handler.NewHealthHandler(app)
	homeHandler := handler.NewHomeHandler(app.Config.App.Name)
	userHandler := handler.NewUserHandler(authService, tokenService)
	todoHandler := handler.NewTodoHandler(todoService)

	router.GET("/healthz", healthHandler.Check)

	if app.Config.App.ProtectHome {
		router.GET("/", authGate, homeHandler.Show)
	} else {
		router.GET("/", homeHandler.Show)
	}

	defaultPolicy := middleware.RateLimitPolicy{
		Name:   "default",
		Limit:  app.Config.RateLimit.DefaultPerMinute,
		Window: time.Minute,
	}
	userCreatePolicy := middleware.RateLimitPolicy{
		Name:   "user-create",
		Limit:  app.Config.RateLimit.UserCreatePerDay,
		Window: 24 * time.Hour,
	}
	if !app.Config.RateLimit.Enabled {
		defaultPolicy.Limit = 0
		userCreatePolicy.Limit = 0
	}
	failOpen := app.Config.RateLimit.FailOpenOnRedisError

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimit(app.Redis, defaultPolicy, failOpen))

	users := v1.Group("/users")
	users.POST("", middleware.RateLimit(app.Redis, userCreatePolicy, failOpen), userHandler.Create)
	users.GET("/token", authGate, userHandler.Token)

	todos := v1.Group("/todos")
	todos.GET("", todoHandler.List)
	todos.POST("", todoHandler.Create)
	todos.GET("/:id", todoHandler.Get)
	todos.PUT("/:id", todoHandler.Update)
	todos.DELETE("/:id", todoHandler.Delete)

	return router
}
