package main

import (
	"log"
	"time"

	"github.com/YanislavD/EventApp/config"
	"github.com/YanislavD/EventApp/internal/handler"
	"github.com/YanislavD/EventApp/internal/middleware"
	"github.com/YanislavD/EventApp/internal/rating"
	"github.com/YanislavD/EventApp/internal/repository"
	"github.com/YanislavD/EventApp/internal/scheduler"
	"github.com/YanislavD/EventApp/internal/service"
	"github.com/YanislavD/EventApp/pkg/cache"
	"github.com/YanislavD/EventApp/pkg/database"
	"github.com/YanislavD/EventApp/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	var categoryCache *cache.Cache
	if cfg.RedisAddr != "" {
		categoryCache = cache.New(cfg.RedisAddr, 10*time.Minute)
		defer categoryCache.Close()
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	eventRepo := repository.NewEventRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	ticketRepo := repository.NewTicketRepository(db)

	ticketSvc := service.NewTicketService(ticketRepo)
	subSvc := service.NewSubscriptionService(subRepo, ticketSvc)
	categorySvc := service.NewCategoryService(categoryRepo, categoryCache)
	eventSvc := service.NewEventService(eventRepo, categorySvc, subSvc, publisher)
	bookingSvc := service.NewBookingService(eventRepo, subRepo, subSvc, ticketSvc)
	userSvc := service.NewUserService(userRepo, subSvc, eventSvc, publisher)
	ratingClient := rating.NewClient(cfg.RatingServiceURL, 5*time.Second)
	ratingSvc := service.NewRatingService(ratingClient, bookingSvc)

	cleanup, err := scheduler.NewCleanup(eventSvc, cfg.CleanupInterval, cfg.RetentionDays)
	if err != nil {
		log.Fatalf("failed to set up cleanup scheduler: %v", err)
	}
	cleanup.Start()
	defer cleanup.Stop()

	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = handler.NewRequestValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "eventapp"})
	})

	api := e.Group("/api/v1")
	auth := middleware.Auth(cfg.JWTSecret)

	authedAPI := e.Group("/api/v1", auth)
	adminAPI := e.Group("/api/v1/admin", auth, middleware.RequireAdmin)

	handler.NewUserHandler(userSvc, cfg.JWTSecret).
		RegisterRoutes(api.Group("/auth"), authedAPI, adminAPI)
	handler.NewCategoryHandler(categorySvc).
		RegisterRoutes(api.Group("/categories"), adminAPI.Group("/categories"))
	handler.NewEventHandler(eventSvc, subSvc, ticketSvc, ratingSvc).
		RegisterRoutes(api.Group("/events"), authedAPI.Group("/events"))
	handler.NewBookingHandler(bookingSvc, subSvc, ticketSvc).
		RegisterRoutes(authedAPI)
	handler.NewTicketHandler(ticketSvc).
		RegisterRoutes(authedAPI)
	handler.NewRatingHandler(ratingSvc).
		RegisterRoutes(api, authedAPI)

	log.Printf("EventApp starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
