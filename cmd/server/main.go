package main

import (
	"log"
	"net/http"

	"event-registration-api/config"
	"event-registration-api/internal/database"
	"event-registration-api/internal/handler"
	"event-registration-api/internal/middleware"
	"event-registration-api/internal/repository"
	"event-registration-api/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	if err := database.MigrateUp(&cfg.Database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	eventRepo := repository.NewEventRepository(pool)
	attendeeRepo := repository.NewAttendeeRepository(pool)

	eventService := service.NewEventService(eventRepo)
	attendeeService := service.NewAttendeeService(pool, attendeeRepo, eventRepo)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	router.GET("/health", func(c *gin.Context) {
		if err := pool.Ping(c); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unreachable"})
			return
		}
		if err := rdb.Ping(c).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "redis unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handler.NewEventHandler(eventService).RegisterRoutes(router)
	handler.NewAttendeeHandler(attendeeService).RegisterRoutes(router,
		middleware.RegistrationRateLimit(rdb, cfg.RateLimit))

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
