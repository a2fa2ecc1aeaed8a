package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"minishop/internal/config"
	"minishop/internal/handlers"
	"minishop/internal/models"
	"minishop/internal/repositories"
	"minishop/internal/services"
	"minishop/internal/storage"
	"minishop/pkg/rabbitmq"
	"minishop/pkg/userclient"
)

func main() {
	cfg := config.Load()

	db, err := storage.Open(cfg.DatabaseDriver, cfg.OrderDatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Event publishing is best effort: a missing broker downgrades to
	// logging, it never stops the service.
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, order events disabled: %v", err)
		} else {
			publisher = mqClient
			defer mqClient.Close()
		}
	}

	orderRepo := repositories.NewGORMOrderRepository(db)
	verifier := userclient.New(cfg.UserServiceURL, cfg.UserLookupTimeout)
	orderService := services.NewOrderService(orderRepo, verifier, publisher)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := fiber.New()
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "order-service",
		})
	})

	orderHandler.RegisterRoutes(app.Group("/api"))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Order service running on port %s", cfg.OrderServicePort)
		if err := app.Listen(cfg.OrderServicePort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down order service...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	if err := storage.Close(db); err != nil {
		log.Printf("Error closing database: %v", err)
	}
	log.Println("Order service gracefully stopped")
}
