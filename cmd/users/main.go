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
)

func main() {
	cfg := config.Load()

	db, err := storage.Open(cfg.DatabaseDriver, cfg.UserDatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	userService := services.NewUserService(userRepo)
	userHandler := handlers.NewUserHandler(userService)

	app := fiber.New()
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "user-service",
		})
	})

	userHandler.RegisterRoutes(app.Group("/api"))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("User service running on port %s", cfg.UserServicePort)
		if err := app.Listen(cfg.UserServicePort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down user service...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	if err := storage.Close(db); err != nil {
		log.Printf("Error closing database: %v", err)
	}
	log.Println("User service gracefully stopped")
}
