package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"minishop/internal/config"
	"minishop/internal/gateway"
)

func main() {
	cfg := config.Load()

	routes := []gateway.Route{
		{Prefix: "/api/users", Target: cfg.UserServiceURL},
		{Prefix: "/api/orders", Target: cfg.OrderServiceURL},
		{Prefix: "/api/payments", Target: cfg.PaymentServiceURL},
	}

	app := gateway.New(routes, cfg.ProxyTimeout)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("API Gateway running on port %s", cfg.GatewayPort)
		if err := app.Listen(cfg.GatewayPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down gateway...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Gateway gracefully stopped")
}
