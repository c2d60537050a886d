// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/thequick-backend/internal/config"
	"github.com/your-org/thequick-backend/internal/domain/cart"
	"github.com/your-org/thequick-backend/internal/domain/catalog"
	"github.com/your-org/thequick-backend/internal/domain/order"
	"github.com/your-org/thequick-backend/internal/domain/pricing"
	"github.com/your-org/thequick-backend/internal/domain/user"
	"github.com/your-org/thequick-backend/internal/infrastructure/database/redis"
	"github.com/your-org/thequick-backend/internal/interfaces/http"
	"github.com/your-org/thequick-backend/internal/interfaces/http/handlers"
	"github.com/your-org/thequick-backend/internal/pkg/clock"
	"github.com/your-org/thequick-backend/internal/pkg/pdf"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg)

	log.Printf("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := redisClient.Health(); err != nil {
		log.Fatalf("Redis health check failed: %v", err)
	}

	// Session stores backed by Redis
	cartStore := redis.NewCartStore(redisClient, cfg.Redis.SessionTTL)
	sessionStore := redis.NewSessionStore(redisClient, cfg.Redis.SessionTTL)
	conditionsStore := redis.NewConditionsStore(redisClient)

	clk := clock.New()

	// Domain services in dependency order
	pricingService := pricing.NewService(cfg, conditionsStore, logger)
	cartService := cart.NewService(cartStore, pricingService, cfg, clk, logger)
	tracker := order.NewTracker(cfg, pricingService, clk, logger)
	defer tracker.Close()

	catalogService, err := catalog.NewService(clk, logger)
	if err != nil {
		log.Fatalf("Failed to load catalog fixtures: %v", err)
	}

	userService, err := user.NewService(cfg, sessionStore, logger)
	if err != nil {
		log.Fatalf("Failed to initialize user service: %v", err)
	}

	services := &handlers.Services{
		Catalog: catalogService,
		Cart:    cartService,
		Orders:  tracker,
		Pricing: pricingService,
		Users:   userService,
		PDF:     pdf.NewService(cfg),
	}

	log.Println("✅ All systems operational!")

	// Create and start HTTP server
	server := http.NewServer(cfg, services, redisClient.GetClient(), logger)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("👋 Shutting down gracefully...")

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Printf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Println("✅ Server shutdown completed")
}

// newLogger builds the application logger from configuration
func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
