// Command main is the entry point for the Real.me API server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"realme/internal/config"
	"realme/internal/observability"
	"realme/internal/server"
)

// @title Real.me API
// @version 1.0
// @description Community platform API with communities, memberships, posts, comments, and verified profiles

// @contact.name API Support
// @contact.email support@real.me

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8460
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize tracing
	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "realme-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExport,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSample,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	// Create server with dependency injection
	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("Tracing shutdown error: %v", err)
		}
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
