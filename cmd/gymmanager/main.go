// cmd/gymmanager/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fitnexus/internal/calendar"
	"fitnexus/internal/config"
	"fitnexus/internal/server"
	"fitnexus/internal/telemetry"

	"golang.org/x/time/rate"
)

func main() {
	var cfg config.Server
	if err := config.ParseEnv(&cfg); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.ServiceName, cfg.Telemetry)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}

	app := server.NewApp(calendar.SystemClock{})
	if cfg.SchedulePath != "" {
		n, err := app.LoadSchedule(ctx, cfg.SchedulePath)
		if err != nil {
			log.Fatalf("Failed to load schedule: %v", err)
		}
		log.Printf("Loaded %d sessions from %s", n, cfg.SchedulePath)
	}
	if cfg.MembersPath != "" {
		n, err := app.LoadMembers(ctx, cfg.MembersPath)
		if err != nil {
			log.Fatalf("Failed to load members: %v", err)
		}
		log.Printf("Loaded %d members from %s", n, cfg.MembersPath)
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.WriteRateLimit), cfg.WriteRateBurst)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.NewRouter(app, limiter),
	}

	go func() {
		fmt.Printf("🚀 Starting Gym Manager on port %s\n", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shut down server: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("Failed to flush traces: %v", err)
	}
}
