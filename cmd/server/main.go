package main // Entry point of the hostel API server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-management/internal/bootstrap"
	"github.com/iliyamo/hostel-management/internal/config"
	"github.com/iliyamo/hostel-management/internal/handler"
	"github.com/iliyamo/hostel-management/internal/jobs"
	"github.com/iliyamo/hostel-management/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	app, err := bootstrap.Open(ctx, cfg, true)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	defer app.Close()
	if err := app.Prepare(ctx); err != nil {
		log.Fatalf("startup: %v", err)
	}

	if cfg.OverdueCron != "" {
		sweep, err := jobs.StartOverdueSweep(cfg.OverdueCron, app.Hostel.Payments)
		if err != nil {
			log.Fatalf("overdue sweep: %v", err)
		}
		defer sweep.Stop()
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, handler.New(cfg, app.Hostel), cfg, app.Redis)

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s, store=%s)", addr, cfg.Env, cfg.StoreBackend)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	// Give outstanding requests 10 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}
