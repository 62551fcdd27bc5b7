package main // Interactive operator console over the same stores as the API

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/iliyamo/hostel-management/internal/bootstrap"
	"github.com/iliyamo/hostel-management/internal/config"
	"github.com/iliyamo/hostel-management/internal/console"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("config: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Open(ctx, cfg, false)
	if err != nil {
		log.Printf("startup: %v", err)
		return 1
	}
	defer app.Close()
	if err := app.Prepare(ctx); err != nil {
		log.Printf("startup: %v", err)
		return 1
	}

	err = console.New(app.Hostel, os.Stdin, os.Stdout, cfg.ExportDir).Run(ctx)
	switch {
	case errors.Is(err, console.ErrLoginFailed):
		return 1
	case err != nil:
		log.Printf("console: %v", err)
		return 1
	}
	return 0
}
