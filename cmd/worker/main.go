// Command worker consumes booking events from RabbitMQ and appends them to
// logs/booking.log.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/iliyamo/hostel-management/internal/queue"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logDir := os.Getenv("EVENT_LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}
	log.Printf("worker started, writing %s/booking.log", logDir)
	err := queue.StartBookingConsumer(ctx, queue.BrokerURL(), logDir)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("worker: %v", err)
	}
	log.Println("worker stopped")
}
