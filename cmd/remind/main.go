package main

// One-shot rent reminder sweep, for external schedulers:
//   go run ./cmd/remind

import (
	"context"
	"log"
	"os"
	"time"

	"zephvault-backend/internal/bootstrap"
	"zephvault-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Printf("bootstrap error: %v", err)
		os.Exit(1)
	}
	if app.DB != nil {
		defer app.DB.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := app.ReminderRunner.Run(ctx)
	if err != nil {
		log.Printf("reminder sweep failed: %v", err)
		os.Exit(1)
	}

	log.Printf("reminder sweep finished: total=%d successful=%d failed=%d",
		result.Total, result.Successful, result.Failed)
	if result.Failed > 0 {
		os.Exit(1)
	}
}
