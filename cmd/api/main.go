package main

import (
	"log"

	"zephvault-backend/internal/bootstrap"
	"zephvault-backend/internal/shared/config"
	"zephvault-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	if err := app.ReminderScheduler.Start(); err != nil {
		log.Fatalf("scheduler error: %v", err)
	}
	defer app.ReminderScheduler.Stop()

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
