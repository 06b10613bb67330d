package main

import (
	"log"

	"github.com/joho/godotenv"

	"peopledesk/internal/app/server"
	"peopledesk/internal/platform/config"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app, err := server.New(cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
