package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/TayeEmmanu/Habitly/internal/server"
	"github.com/TayeEmmanu/Habitly/internal/server/config"
)

func main() {

	// Missing .env is fine; real environments set variables directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
