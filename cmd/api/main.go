package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/thinkfashz/Osart/internal/app/api"
)

func main() {
	_ = godotenv.Load()
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("api exited: %v", err)
	}
}
