// Command server runs the grievance HTTP API and the periodic escalation
// scan. An optional .env file in the working directory is loaded before
// configuration.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/grievance-backend/internal/app"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
