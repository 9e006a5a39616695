package main

import (
	"log"
	"os"

	"github.com/futig/custdev-bot/internal/builder"
)

func main() {
	app, err := builder.Build()
	if err != nil {
		log.Fatal("Failed to build application:", err)
	}

	if err := app.Run(); err != nil {
		os.Exit(1)
	}
}
