package main

import (
	"log"

	"omniview/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatalf("omniview: %v", err)
	}
}
