package main

import (
	"fmt"

	"personix/internal"
	log "personix/internal/logging"

	_ "github.com/joho/godotenv/autoload"
)

var version string = "0.1.0" // Set by the build script

func main() {
	// Panics still crash the program but end up in ~/.personix/logs/panic.log
	defer log.LogPanic()

	if err := internal.Run(version); err != nil {
		log.Fatal(fmt.Sprintf("Failed to run personix: %v", err))
		return
	}
}
