package main

import (
	"os"

	"agentdigest/cmd/handlers"
	"agentdigest/internal/logger"
)

func main() {
	logger.Init()
	if err := handlers.Execute(); err != nil {
		os.Exit(1)
	}
}
