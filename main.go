package main

import (
	"github.com/radhian/sip-engine/config"
	"github.com/radhian/sip-engine/controllers"

	"github.com/labstack/gommon/log"
)

// main serves the HTTP API and runs the scheduler in one process, so that
// simulated payment callbacks reach the same store.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	app := controllers.App{}
	if err := app.Initialize(cfg); err != nil {
		app.Close()
		log.Fatalf("failed to initialize: %v", err)
	}

	if err := app.StartScheduler(); err != nil {
		app.Close()
		log.Fatalf("failed to start scheduler: %v", err)
	}

	err = app.RunServer()
	app.Close()
	log.Fatalf("%v", err)
}
