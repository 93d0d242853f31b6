package main

import (
	"github.com/radhian/sip-engine/config"
	"github.com/radhian/sip-engine/controllers"

	"github.com/labstack/gommon/log"
)

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

	err = app.RunServer()
	app.Close()
	log.Fatalf("%v", err)
}
