package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

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
	defer app.Close()

	// catch up once before waiting for the first tick
	if err := app.Handler.SipExecution(context.Background()); err != nil {
		log.Errorf("[CronServer] initial pass failed: %v", err)
	}

	if err := app.StartScheduler(); err != nil {
		app.Close()
		log.Fatalf("failed to start scheduler: %v", err)
	}
	log.Infof("[CronServer] running on %q", cfg.CronSpec)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Infof("[CronServer] shutting down")
}
