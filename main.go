package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/AKSHAYxGITHUB/remote-classroom/application"
	"github.com/AKSHAYxGITHUB/remote-classroom/config"
	"github.com/AKSHAYxGITHUB/remote-classroom/logger"
)

func main() {
	logr := logger.GetInstance()

	cfg, err := config.Load()
	if err != nil {
		logr.Fatalf("config load failed: %v", err)
	}

	if err := logr.Initialize(cfg.LogDir, cfg.LogLevel); err != nil {
		logr.Fatalf("logger initialization failed: %v", err)
	}

	logr.Infof("Classroom admin starting. LogLevel=%d", cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	app := application.NewApplication()
	if err := app.Configure(ctx, cfg, logr); err != nil {
		logr.Fatalf("store initialization failed: %v", err)
	}

	cli := &commandLine{app: app, log: logr}
	err = cli.run(ctx, os.Args)

	app.Close(context.Background())

	if err != nil && !errors.Is(err, errHelp) {
		logr.Fatalf("%v", err)
	}
}
