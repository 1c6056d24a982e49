package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/msweeper/internal/app"
	"github.com/vancomm/msweeper/internal/config"
)

var configPath string

func init() {
	const usage = "config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
}

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.Fatal("unable to load config: ", err)
	}

	log, err := config.NewLogger(cfg.Log, cfg.Development)
	if err != nil {
		logrus.Fatal("unable to set up logging: ", err)
	}
	log.WithFields(cfg.Fields()).Debug("config")

	a, err := app.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("unable to start: ", err)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		log.Error("exit reason: ", err)
		a.Close()
		os.Exit(1)
	}
	log.Info("shut down")
}
