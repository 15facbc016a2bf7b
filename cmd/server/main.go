package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"

	"budgetctl/pkg/api"
	"budgetctl/pkg/config"
	"budgetctl/pkg/server"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "budgetctl",
	})

	var (
		cfgFile = flag.String("config", "", "Config file (default is config.yaml)")
		listen  = flag.String("listen", "", "Listen address, overrides config")
	)
	flag.Parse()

	cfg, err := config.Build(*cfgFile, nil)
	if err != nil {
		logger.Fatal("config error", "err", err)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	client := api.New(cfg.ServerURL, cfg.UserID, logger)
	srv := server.New(cfg, logger, client)
	logger.Info("starting server", "addr", cfg.Listen, "backend", cfg.ServerURL)
	if err := srv.Start(cfg.Listen); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
