package main

import (
	"fmt"
	"os"

	"taruf-api/core/config"
	"taruf-api/core/logger"
	"taruf-api/core/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := server.Run(cfg); err != nil {
		logger.Error("run server error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}
