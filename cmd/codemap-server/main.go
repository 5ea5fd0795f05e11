package main

import (
	"flag"
	"os"
	"time"

	"github.com/dd0wney/cluso-codemap/pkg/api"
	"github.com/dd0wney/cluso-codemap/pkg/config"
	"github.com/dd0wney/cluso-codemap/pkg/logging"
	"github.com/dd0wney/cluso-codemap/pkg/metrics"
	"github.com/dd0wney/cluso-codemap/pkg/server"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (defaults used when empty)")
	addr := flag.String("addr", "", "Listen address override (e.g. :8080)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logging.NewDefaultLogger().Error("loading config", logging.Error(err))
			os.Exit(1)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if envAddr := os.Getenv("CODEMAP_ADDR"); envAddr != "" && *addr == "" {
		cfg.Server.Addr = envAddr
	}

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.Logging.Level))
	logger.Info("codemap layout server starting",
		logging.String("addr", cfg.Server.Addr),
		logging.Float64("canvas_width", cfg.Canvas.Width),
		logging.Float64("canvas_height", cfg.Canvas.Height),
		logging.Int("max_ticks", cfg.Simulation.MaxTicks),
	)

	registry := metrics.NewRegistry()
	apiServer := api.NewServer(cfg, logger, registry)
	defer apiServer.Close()

	gs := server.NewGracefulServer(cfg.Server.Addr, apiServer.Handler(), logger)
	gs.SetTimeouts(
		time.Duration(cfg.Server.ReadTimeoutSeconds)*time.Second,
		time.Duration(cfg.Server.WriteTimeoutSeconds)*time.Second,
	)

	if err := gs.Start(); err != nil {
		logger.Error("server error", logging.Error(err))
		os.Exit(1)
	}
}
