// Command Flipbook is a frame-by-frame animation drawing tool.
//
// Usage:
//
//	Flipbook                         # default 800x450 canvas at 12 fps
//	Flipbook -config flipbook.yaml   # settings from a YAML file
package main

import (
	"flag"
	"log/slog"
	"os"

	"Flipbook/internal/config"
	"Flipbook/internal/session"
	"Flipbook/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a flipbook.yaml config file")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error (overrides the config file)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			slog.Error("flipbook: load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		slog.Error("flipbook: log level", "error", err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithBrush(cfg.InitialBrush()),
	}
	if cfg.OnionSkin.Enabled {
		opts = append(opts, session.WithOnionSkin(cfg.OnionSkin.Opacity))
	}
	s, err := session.New(cfg.Canvas.Width, cfg.Canvas.Height, opts...)
	if err != nil {
		logger.Error("flipbook: start session", "error", err)
		os.Exit(1)
	}

	ui.RunApp(cfg, s, logger)
}
