// Package main is the entry point for the voxray volume viewer.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/voxray/internal/config"
	"github.com/Faultbox/voxray/internal/logger"
	"github.com/Faultbox/voxray/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", path)
		return
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		logger.Fatal("viewer stopped", zap.Error(err))
	}
	logger.Info("viewer closed normally")
	logger.Sync()
}

func run(cfg *config.Config) error {
	logger.Info("=== voxray ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.OpenDialog() {
		path, err := chooseVolume()
		if err != nil {
			return err
		}
		cfg.Volume.Path = path
	}

	v, err := viewer.New(cfg)
	if err != nil {
		return fmt.Errorf("starting viewer: %w", err)
	}
	defer v.Close()

	return v.Run()
}

// chooseVolume asks for a raw volume file with the native file dialog.
func chooseVolume() (string, error) {
	path, err := dialog.File().
		Filter("Raw volumes", "raw").
		Filter("All Files", "*").
		Title("Open volume").
		Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", errors.New("no volume selected")
	}
	if err != nil {
		return "", fmt.Errorf("file dialog: %w", err)
	}
	logger.Info("volume selected", zap.String("path", path))
	return path, nil
}
