package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"secondbrain/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "secondbrain",
	Short: "Save links, summarize them and share your collection",
	Long: `secondbrain stores links per user, summarizes links from supported
sources with a text generation model and hands out share links for a single
item or a whole collection.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./configs", "directory containing config.yaml")
	rootCmd.AddCommand(serveCmd, sourcesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the root logger from it.
func setup() (config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("error loading configuration: %w", err)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	log.SetLevel(level)

	log.WithFields(logrus.Fields{
		"badgerdb_path": cfg.BadgerDBPath,
		"port":          cfg.ServerPort,
		"log_level":     level.String(),
	}).Info("Configuration loaded successfully")
	return cfg, log, nil
}
