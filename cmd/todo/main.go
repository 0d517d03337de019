package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"halil/internal/config"
	"halil/internal/logging"
	"halil/internal/storage"
	"halil/internal/ui"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:           "todo",
		Short:         "Keyboard-driven todo board for the terminal",
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.ResolveConfigPath(), "path to config.toml")

	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, logFile, err := logging.Open(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer logFile.Close()

	store, err := storage.Open("halil")
	if err != nil {
		return fmt.Errorf("failed to open task store: %w", err)
	}
	defer store.Close()

	if err := ui.Run(store, cfg, logger); err != nil {
		logger.Error("program failed", "err", err)
		return err
	}
	return nil
}
