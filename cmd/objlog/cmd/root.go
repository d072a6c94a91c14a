/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/objlog/pkg/api"
	"github.com/ssargent/objlog/pkg/config"
	"github.com/ssargent/objlog/pkg/di"
	"github.com/ssargent/objlog/pkg/store"
)

var container *di.Container

// SetContainer injects the dependency container
func SetContainer(c *di.Container) {
	container = c
}

type settingsKey struct{}

type settings struct {
	config     *config.Config
	configPath string
	logger     *slog.Logger
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "objlog",
	Short: "objlog - append-only object log",
	Long: `objlog appends structured records to a file and reads them back in order.

Records go to a checksummed binary log (MessagePack frames) or to a plain
JSON text log. A binary log that ends in a torn or corrupted frame reads
back up to the last intact record.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		cfg := config.DefaultConfig()
		if config.ConfigExists(configPath) {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Logging.Level, _ = cmd.Flags().GetString("log-level")
		}

		logger, err := config.NewLogger(cfg.Logging, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		cmd.SetContext(context.WithValue(cmd.Context(), settingsKey{}, &settings{
			config:     cfg,
			configPath: configPath,
			logger:     logger,
		}))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default ~/.config/objlog/config.yaml)")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "./data", "Data directory for the logs")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}

func settingsFrom(cmd *cobra.Command) (*settings, error) {
	s, ok := cmd.Context().Value(settingsKey{}).(*settings)
	if !ok {
		return nil, fmt.Errorf("settings not found in context")
	}
	return s, nil
}

func (s *settings) logConfig(path string) store.LogConfig {
	return store.LogConfig{
		FilePath:   path,
		BufferSize: s.config.BufferSize,
		Fsync:      s.config.Fsync,
		Logger:     s.logger,
	}
}

func (s *settings) openBinary() (*store.BinaryLog[api.Entry], error) {
	return store.OpenBinaryLog[api.Entry](s.logConfig(s.config.BinaryLogPath()))
}

func (s *settings) openText() (*store.TextLog[api.Entry], error) {
	return store.OpenTextLog[api.Entry](s.logConfig(s.config.TextLogPath()))
}

func checkFormat(format string) error {
	switch format {
	case api.FormatBinary, api.FormatText:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, api.FormatBinary, api.FormatText)
	}
}
