/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/objlog/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serve both logs over HTTP. Requests under /api/v1 need the X-API-Key header
set to the key from the configuration file; /metrics is open.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settingsFrom(cmd)
		if err != nil {
			return err
		}
		if container == nil {
			return fmt.Errorf("dependency container not initialized")
		}

		serverConfig := api.ServerConfig{
			Port:   s.config.Port,
			Bind:   s.config.Bind,
			APIKey: s.config.Security.APIKey,
		}
		if cmd.Flags().Changed("port") {
			serverConfig.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			serverConfig.Bind, _ = cmd.Flags().GetString("bind")
		}
		if serverConfig.APIKey == "" {
			return fmt.Errorf("no API key configured; run 'objlog init' first")
		}

		binary, err := s.openBinary()
		if err != nil {
			return err
		}
		defer binary.Close()

		text, err := s.openText()
		if err != nil {
			return err
		}
		defer text.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		starter := container.GetServerFactory().CreateServerStarter()
		return starter.StartServer(ctx, binary, text, serverConfig, s.logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
}
