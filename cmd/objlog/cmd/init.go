/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/objlog/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a configuration file with default log paths and a freshly
generated API key for the HTTP server.

An existing configuration is left alone unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settingsFrom(cmd)
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")

		if config.ConfigExists(s.configPath) && !force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", s.configPath)
		}

		cfg, err := config.BootstrapConfig(s.configPath, s.config.DataDir)
		if err != nil {
			return err
		}

		cmd.Printf("Configuration written to %s\n", s.configPath)
		cmd.Printf("Binary log: %s\n", cfg.BinaryLogPath())
		cmd.Printf("Text log:   %s\n", cfg.TextLogPath())
		cmd.Printf("API key:    %s\n", cfg.Security.APIKey)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
}
