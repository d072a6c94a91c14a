/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/objlog/pkg/codec"
	"github.com/ssargent/objlog/pkg/store"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [path]",
	Short: "Check a binary log for torn or corrupted frames",
	Long: `Scan a binary log and report how many records are intact and where the
first damaged frame starts. The file is never modified.

With --strict the command fails when the log has trailing damage.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settingsFrom(cmd)
		if err != nil {
			return err
		}
		codecName, _ := cmd.Flags().GetString("codec")
		strict, _ := cmd.Flags().GetBool("strict")

		c, err := codec.Lookup(codecName)
		if err != nil {
			return err
		}

		path := s.config.BinaryLogPath()
		if len(args) == 1 {
			path = args[0]
		}

		report, err := store.Inspect(path, c)
		if err != nil {
			return err
		}

		cmd.Printf("Path:        %s\n", report.Path)
		cmd.Printf("Codec:       %s\n", report.Codec)
		cmd.Printf("Records:     %d\n", report.Records)
		cmd.Printf("Valid bytes: %d of %d\n", report.ValidBytes, report.FileSize)
		cmd.Printf("Halt:        %s\n", report.Halt)
		if report.Error != "" {
			cmd.Printf("Error:       %s\n", report.Error)
		}

		if strict && report.Damaged() {
			return fmt.Errorf("log %s is damaged after byte %d", report.Path, report.ValidBytes)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().String("codec", codec.MsgpackName, "Frame codec (msgpack or proto)")
	verifyCmd.Flags().Bool("strict", false, "Fail if the log is damaged")
}
