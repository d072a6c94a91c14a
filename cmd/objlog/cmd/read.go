/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/objlog/pkg/api"
)

// readCmd represents the read command
var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Print every record in a log",
	Long: `Print the records of a log in append order, one JSON document per line.

A binary log stops at the first torn or corrupted frame; where and why is
reported on stderr. A text log reports each bad element on stderr and keeps
going where it can.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settingsFrom(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		if err := checkFormat(format); err != nil {
			return err
		}

		if format == api.FormatText {
			return readText(cmd, s)
		}
		return readBinary(cmd, s)
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().StringP("format", "f", api.FormatBinary, "Log format (binary or text)")
}

func readBinary(cmd *cobra.Command, s *settings) error {
	log, err := s.openBinary()
	if err != nil {
		return err
	}
	defer log.Close()

	records, err := log.Records()
	if err != nil {
		return err
	}
	defer records.Close()

	enc := json.NewEncoder(cmd.OutOrStdout())
	for entry := range records.All() {
		if err := enc.Encode(entry); err != nil {
			return err
		}
	}

	if halt := records.Halt(); !halt.Clean() {
		fmt.Fprintf(cmd.ErrOrStderr(), "stopped after %d records at offset %d: %s: %v\n",
			halt.Records, halt.Offset, halt.Reason, halt.Err)
	}
	return nil
}

func readText(cmd *cobra.Command, s *settings) error {
	log, err := s.openText()
	if err != nil {
		return err
	}
	defer log.Close()

	records, err := log.Records()
	if err != nil {
		return err
	}
	defer records.Close()

	enc := json.NewEncoder(cmd.OutOrStdout())
	for result := range records.All() {
		if result.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "offset %d: %v\n", result.Offset, result.Err)
			continue
		}
		if err := enc.Encode(result.Value); err != nil {
			return err
		}
	}
	return nil
}
