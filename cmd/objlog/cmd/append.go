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

// appendCmd represents the append command
var appendCmd = &cobra.Command{
	Use:   "append <json>...",
	Short: "Append records to a log",
	Long: `Append one record per argument. Each argument must be a JSON value; it is
stored wrapped in an entry with a generated id and timestamp.`,
	Example: `  objlog append '{"user":"ada","action":"login"}'
  objlog append --format text '[1,2,3]' '"plain string"'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settingsFrom(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		if err := checkFormat(format); err != nil {
			return err
		}

		entries := make([]api.Entry, 0, len(args))
		for i, arg := range args {
			var data any
			if err := json.Unmarshal([]byte(arg), &data); err != nil {
				return fmt.Errorf("argument %d is not valid JSON: %w", i+1, err)
			}
			entries = append(entries, api.NewEntry(data))
		}

		var appendEntry func(api.Entry) error
		switch format {
		case api.FormatBinary:
			log, err := s.openBinary()
			if err != nil {
				return err
			}
			defer log.Close()
			appendEntry = log.Append
		case api.FormatText:
			log, err := s.openText()
			if err != nil {
				return err
			}
			defer log.Close()
			appendEntry = log.Append
		}

		for _, entry := range entries {
			if err := appendEntry(entry); err != nil {
				return err
			}
			s.logger.Debug("appended entry", "format", format, "id", entry.ID)
			cmd.Println(entry.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(appendCmd)
	appendCmd.Flags().StringP("format", "f", api.FormatBinary, "Log format (binary or text)")
}
