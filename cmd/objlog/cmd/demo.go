/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ssargent/objlog/pkg/store"
)

type demoPair struct {
	A uint32 `json:"a" msgpack:"a"`
	B uint32 `json:"b" msgpack:"b"`
}

type demoRecord struct {
	ID      uint32     `json:"id" msgpack:"id"`
	Comment string     `json:"comment" msgpack:"comment"`
	Objects []demoPair `json:"objects" msgpack:"objects"`
}

func demoRecords(n uint32) []demoRecord {
	records := make([]demoRecord, 0, n)
	for i := uint32(0); i < n; i++ {
		records = append(records, demoRecord{
			ID:      i,
			Comment: "test",
			Objects: []demoPair{{A: i, B: i}, {A: i, B: i}, {A: i, B: i}},
		})
	}
	return records
}

// demoCmd represents the demo command
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Write sample records to both log formats and read them back",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settingsFrom(cmd)
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetUint32("count")
		records := demoRecords(count)

		binary, err := store.OpenBinaryLog[demoRecord](s.logConfig(filepath.Join(s.config.DataDir, "demo.bin")))
		if err != nil {
			return err
		}
		defer binary.Close()

		text, err := store.OpenTextLog[demoRecord](s.logConfig(filepath.Join(s.config.DataDir, "demo.json")))
		if err != nil {
			return err
		}
		defer text.Close()

		for _, r := range records {
			if err := binary.Append(r); err != nil {
				return err
			}
			if err := text.Append(r); err != nil {
				return err
			}
		}
		cmd.Printf("Wrote %d records to %s and %s\n", len(records), binary.Path(), text.Path())

		got, halt, err := binary.ReadAll()
		if err != nil {
			return err
		}
		cmd.Printf("Binary log: %d records (%s)\n", len(got), halt.Reason)
		for _, r := range got {
			cmd.Printf("  %+v\n", r)
		}

		results, err := text.Records()
		if err != nil {
			return err
		}
		defer results.Close()

		n := 0
		for result := range results.All() {
			if result.Err != nil {
				return fmt.Errorf("text log offset %d: %w", result.Offset, result.Err)
			}
			n++
		}
		cmd.Printf("Text log: %d records\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().Uint32("count", 5, "Number of records to write")
}
