package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	journalCmd := &cobra.Command{Use: "journal", Short: "Journal entry operations"}

	// add
	var mood int
	var gratitude, notes string
	var tags []string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a journal entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"mood": mood, "gratitude": gratitude}
			if notes != "" {
				payload["additionalNotes"] = notes
			}
			if len(tags) > 0 {
				payload["tags"] = tags
			}
			data, err := doPostJSON("/api/journal", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	addCmd.Flags().IntVarP(&mood, "mood", "m", 0, "Mood score 1-5 (required)")
	addCmd.Flags().StringVarP(&gratitude, "gratitude", "g", "", "Gratitude note (required)")
	addCmd.Flags().StringVar(&notes, "notes", "", "Additional notes")
	addCmd.Flags().StringSliceVar(&tags, "tags", nil, "Comma-separated tags")
	_ = addCmd.MarkFlagRequired("mood")
	_ = addCmd.MarkFlagRequired("gratitude")
	journalCmd.AddCommand(addCmd)

	// list
	var listDays int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List entries in the trailing window, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/journal", map[string]string{"days": strconv.Itoa(listDays)})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	listCmd.Flags().IntVarP(&listDays, "days", "d", 30, "Trailing window in days")
	journalCmd.AddCommand(listCmd)

	// stats
	var statsDays int
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show mood trend and average for the trailing window",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/journal/stats", map[string]string{"days": strconv.Itoa(statsDays)})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	statsCmd.Flags().IntVarP(&statsDays, "days", "d", 30, "Trailing window in days")
	journalCmd.AddCommand(statsCmd)

	rootCmd.AddCommand(journalCmd)
}
