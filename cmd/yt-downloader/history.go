package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ytget/yt-downloader-pro/internal/app"
	"github.com/ytget/yt-downloader-pro/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent downloads",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(context.Background(), app.Options{})
		if err != nil {
			return err
		}
		defer a.Close()

		records, err := a.History.List(limit)
		if err != nil {
			return fmt.Errorf("failed to list history: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No downloads recorded")
			return nil
		}
		printHistory(records)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", history.DefaultListLimit, "Number of records to show")
}

func printHistory(records []*history.Record) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tSTATUS\tFORMAT\tTITLE")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Status,
			r.Format.Label(),
			truncate(r.DisplayTitle(), 60))
	}
	w.Flush()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
