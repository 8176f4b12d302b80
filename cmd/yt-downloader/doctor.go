package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ytget/yt-downloader-pro/internal/app"
	"github.com/ytget/yt-downloader-pro/internal/toolchain"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Report which external tools were found and the free disk space",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = defaultOutputDir()
		}

		ctx := context.Background()
		a, err := newApp(ctx, app.Options{})
		if err != nil {
			return err
		}
		defer a.Close()

		printReport(a.Probe.Diagnose(ctx, output))
		return nil
	},
}

func init() {
	doctorCmd.Flags().StringP("output", "o", "", "Download directory to check (default ~/Downloads)")
}

func printReport(r toolchain.Report) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tPATH\tRESULT")
	for _, c := range r.Candidates {
		result := "ok"
		if !c.OK() {
			result = c.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Source, c.Path, result)
	}
	w.Flush()

	fmt.Println()
	if r.TranscoderPath != "" {
		fmt.Printf("ffmpeg:       %s\n", r.TranscoderPath)
	} else {
		fmt.Println("ffmpeg:       not found (run 'yt-downloader install-ffmpeg')")
	}
	runtimeState := "found"
	if !r.RuntimePresent {
		runtimeState = "not found"
	}
	fmt.Printf("JS runtime:   %s (%s)\n", r.RuntimeCommand, runtimeState)
	if r.FreeSpaceErr != nil {
		fmt.Printf("Free space:   unknown for %s: %v\n", r.DownloadDir, r.FreeSpaceErr)
	} else {
		fmt.Printf("Free space:   %s in %s\n", formatBytes(r.FreeBytes), r.DownloadDir)
	}
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
