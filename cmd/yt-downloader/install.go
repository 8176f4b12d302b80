package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v6"
	"github.com/vbauerster/mpb/v6/decor"

	"github.com/ytget/yt-downloader-pro/internal/app"
)

var installCmd = &cobra.Command{
	Use:   "install-ffmpeg",
	Short: "Download a packaged FFmpeg build into the install directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		p := mpb.NewWithContext(ctx, mpb.WithWidth(64))
		var bar *mpb.Bar
		progress := func(written, total int64) {
			if bar == nil {
				bar = p.AddBar(total,
					mpb.PrependDecorators(decor.Name("ffmpeg", decor.WC{W: 7, C: decor.DidentRight})),
					mpb.AppendDecorators(decor.CountersKibiByte("% .1f / % .1f")),
				)
			}
			if total <= 0 {
				bar.SetTotal(written+1, false)
			}
			bar.SetCurrent(written)
		}

		a, err := newApp(ctx, app.Options{InstallProgress: progress})
		if err != nil {
			return err
		}
		defer a.Close()

		path, err := a.InstallTranscoder(ctx, &promptConfirmer{in: os.Stdin, out: os.Stdout, yes: yes})
		if bar != nil {
			if err != nil {
				bar.Abort(false)
			} else {
				bar.SetTotal(-1, true)
			}
		}
		p.Wait()

		if err != nil {
			return err
		}
		if path == "" {
			fmt.Println("Install cancelled")
			return nil
		}
		fmt.Printf("FFmpeg installed: %s\n", path)
		return nil
	},
}

func init() {
	installCmd.Flags().BoolP("yes", "y", false, "Install without asking")
}

// promptConfirmer asks a yes/no question on the terminal
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
	yes bool
}

func (c *promptConfirmer) Confirm(ctx context.Context, title, message string) bool {
	if c.yes {
		return true
	}
	fmt.Fprintf(c.out, "%s\n%s [y/N]: ", title, message)

	answer := make(chan string, 1)
	go func() {
		line, _ := bufio.NewReader(c.in).ReadString('\n')
		answer <- line
	}()

	select {
	case line := <-answer:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	case <-ctx.Done():
		return false
	}
}
