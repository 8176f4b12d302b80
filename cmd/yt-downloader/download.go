package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v6"
	"github.com/vbauerster/mpb/v6/decor"

	"github.com/ytget/yt-downloader-pro/internal/app"
	"github.com/ytget/yt-downloader-pro/internal/model"
	"github.com/ytget/yt-downloader-pro/internal/platform"
)

var downloadCmd = &cobra.Command{
	Use:   "download [url]",
	Short: "Download a single video or its audio track",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatFlag, _ := cmd.Flags().GetString("format")
		qualityFlag, _ := cmd.Flags().GetString("quality")
		output, _ := cmd.Flags().GetString("output")

		format, err := model.ParseFormat(formatFlag)
		if err != nil {
			return err
		}
		quality, err := model.ParseQuality(qualityFlag)
		if err != nil {
			return err
		}
		if output == "" {
			output = defaultOutputDir()
		}
		if err := platform.EnsureWritableDirectory(output); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		a, err := newApp(ctx, app.Options{})
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.EnsureExtractor(ctx); err != nil {
			return err
		}

		return runDownload(ctx, a, model.DownloadRequest{
			SourceURL: args[0],
			OutputDir: output,
			Format:    format,
			Quality:   quality,
		})
	},
}

func init() {
	downloadCmd.Flags().StringP("format", "f", "mp4", "Output format: mp4 (video) or mp3 (audio)")
	downloadCmd.Flags().StringP("quality", "q", "best", "Maximum video height: best, 1080, 720, 480")
	downloadCmd.Flags().StringP("output", "o", "", "Output directory (default ~/Downloads)")
}

// runDownload submits the request and renders its progress until the terminal event
func runDownload(ctx context.Context, a *app.App, req model.DownloadRequest) error {
	var lastSpeed atomic.Value
	lastSpeed.Store(model.SpeedTextUnknown)

	p := mpb.NewWithContext(ctx, mpb.WithWidth(64))
	bar := p.AddBar(100,
		mpb.PrependDecorators(
			decor.Name(req.Format.Label(), decor.WC{W: 4, C: decor.DidentRight}),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.Any(func(decor.Statistics) string {
				speed, _ := lastSpeed.Load().(string)
				return speed
			}),
		),
	)

	final := make(chan model.DownloadTask, 1)
	a.Downloads.SetUpdateCallback(func(task model.DownloadTask) {
		bar.SetCurrent(int64(task.Percent))
		lastSpeed.Store(task.SpeedText())
		if task.Status.IsFinished() {
			select {
			case final <- task:
			default:
			}
		}
	})

	submitted, err := a.Downloads.Submit(req)
	if err != nil {
		bar.Abort(true)
		p.Wait()
		return err
	}

	var task model.DownloadTask
	select {
	case task = <-final:
	case <-ctx.Done():
		bar.Abort(false)
		p.Wait()
		return ctx.Err()
	}

	// The title and the history row are written after the terminal event
	waitErr := a.Downloads.Wait(ctx)
	if latest, ok := a.Downloads.GetTask(submitted.ID); ok {
		task = latest
	}

	if task.Status == model.TaskStatusError {
		bar.Abort(false)
		p.Wait()
		return errors.New(task.StatusText)
	}
	if waitErr != nil {
		bar.Abort(false)
		p.Wait()
		return waitErr
	}

	bar.SetTotal(100, true)
	p.Wait()
	fmt.Printf("%s: %s\n", model.StatusTextCompleted, task.GetDisplayTitle())
	return nil
}

// defaultOutputDir mirrors the GUI default
func defaultOutputDir() string {
	if dir, err := platform.GetHomeDownloadsDir(); err == nil {
		return dir
	}
	if dir, err := os.Getwd(); err == nil {
		return dir
	}
	return filepath.Clean(os.TempDir())
}
