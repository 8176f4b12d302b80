package bootstrap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ytget/yt-downloader-pro/internal/platform"
	"go.uber.org/zap"
)

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(ctx context.Context, title, message string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, title, message string) bool

// Confirm calls f
func (f ConfirmFunc) Confirm(ctx context.Context, title, message string) bool {
	return f(ctx, title, message)
}

// ProgressFunc receives archive download progress. total is -1 when unknown.
type ProgressFunc func(written, total int64)

// Options configures the installer
type Options struct {
	ArchiveURL     string
	SizeHint       string // e.g. "~80 MB", shown in the question
	InstallDir     string
	ExecutableName string // defaults to ffmpeg with the platform suffix
	Progress       ProgressFunc
}

// Installer downloads and unpacks a packaged transcoder
type Installer struct {
	opts   Options
	client *http.Client
	logger *zap.Logger
}

// NewInstaller creates an installer. A nil client uses http.DefaultClient.
func NewInstaller(opts Options, client *http.Client, logger *zap.Logger) *Installer {
	if opts.ExecutableName == "" {
		opts.ExecutableName = platform.ExecutableName("ffmpeg")
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Installer{opts: opts, client: client, logger: logger}
}

// Title is the heading of the confirmation question
func (i *Installer) Title() string {
	return "FFmpeg not found"
}

// Question is the confirmation text naming the approximate download size
func (i *Installer) Question() string {
	size := i.opts.SizeHint
	if size == "" {
		size = "an unknown size"
	}
	return fmt.Sprintf("FFmpeg is required to merge video and convert audio.\n"+
		"Download a packaged build now (%s)?", size)
}

// Installed returns the executable left by a previous install, or "" when there is none
func (i *Installer) Installed() string {
	if i.opts.InstallDir == "" {
		return ""
	}
	path, err := findExecutable(i.opts.InstallDir, i.opts.ExecutableName)
	if err != nil {
		return ""
	}
	return path
}

// OfferAndInstall asks for confirmation and installs on acceptance.
// A declined offer returns an empty path and a nil error.
func (i *Installer) OfferAndInstall(ctx context.Context, c Confirmer) (string, error) {
	if !c.Confirm(ctx, i.Title(), i.Question()) {
		i.logger.Info("Transcoder install declined")
		return "", nil
	}
	return i.Install(ctx)
}

// Install downloads, extracts and locates the executable without asking.
// The archive is unpacked next to the install directory and swapped in only
// once the executable was found, so a failed install leaves a previous one intact.
func (i *Installer) Install(ctx context.Context) (string, error) {
	i.logger.Info("Installing transcoder",
		zap.String("url", i.opts.ArchiveURL),
		zap.String("dir", i.opts.InstallDir))

	path, err := i.install(ctx)
	if err != nil {
		i.logger.Error("Transcoder install failed", zap.Error(err))
		return "", err
	}

	i.logger.Info("Transcoder installed", zap.String("path", path))
	return path, nil
}

func (i *Installer) install(ctx context.Context) (string, error) {
	archive, err := i.download(ctx)
	if err != nil {
		return "", &Error{Stage: StageDownload, Err: err}
	}
	defer os.Remove(archive)

	parent := filepath.Dir(i.opts.InstallDir)
	if err := platform.CreateDirectoryIfNotExists(parent); err != nil {
		return "", &Error{Stage: StageExtract, Err: err}
	}
	staging, err := os.MkdirTemp(parent, filepath.Base(i.opts.InstallDir)+stagingSuffix)
	if err != nil {
		return "", &Error{Stage: StageExtract, Err: err}
	}
	defer os.RemoveAll(staging)

	if err := extractArchive(archive, staging); err != nil {
		return "", &Error{Stage: StageExtract, Err: err}
	}

	staged, err := findExecutable(staging, i.opts.ExecutableName)
	if err != nil {
		return "", &Error{Stage: StageLocate, Err: err}
	}
	rel, err := filepath.Rel(staging, staged)
	if err != nil {
		return "", &Error{Stage: StageLocate, Err: err}
	}

	if runtime.GOOS != platform.OSWindows {
		if err := os.Chmod(staged, platform.DefaultExecPermissions); err != nil {
			return "", &Error{Stage: StageLocate, Err: err}
		}
	}

	if err := swapDir(staging, i.opts.InstallDir); err != nil {
		return "", &Error{Stage: StageExtract, Err: err}
	}
	return filepath.Join(i.opts.InstallDir, rel), nil
}

// stagingSuffix names the temporary siblings of the install directory
const stagingSuffix = ".staging-*"

// swapDir replaces dst with src. A previous dst is restored if the rename fails.
func swapDir(src, dst string) error {
	backup := ""
	if _, err := os.Stat(dst); err == nil {
		backup = dst + ".old"
		if err := os.RemoveAll(backup); err != nil {
			return err
		}
		if err := os.Rename(dst, backup); err != nil {
			return fmt.Errorf("failed to move previous install aside: %w", err)
		}
	}

	if err := os.Rename(src, dst); err != nil {
		if backup != "" {
			os.Rename(backup, dst)
		}
		return fmt.Errorf("failed to move install into place: %w", err)
	}

	if backup != "" {
		os.RemoveAll(backup)
	}
	return nil
}

// download saves the archive to a temporary file and returns its path
func (i *Installer) download(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.opts.ArchiveURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "ffmpeg-archive-*")
	if err != nil {
		return "", err
	}

	var body io.Reader = resp.Body
	if i.opts.Progress != nil {
		body = &progressReader{r: resp.Body, total: resp.ContentLength, fn: i.opts.Progress}
	}

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to save archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

type progressReader struct {
	r       io.Reader
	written int64
	total   int64
	fn      ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.written += int64(n)
		p.fn(p.written, p.total)
	}
	return n, err
}
