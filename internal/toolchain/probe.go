package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/ytget/yt-downloader-pro/internal/model"
	"github.com/ytget/yt-downloader-pro/internal/platform"
	"go.uber.org/zap"
)

// Defaults used when Options leaves a field empty
const (
	DefaultTimeout        = 5 * time.Second
	DefaultRuntimeCommand = "node"
	TranscoderName        = "ffmpeg"
)

// Candidate sources in resolution order
const (
	SourceOverride  = "config"
	SourceInstalled = "installed"
	SourceBundled   = "bundled"
	SourceWorkDir   = "workdir"
	SourceExeDir    = "exedir"
	SourcePath      = "path"
)

var lookPath = exec.LookPath

// ErrTimeout is wrapped by ProbeError when a candidate did not answer in time
var ErrTimeout = errors.New("probe timed out")

// ProbeError describes why a candidate was rejected
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// Options controls where the probe looks
type Options struct {
	OverridePath   string // explicit path from configuration
	InstalledPath  string // path left by a previous bootstrap install
	ExeDir         string // directory of the running binary, empty to skip
	WorkDir        string // working directory, empty to skip
	RuntimeCommand string
	Timeout        time.Duration
}

// Candidate is one location the transcoder may live at
type Candidate struct {
	Source string
	Path   string
}

// Probe resolves the transcoder and checks the auxiliary runtime
type Probe struct {
	opts     Options
	logger   *zap.Logger
	lookPath func(string) (string, error)
}

// NewProbe creates a probe. A nil logger disables logging.
func NewProbe(opts Options, logger *zap.Logger) *Probe {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RuntimeCommand == "" {
		opts.RuntimeCommand = DefaultRuntimeCommand
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Probe{opts: opts, logger: logger, lookPath: lookPath}
}

// DefaultOptions fills the executable and working directories from the process
func DefaultOptions() Options {
	opts := Options{Timeout: DefaultTimeout, RuntimeCommand: DefaultRuntimeCommand}
	if dir, err := platform.ExecutableDir(); err == nil {
		opts.ExeDir = dir
	}
	if dir, err := os.Getwd(); err == nil {
		opts.WorkDir = dir
	}
	return opts
}

// Candidates lists the transcoder locations in the order they are tried.
// The PATH lookup is included only when it finds something.
func (p *Probe) Candidates() []Candidate {
	exe := platform.ExecutableName(TranscoderName)

	var out []Candidate
	add := func(source, path string) {
		if path != "" {
			out = append(out, Candidate{Source: source, Path: path})
		}
	}

	add(SourceOverride, p.opts.OverridePath)
	add(SourceInstalled, p.opts.InstalledPath)
	if p.opts.ExeDir != "" {
		add(SourceBundled, filepath.Join(p.opts.ExeDir, TranscoderName, "bin", exe))
	}
	if p.opts.WorkDir != "" {
		add(SourceWorkDir, filepath.Join(p.opts.WorkDir, TranscoderName, "bin", exe))
	}
	if p.opts.ExeDir != "" {
		add(SourceExeDir, filepath.Join(p.opts.ExeDir, exe))
	}
	if found, err := p.lookPath(TranscoderName); err == nil {
		add(SourcePath, found)
	}
	return out
}

// ResolveTranscoder returns the first candidate that is a regular file and
// answers -version with exit status 0 within the timeout
func (p *Probe) ResolveTranscoder(ctx context.Context) (string, bool) {
	for _, c := range p.Candidates() {
		if err := p.Verify(ctx, c.Path); err != nil {
			p.logger.Debug("Transcoder candidate rejected",
				zap.String("source", c.Source),
				zap.String("path", c.Path),
				zap.Error(err))
			continue
		}
		p.logger.Info("Transcoder found",
			zap.String("source", c.Source),
			zap.String("path", c.Path))
		return c.Path, true
	}
	p.logger.Warn("No working transcoder found")
	return "", false
}

// Verify checks a single transcoder candidate
func (p *Probe) Verify(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &ProbeError{Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return &ProbeError{Path: path, Err: errors.New("not a regular file")}
	}
	return p.run(ctx, path, "-version")
}

// CheckAuxiliaryRuntime reports whether the JavaScript runtime answers -v.
// Failures are logged, never returned.
func (p *Probe) CheckAuxiliaryRuntime(ctx context.Context) bool {
	path, err := p.lookPath(p.opts.RuntimeCommand)
	if err != nil {
		p.logger.Warn("Runtime not found", zap.String("command", p.opts.RuntimeCommand))
		return false
	}
	if err := p.run(ctx, path, "-v"); err != nil {
		p.logger.Warn("Runtime check failed", zap.String("path", path), zap.Error(err))
		return false
	}
	return true
}

// Detect resolves the full toolchain state
func (p *Probe) Detect(ctx context.Context) model.Toolchain {
	path, _ := p.ResolveTranscoder(ctx)
	return model.Toolchain{
		TranscoderPath: path,
		RuntimePresent: p.CheckAuxiliaryRuntime(ctx),
	}
}

func (p *Probe) run(ctx context.Context, path string, args ...string) error {
	runCtx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, path, args...)
	err := cmd.Run()
	if runCtx.Err() == context.DeadlineExceeded {
		return &ProbeError{Path: path, Err: ErrTimeout}
	}
	if err != nil {
		return &ProbeError{Path: path, Err: err}
	}
	return nil
}
