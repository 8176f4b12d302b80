package toolchain

import (
	"context"

	"github.com/ytget/yt-downloader-pro/internal/platform"
)

// CandidateResult is the outcome of verifying one candidate
type CandidateResult struct {
	Candidate
	Err error
}

// OK reports whether the candidate passed verification
func (r CandidateResult) OK() bool {
	return r.Err == nil
}

// Report is a full diagnostic snapshot of the environment
type Report struct {
	Candidates     []CandidateResult
	TranscoderPath string
	RuntimeCommand string
	RuntimePresent bool
	DownloadDir    string
	FreeBytes      uint64
	FreeSpaceErr   error
}

// Diagnose verifies every candidate instead of stopping at the first working one
func (p *Probe) Diagnose(ctx context.Context, downloadDir string) Report {
	r := Report{RuntimeCommand: p.opts.RuntimeCommand, DownloadDir: downloadDir}

	for _, c := range p.Candidates() {
		res := CandidateResult{Candidate: c, Err: p.Verify(ctx, c.Path)}
		if res.OK() && r.TranscoderPath == "" {
			r.TranscoderPath = c.Path
		}
		r.Candidates = append(r.Candidates, res)
	}

	r.RuntimePresent = p.CheckAuxiliaryRuntime(ctx)

	if downloadDir != "" {
		r.FreeBytes, r.FreeSpaceErr = platform.FreeSpace(downloadDir)
	}
	return r
}
