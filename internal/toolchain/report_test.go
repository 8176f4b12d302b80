package toolchain

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnose_ReportsEveryCandidate(t *testing.T) {
	skipOnWindows(t)
	exeDir := t.TempDir()
	workDir := t.TempDir()
	writeScript(t, filepath.Join(exeDir, "ffmpeg", "bin", "ffmpeg"), "exit 0")
	writeScript(t, filepath.Join(workDir, "ffmpeg", "bin", "ffmpeg"), "exit 3")

	p := newTestProbe(t, Options{ExeDir: exeDir, WorkDir: workDir})
	downloadDir := t.TempDir()

	r := p.Diagnose(context.Background(), downloadDir)

	require.Len(t, r.Candidates, 3)
	assert.True(t, r.Candidates[0].OK())
	assert.False(t, r.Candidates[1].OK())
	assert.False(t, r.Candidates[2].OK())
	assert.Equal(t, r.Candidates[0].Path, r.TranscoderPath)
	assert.Equal(t, DefaultRuntimeCommand, r.RuntimeCommand)
	assert.Equal(t, downloadDir, r.DownloadDir)
	assert.NoError(t, r.FreeSpaceErr)
	assert.NotZero(t, r.FreeBytes)
}

func TestDiagnose_NoDownloadDir(t *testing.T) {
	p := newTestProbe(t, Options{})
	r := p.Diagnose(context.Background(), "")

	assert.Empty(t, r.Candidates)
	assert.Empty(t, r.TranscoderPath)
	assert.Zero(t, r.FreeBytes)
	assert.NoError(t, r.FreeSpaceErr)
}
