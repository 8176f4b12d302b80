package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDownloading_ClampsPercent(t *testing.T) {
	assert.Equal(t, 0, Downloading(-5, "").Percent)
	assert.Equal(t, 100, Downloading(140, "").Percent)
	assert.Equal(t, 57, Downloading(57, "").Percent)
}

func TestProgressEvent_Signals(t *testing.T) {
	tests := []struct {
		name       string
		event      ProgressEvent
		status     string
		percent    int
		hasPercent bool
		speed      string
		terminal   bool
	}{
		{"downloading", Downloading(10, "2.0MiB/s"), StatusTextDownloading, 10, true, "Speed: 2.0MiB/s", false},
		{"downloading without speed", Downloading(10, ""), StatusTextDownloading, 10, true, SpeedTextUnknown, false},
		{"finalizing", Finalizing(), StatusTextFinalizing, FinalizingPercent, true, SpeedTextUnknown, false},
		{"completed", Completed(), StatusTextCompleted, 100, true, SpeedTextUnknown, true},
		{"failed", Failed("boom"), "Error: boom", 0, false, SpeedTextUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.event.StatusText())
			p, ok := tt.event.ProgressPercent()
			assert.Equal(t, tt.hasPercent, ok)
			assert.Equal(t, tt.percent, p)
			assert.Equal(t, tt.speed, tt.event.SpeedText())
			assert.Equal(t, tt.terminal, tt.event.IsTerminal())
		})
	}
}

func TestToolchain_WithTranscoder(t *testing.T) {
	var tc Toolchain
	assert.False(t, tc.HasTranscoder())

	updated := tc.WithTranscoder("/usr/bin/ffmpeg")
	assert.True(t, updated.HasTranscoder())
	assert.False(t, tc.HasTranscoder(), "original value must not change")
}
