package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ytget/yt-downloader-pro/internal/model"
)

func TestJobList_UpdateOrdersNewestFirst(t *testing.T) {
	jl := NewJobList(NewLocalization())

	jl.Update(model.DownloadTask{ID: "a"})
	jl.Update(model.DownloadTask{ID: "b"})
	jl.Update(model.DownloadTask{ID: "a", Percent: 50})

	assert.Equal(t, 2, jl.Len())
	assert.Equal(t, "b", jl.tasks[0].ID)

	a, ok := jl.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 50, a.Percent)

	_, ok = jl.Get("missing")
	assert.False(t, ok)
}

func TestRowTexts(t *testing.T) {
	task := model.DownloadTask{
		Request: model.DownloadRequest{SourceURL: "https://example.com/v"},
		Title:   "Line one\nline two",
		Status:  model.TaskStatusDownloading,
		Percent: 42,
	}
	assert.Equal(t, "Line one line two", rowTitle(task))
	assert.Equal(t, "Downloading · 42%", rowProgress(task))

	task.Status = model.TaskStatusCompleted
	assert.Equal(t, "Completed", rowProgress(task))

	task.Title = ""
	assert.Equal(t, "https://example.com/v", rowTitle(task))
}
