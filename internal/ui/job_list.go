package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-downloader-pro/internal/model"
)

// JobList shows every job submitted in this session, newest first.
// It must only be used from the UI goroutine.
type JobList struct {
	localization *Localization
	tasks        []model.DownloadTask
	header       *widget.Label
	list         *widget.List
}

// NewJobList creates an empty job list
func NewJobList(localization *Localization) *JobList {
	jl := &JobList{
		localization: localization,
		header:       widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	}
	jl.list = widget.NewList(
		func() int { return len(jl.tasks) },
		func() fyne.CanvasObject {
			title := widget.NewLabel("")
			title.Truncation = fyne.TextTruncateEllipsis
			return container.NewBorder(nil, nil, widget.NewLabel(""), widget.NewLabel(""), title)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(jl.tasks) {
				return
			}
			jl.render(jl.tasks[id], obj.(*fyne.Container))
		},
	)
	jl.Refresh()
	return jl
}

// Container returns the widget tree to embed
func (jl *JobList) Container() fyne.CanvasObject {
	return container.NewBorder(jl.header, nil, nil, nil, jl.list)
}

// Update inserts or replaces a task
func (jl *JobList) Update(task model.DownloadTask) {
	for i := range jl.tasks {
		if jl.tasks[i].ID == task.ID {
			jl.tasks[i] = task
			jl.list.RefreshItem(i)
			return
		}
	}
	jl.tasks = append([]model.DownloadTask{task}, jl.tasks...)
	jl.list.Refresh()
}

// Get returns the latest known state of a task
func (jl *JobList) Get(id string) (model.DownloadTask, bool) {
	for _, task := range jl.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return model.DownloadTask{}, false
}

// Len returns the number of tasks shown
func (jl *JobList) Len() int {
	return len(jl.tasks)
}

// Refresh re-renders texts after a language change
func (jl *JobList) Refresh() {
	jl.header.SetText(jl.localization.GetText(KeyRecentJobs))
	jl.list.Refresh()
}

// render fills one row: objects are title, format icon, progress
func (jl *JobList) render(task model.DownloadTask, row *fyne.Container) {
	title := row.Objects[0].(*widget.Label)
	icon := row.Objects[1].(*widget.Label)
	progress := row.Objects[2].(*widget.Label)

	title.SetText(rowTitle(task))
	if task.Request.Format == model.FormatAudio {
		icon.SetText(IconMusic)
	} else {
		icon.SetText(IconVideo)
	}
	progress.SetText(rowProgress(task))
}

// rowTitle cleans control characters that break single-line labels
func rowTitle(task model.DownloadTask) string {
	title := task.GetDisplayTitle()
	title = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(title)
	return strings.TrimSpace(title)
}

func rowProgress(task model.DownloadTask) string {
	if task.Status.IsFinished() {
		return task.Status.String()
	}
	return task.Status.String() + MiddleDotSeparator + fmt.Sprintf(ProgressLabelFormat, task.Percent)
}
