package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// dialogConfirmer asks a bootstrap question with a confirm dialog.
// Confirm blocks, so it must be called from a worker goroutine.
type dialogConfirmer struct {
	window   fyne.Window
	onAccept func()
}

// Confirm implements bootstrap.Confirmer
func (c *dialogConfirmer) Confirm(ctx context.Context, title, message string) bool {
	answer := make(chan bool, 1)
	fyne.Do(func() {
		dialog.ShowConfirm(title, message, func(ok bool) {
			answer <- ok
		}, c.window)
	})

	select {
	case ok := <-answer:
		if ok && c.onAccept != nil {
			c.onAccept()
		}
		return ok
	case <-ctx.Done():
		return false
	}
}
