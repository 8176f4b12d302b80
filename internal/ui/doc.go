// Package ui contains the Fyne desktop interface: a single form to paste a
// URL, preview it, pick audio or video and a quality ceiling, and follow the
// download progress. All UI strings are localized via Localization and every
// widget mutation from a worker goroutine goes through fyne.Do.
package ui
