// Package model defines the domain values shared by the download pipeline and
// the UI: download requests, derived job options, typed progress events, the
// resolved toolchain, and the task records shown to the user.
package model
