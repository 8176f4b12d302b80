package platform

// Package platform contains OS/platform integration: download directory
// defaults, directory preparation and free-space checks, executable naming,
// and opening folders in the system file manager.
