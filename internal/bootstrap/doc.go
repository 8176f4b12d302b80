// Package bootstrap offers to download a packaged ffmpeg build when none was
// found on the machine, unpacks it into a dedicated directory and returns the
// path of the executable.
package bootstrap
