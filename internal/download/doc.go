// Package download runs download jobs through yt-dlp
// (via github.com/lrstanley/go-ytdlp). The Runner drives one job and turns
// raw extractor progress into model.ProgressEvent values; the Service tracks
// submitted jobs as tasks for the UI, one independent worker per job.
package download
