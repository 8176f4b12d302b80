// Package httpclient builds the retrying HTTP client shared by the ffmpeg
// installer and the thumbnail preview.
package httpclient

import (
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/ytget/yt-downloader-pro/internal/config"
	"go.uber.org/zap"
)

// New creates a standard *http.Client backed by retryablehttp
func New(cfg config.NetworkConfig, logger *zap.Logger) *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = nil // Silence default debug logger

	if logger != nil {
		retryClient.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
			if attempt > 0 {
				logger.Debug("Retrying request",
					zap.String("url", req.URL.String()),
					zap.Int("attempt", attempt))
			}
		}
	}

	client := retryClient.StandardClient()
	client.Timeout = cfg.Timeout
	return client
}
