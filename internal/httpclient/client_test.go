package httpclient

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ytget/yt-downloader-pro/internal/config"
	"go.uber.org/zap/zaptest"
)

func testNetworkConfig() config.NetworkConfig {
	return config.NetworkConfig{
		RetryMax:     2,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
		Timeout:      10 * time.Second,
	}
}

func TestNew_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := New(testNetworkConfig(), zaptest.NewLogger(t))

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestNew_GivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(testNetworkConfig(), nil)

	_, err := client.Get(srv.URL)
	assert.Error(t, err)
}

func TestNew_Timeout(t *testing.T) {
	cfg := testNetworkConfig()
	cfg.Timeout = 3 * time.Second

	client := New(cfg, nil)
	assert.Equal(t, 3*time.Second, client.Timeout)
}
