package bootstrap

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func zipArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func tarGzArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, body := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0644,
			Size:     int64(len(body)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func serve(t *testing.T, status int, payload []byte) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(status)
		w.Write(payload)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestInstaller(t *testing.T, srv *httptest.Server) (*Installer, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "ffmpeg")
	inst := NewInstaller(Options{
		ArchiveURL:     srv.URL + "/ffmpeg.zip",
		SizeHint:       "~30 MB",
		InstallDir:     dir,
		ExecutableName: "ffmpeg",
	}, srv.Client(), zaptest.NewLogger(t))
	return inst, dir
}

func answer(yes bool) Confirmer {
	return ConfirmFunc(func(context.Context, string, string) bool { return yes })
}

func TestQuestion_NamesSize(t *testing.T) {
	inst := NewInstaller(Options{SizeHint: "~80 MB"}, nil, nil)
	assert.Contains(t, inst.Question(), "~80 MB")
	assert.NotEmpty(t, inst.Title())
}

func TestOfferAndInstall_Declined(t *testing.T) {
	srv, hits := serve(t, http.StatusOK, nil)
	inst, dir := newTestInstaller(t, srv)

	path, err := inst.OfferAndInstall(context.Background(), answer(false))
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
	assert.NoDirExists(t, dir)
}

func TestOfferAndInstall_Zip(t *testing.T) {
	payload := zipArchive(t, map[string]string{
		"ffmpeg-7.0/README.txt":  "readme",
		"ffmpeg-7.0/bin/ffmpeg":  "binary",
		"ffmpeg-7.0/bin/ffprobe": "binary",
	})
	srv, _ := serve(t, http.StatusOK, payload)
	inst, dir := newTestInstaller(t, srv)

	path, err := inst.OfferAndInstall(context.Background(), answer(true))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ffmpeg-7.0", "bin", "ffmpeg"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.NotZero(t, info.Mode().Perm()&0111, "executable bit should be set")
	}
}

func TestInstalled(t *testing.T) {
	payload := zipArchive(t, map[string]string{"bin/ffmpeg": "binary"})
	srv, _ := serve(t, http.StatusOK, payload)
	inst, dir := newTestInstaller(t, srv)

	assert.Empty(t, inst.Installed(), "nothing installed yet")

	path, err := inst.Install(context.Background())
	require.NoError(t, err)
	assert.Equal(t, path, inst.Installed())
	assert.Equal(t, filepath.Join(dir, "bin", "ffmpeg"), inst.Installed())
}

func TestInstall_TarGz(t *testing.T) {
	payload := tarGzArchive(t, map[string]string{
		"ffmpeg-release/ffmpeg": "binary",
	})
	srv, _ := serve(t, http.StatusOK, payload)
	inst, dir := newTestInstaller(t, srv)

	path, err := inst.Install(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ffmpeg-release", "ffmpeg"), path)
}

func TestInstall_ReportsProgress(t *testing.T) {
	payload := zipArchive(t, map[string]string{"ffmpeg": "binary"})
	srv, _ := serve(t, http.StatusOK, payload)
	inst, _ := newTestInstaller(t, srv)

	var last int64
	inst.opts.Progress = func(written, total int64) { last = written }

	_, err := inst.Install(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), last)
}

// assertNoStaging checks that no temporary sibling of the install dir is left behind
func assertNoStaging(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(filepath.Dir(dir), filepath.Base(dir)+".staging-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.NoDirExists(t, dir+".old")
}

func TestInstall_DownloadFailureKeepsPreviousInstall(t *testing.T) {
	srv, _ := serve(t, http.StatusServiceUnavailable, nil)
	inst, dir := newTestInstaller(t, srv)

	previous := filepath.Join(dir, "bin", "ffmpeg")
	require.NoError(t, os.MkdirAll(filepath.Dir(previous), 0755))
	require.NoError(t, os.WriteFile(previous, []byte("working build"), 0755))

	_, err := inst.Install(context.Background())
	require.ErrorIs(t, err, ErrDownload)

	data, err := os.ReadFile(previous)
	require.NoError(t, err)
	assert.Equal(t, "working build", string(data))
	assert.Equal(t, previous, inst.Installed())
}

func TestInstall_ExtractFailureKeepsPreviousInstall(t *testing.T) {
	payload := zipArchive(t, map[string]string{"docs/readme.txt": "no binary here"})
	srv, _ := serve(t, http.StatusOK, payload)
	inst, dir := newTestInstaller(t, srv)

	previous := filepath.Join(dir, "bin", "ffmpeg")
	require.NoError(t, os.MkdirAll(filepath.Dir(previous), 0755))
	require.NoError(t, os.WriteFile(previous, []byte("working build"), 0755))

	_, err := inst.Install(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	assert.FileExists(t, previous)
	assertNoStaging(t, dir)
}

func TestInstall_DownloadFailure(t *testing.T) {
	srv, _ := serve(t, http.StatusNotFound, []byte("missing"))
	inst, dir := newTestInstaller(t, srv)

	path, err := inst.Install(context.Background())
	assert.Empty(t, path)
	assert.ErrorIs(t, err, ErrDownload)
	assert.NotErrorIs(t, err, ErrExtract)

	var bErr *Error
	require.ErrorAs(t, err, &bErr)
	assert.Equal(t, StageDownload, bErr.Stage)
	assert.NoDirExists(t, dir)
	assertNoStaging(t, dir)
}

func TestInstall_ExtractFailure(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, []byte("this is not an archive"))
	inst, dir := newTestInstaller(t, srv)

	path, err := inst.Install(context.Background())
	assert.Empty(t, path)
	assert.ErrorIs(t, err, ErrExtract)
	assert.NoDirExists(t, dir)
	assertNoStaging(t, dir)
}

func TestInstall_RejectsZipSlip(t *testing.T) {
	payload := zipArchive(t, map[string]string{"../evil": "x"})
	srv, _ := serve(t, http.StatusOK, payload)
	inst, dir := newTestInstaller(t, srv)

	_, err := inst.Install(context.Background())
	assert.ErrorIs(t, err, ErrExtract)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dir), "evil"))
}

func TestInstall_ExecutableMissing(t *testing.T) {
	payload := zipArchive(t, map[string]string{"docs/ffmpeg.html": "docs"})
	srv, _ := serve(t, http.StatusOK, payload)
	inst, dir := newTestInstaller(t, srv)

	path, err := inst.Install(context.Background())
	assert.Empty(t, path)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoDirExists(t, dir)
	assertNoStaging(t, dir)
}

func TestInstall_ReplacesPreviousInstall(t *testing.T) {
	payload := zipArchive(t, map[string]string{"bin/ffmpeg": "binary"})
	srv, _ := serve(t, http.StatusOK, payload)
	inst, dir := newTestInstaller(t, srv)

	stale := filepath.Join(dir, "stale", "ffmpeg")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0755))

	path, err := inst.Install(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "bin", "ffmpeg"), path)
	assert.NoFileExists(t, stale)
	assertNoStaging(t, dir)
}

func TestError_Messages(t *testing.T) {
	err := &Error{Stage: StageLocate}
	assert.Equal(t, ErrNotFound.Error(), err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
}
