package logging

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "client.log")
	logger, err := New(path, "info", false)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("Client started")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Client started")
	assert.NotContains(t, string(data), "hidden")
}

func TestNewRejectsLevel(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "x.log"), "chatty", false)
	assert.Error(t, err)
}

func TestNewWithoutOutputs(t *testing.T) {
	logger, err := New("", "debug", false)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.log")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two\n"), 0644))

	target, err := Archive(path, time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "logs-20261014-093000.tar.gz"), target)

	f, err := os.Open(target)
	require.NoError(t, err)
	defer f.Close()
	gr, err := gzip.NewReader(f)
	require.NoError(t, err)
	tr := tar.NewReader(gr)
	hdr, err := tr.Next()
	require.NoError(t, err)
	assert.Equal(t, "server.log", hdr.Name)
	body, err := io.ReadAll(tr)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", string(body))
}

func TestArchiveMissing(t *testing.T) {
	_, err := Archive(filepath.Join(t.TempDir(), "nope.log"), time.Now())
	assert.Error(t, err)
}
