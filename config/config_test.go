package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zethon.json")
	cfg := NewConfig(path)
	require.NoError(t, cfg.Load())

	assert.Equal(t, SinkLog, cfg.Sink)
	assert.Equal(t, "Zethon.vip", cfg.ForumName)
	assert.Equal(t, "localhost:8999", cfg.Addr())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, "log", onDisk["sink"])
}

func TestLoadFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zethon.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"forum_name":"Test Forum","sink":"noop"}`), 0644))

	cfg := NewConfig(path)
	require.NoError(t, cfg.Load())
	assert.Equal(t, "Test Forum", cfg.ForumName)
	assert.Equal(t, SinkNoop, cfg.Sink)
	assert.Equal(t, "logs/client.log", cfg.LogFile)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "remote_retries")
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zethon.json")
	t.Setenv("ZETHON_SINK", "Remote")
	t.Setenv("ZETHON_REMOTE_HOST", "collector:9000")
	t.Setenv("ZETHON_REMOTE_RETRIES", "7")
	t.Setenv("ZETHON_COLLECTOR_PORT", "9000")

	cfg := NewConfig(path)
	require.NoError(t, cfg.Load())
	assert.Equal(t, SinkRemote, cfg.Sink)
	assert.Equal(t, "collector:9000", cfg.RemoteHost)
	assert.Equal(t, 7, cfg.RemoteRetries)
	assert.Equal(t, "localhost:9000", cfg.Addr())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "collector:9000")
}

func TestLoadRejects(t *testing.T) {
	t.Run("bad json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "zethon.json")
		require.NoError(t, os.WriteFile(path, []byte(`{`), 0644))
		assert.Error(t, NewConfig(path).Load())
	})

	t.Run("unknown sink", func(t *testing.T) {
		t.Setenv("ZETHON_SINK", "carrier-pigeon")
		err := NewConfig(filepath.Join(t.TempDir(), "zethon.json")).Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "carrier-pigeon")
	})

	t.Run("bad retries", func(t *testing.T) {
		t.Setenv("ZETHON_REMOTE_RETRIES", "many")
		assert.Error(t, NewConfig(filepath.Join(t.TempDir(), "zethon.json")).Load())
	})
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zethon.json")
	cfg := NewConfig(path)
	cfg.Tagline = "changed"
	require.NoError(t, cfg.Save())

	again := NewConfig(path)
	require.NoError(t, again.Load())
	assert.Equal(t, "changed", again.Tagline)
}
