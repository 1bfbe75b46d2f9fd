package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:5030", cfg.Addr)
	assert.Equal(t, time.Now().Year()-1, cfg.Year)
	assert.False(t, cfg.Debug)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "data_file: /tmp/chat.json\nyear: 2023\naddr: 0.0.0.0:8080\ntimezone: Asia/Shanghai\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/chat.json", cfg.DataFile)
	assert.Equal(t, 2023, cfg.Year)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr)
	assert.Equal(t, "Asia/Shanghai", cfg.Timezone)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLocation(t *testing.T) {
	cfg := &Config{Timezone: "Asia/Shanghai"}
	assert.Equal(t, "Asia/Shanghai", cfg.Location().String())

	cfg = &Config{Timezone: "Not/AZone"}
	assert.Equal(t, time.Local, cfg.Location())

	cfg = &Config{}
	assert.Equal(t, time.Local, cfg.Location())
}
