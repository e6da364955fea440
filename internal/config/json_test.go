package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"cost":              6,
		"prefix":            "2a",
		"kdf_rounds":        16,
		"kdf_key_bytes":     64,
		"ignore_few_rounds": true,
		"truncate_long":     true,
		"log_level":         "warn",
		"log_format":        "json",
	})
	partial := writeTempJSON(t, dir, "partial.json", map[string]any{
		"kdf_rounds": 128,
	})

	t.Run("loads from flags", func(t *testing.T) {
		cfg := &Config{}
		parseJson(cfg, []string{"-config", full})

		assert.Equal(t, Config{
			Cost: 6, Prefix: "2a", KDFRounds: 16, KDFKeyBytes: 64,
			IgnoreFewRounds: true, TruncateLong: true, LogLevel: "warn", LogFormat: "json",
		}, *cfg)
	})

	t.Run("absent keys keep earlier values", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg, []string{"-c", partial})

		assert.Equal(t, uint32(128), cfg.KDFRounds)
		assert.Equal(t, 12, cfg.Cost)
		assert.Equal(t, "2b", cfg.Prefix)
	})

	t.Run("no flags → no changes", func(t *testing.T) {
		cfg := &Config{Cost: 7, Prefix: "2a"}
		parseJson(cfg, []string{"hash"})

		assert.Equal(t, Config{Cost: 7, Prefix: "2a"}, *cfg)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg, []string{"-config", bad}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg, []string{"-c", filepath.Join(dir, "nope.json")}) })
	})
}
