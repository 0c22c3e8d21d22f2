package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"api_key": "test-key",
		"tone": "formal",
		"format": "pdf",
		"port": 9090,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "formal", cfg.Tone)
	assert.Equal(t, "pdf", cfg.Format)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Tone: "professional", Length: "medium", Format: "hwp", Port: 8080}
	assert.NoError(t, cfg.Validate())

	assert.Error(t, (&Config{Tone: "casual"}).Validate())
	assert.Error(t, (&Config{Length: "huge"}).Validate())
	assert.Error(t, (&Config{Format: "doc"}).Validate())
	assert.Error(t, (&Config{Port: 70000}).Validate())
	assert.Error(t, (&Config{Port: -1}).Validate())
}

func TestValidate_MissingPaths(t *testing.T) {
	cfg := &Config{Input: filepath.Join(t.TempDir(), "missing.hwp")}
	assert.Error(t, cfg.Validate())

	cfg = &Config{TemplateDir: filepath.Join(t.TempDir(), "missing-dir")}
	assert.Error(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{APIKey: "from-config"}
	merged := cfg.MergeWithDefaults(Config{
		APIKey:      "from-default",
		TemplateDir: "templates/hwp",
		Tone:        "formal",
		Port:        9000,
	})

	assert.Equal(t, "from-config", merged.APIKey, "existing values win")
	assert.Equal(t, "templates/hwp", merged.TemplateDir)
	assert.Equal(t, "formal", merged.Tone)
	assert.Equal(t, 9000, merged.Port)
}

func TestMergeWithDefaults_PortFallback(t *testing.T) {
	merged := (&Config{}).MergeWithDefaults(Config{})
	assert.Equal(t, 8080, merged.Port)
}
