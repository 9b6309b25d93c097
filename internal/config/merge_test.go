package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecoshare/internal/config"
)

// newDefaultTarget returns a Config with known non-zero values so tests can
// verify that absent overlay sections are left intact.
func newDefaultTarget() *config.Config {
	return &config.Config{
		Output: config.OutputConfig{
			DefaultFormat: "table",
			Precision:     2,
		},
		Logging: config.LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Cache: config.CacheConfig{
			Enabled:    true,
			TTLSeconds: 3600,
			Directory:  "/var/cache/ecoshare",
		},
		Server: config.ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"https://app.example.com"},
		},
	}
}

// writeOverlay writes YAML content to a temp file and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestShallowMergeYAML_SingleSectionOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
output:
  default_format: json
  precision: 4
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "json", target.Output.DefaultFormat)
	assert.Equal(t, 4, target.Output.Precision)

	assert.Equal(t, "info", target.Logging.Level)
	assert.True(t, target.Cache.Enabled)
	assert.Equal(t, ":8080", target.Server.Addr)
}

func TestShallowMergeYAML_MultipleSections(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
output:
  default_format: ndjson
  precision: 1
server:
  addr: ":9090"
  allowed_origins:
    - https://a.example.com
    - https://b.example.com
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "ndjson", target.Output.DefaultFormat)
	assert.Equal(t, ":9090", target.Server.Addr)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, target.Server.AllowedOrigins)
	assert.Equal(t, "/var/cache/ecoshare", target.Cache.Directory)
}

func TestShallowMergeYAML_SectionReplacedWhole(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
cache:
  ttl_seconds: 60
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	// Fields missing from a present section take their zero value.
	assert.Equal(t, 60, target.Cache.TTLSeconds)
	assert.False(t, target.Cache.Enabled)
	assert.Empty(t, target.Cache.Directory)
}

func TestShallowMergeYAML_NoSections(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"comments only", "# nothing here\n# at all\n"},
		{"unknown sections", "plugins:\n  foo: bar\nextra_key: 42\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := newDefaultTarget()
			original := newDefaultTarget()

			require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, tt.content)))
			assert.Equal(t, original.Output, target.Output)
			assert.Equal(t, original.Logging, target.Logging)
			assert.Equal(t, original.Cache, target.Cache)
			assert.Equal(t, original.Server, target.Server)
		})
	}
}

func TestShallowMergeYAML_ZeroValuesReplaceDefaults(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
output:
  default_format: table
  precision: 0
cache:
  enabled: false
  ttl_seconds: 0
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, 0, target.Output.Precision)
	assert.False(t, target.Cache.Enabled)
	assert.Equal(t, 0, target.Cache.TTLSeconds)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	t.Run("corrupted yaml", func(t *testing.T) {
		err := config.ShallowMergeYAML(newDefaultTarget(), writeOverlay(t, "{{{{not valid yaml at all"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing config YAML")
	})

	t.Run("wrong section type", func(t *testing.T) {
		err := config.ShallowMergeYAML(newDefaultTarget(), writeOverlay(t, "server: [1, 2]\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `applying config section "server"`)
	})

	t.Run("missing file", func(t *testing.T) {
		err := config.ShallowMergeYAML(newDefaultTarget(), filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading config file")
	})

	t.Run("nil target", func(t *testing.T) {
		require.Error(t, config.ShallowMergeYAML(nil, writeOverlay(t, "")))
	})
}
