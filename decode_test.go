package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverSettings struct {
	Host    string        `toml:"host"`
	Port    int           `toml:"port"`
	Timeout time.Duration `toml:"timeout"`
	Tags    []string      `toml:"tags"`
}

// TestScan tests decoding a subtree into a struct
func TestScan(t *testing.T) {
	c := New()
	require.NoError(t, c.Merge(Map{Values: map[string]any{
		"server": map[string]any{
			"host":    "example.com",
			"port":    8080,
			"timeout": "90s",
			"tags":    []any{"web", "api"},
		},
	}}))

	var s serverSettings
	require.NoError(t, c.Scan("server", &s))

	assert.Equal(t, "example.com", s.Host)
	assert.Equal(t, 8080, s.Port)
	assert.Equal(t, 90*time.Second, s.Timeout)
	assert.Equal(t, []string{"web", "api"}, s.Tags)
}

// TestScanWeaklyTyped tests string inputs populating typed fields, the
// shapes an environment source produces
func TestScanWeaklyTyped(t *testing.T) {
	c := New()
	require.NoError(t, c.Merge(Env{
		Prefix: "APP_",
		environ: func() []string {
			return []string{
				"APP_SERVER_HOST=env-host",
				"APP_SERVER_PORT=9090",
				"APP_SERVER_TIMEOUT=45s",
				"APP_SERVER_TAGS=x,y,z",
			}
		},
	}))

	var s serverSettings
	require.NoError(t, c.Scan("server", &s))

	assert.Equal(t, "env-host", s.Host)
	assert.Equal(t, 9090, s.Port)
	assert.Equal(t, 45*time.Second, s.Timeout)
	assert.Equal(t, []string{"x", "y", "z"}, s.Tags)
}

// TestUnmarshal tests decoding the whole merged tree
func TestUnmarshal(t *testing.T) {
	c := New()
	require.NoError(t, c.SetDefault("debug", true))
	require.NoError(t, c.Set("server.host", "example.com"))

	var out struct {
		Debug  bool `toml:"debug"`
		Server struct {
			Host string `toml:"host"`
		} `toml:"server"`
	}
	require.NoError(t, c.Unmarshal(&out))

	assert.True(t, out.Debug)
	assert.Equal(t, "example.com", out.Server.Host)
}

// TestScanIntoMap tests decoding into a plain map target
func TestScanIntoMap(t *testing.T) {
	c := New()
	require.NoError(t, c.Set("server.host", "example.com"))

	out := make(map[string]any)
	require.NoError(t, c.Scan("server", &out))
	assert.Equal(t, "example.com", out["host"])
}

// TestScanTargetValidation tests rejection of unusable targets
func TestScanTargetValidation(t *testing.T) {
	c := New()
	require.NoError(t, c.Set("key", "value"))

	var s serverSettings
	assert.Error(t, c.Scan("", s))

	var nilPtr *serverSettings
	assert.Error(t, c.Scan("", nilPtr))
}

// TestScanPathErrors tests missing and non-table scan paths
func TestScanPathErrors(t *testing.T) {
	c := New()
	require.NoError(t, c.Set("server.host", "example.com"))

	var s serverSettings

	var nf *NotFoundError
	require.ErrorAs(t, c.Scan("missing", &s), &nf)
	assert.Equal(t, "missing", nf.Key)

	var te *TypeError
	require.ErrorAs(t, c.Scan("server.host", &s), &te)
	assert.Equal(t, "server.host", te.Key)
	assert.Equal(t, "a table", te.Expected)
}
