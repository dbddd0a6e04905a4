package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abgdnv/productcompare/pkg/config"
	"github.com/abgdnv/productcompare/pkg/config/configloader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_Defaults(t *testing.T) {
	// given
	t.Chdir(t.TempDir())

	// when
	cfg, err := configloader.Load[*Config]("compare", Defaults())

	// then
	require.NoError(t, err)
	assert.Equal(t, config.DefaultCatalogEndpoint, cfg.Catalog.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 8080, cfg.HTTPServer.Port)
	assert.Equal(t, "9090", cfg.GRPC.Port)
	assert.Equal(t, 10*time.Second, cfg.Shutdown.Timeout)
	assert.False(t, cfg.NATS.Enabled)
	assert.False(t, cfg.Telemetry.Traces.Enabled)
}

func Test_Load_Overrides(t *testing.T) {
	// given
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := "catalog:\n  endpoint: http://catalog.local/products\n  timeout: 3s\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("COMPARE_SERVER_PORT=8181\nOTHER_SERVER_PORT=1\n"), 0o600))
	t.Setenv("COMPARE_CATALOG_TIMEOUT", "0s")

	// when
	cfg, err := configloader.Load[*Config]("compare", Defaults())

	// then
	require.NoError(t, err)
	assert.Equal(t, "http://catalog.local/products", cfg.Catalog.Endpoint)
	assert.Equal(t, time.Duration(0), cfg.Catalog.Timeout, "environment wins over yaml")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 8181, cfg.HTTPServer.Port)
}

func Test_Load_CamelCaseEnvOverrides(t *testing.T) {
	// given
	t.Chdir(t.TempDir())
	t.Setenv("COMPARE_SERVER_MAXHEADERBYTES", "4096")
	t.Setenv("COMPARE_SERVER_TIMEOUT_READHEADER", "7s")
	t.Setenv("COMPARE_SERVER_PORT", "9999")

	// when
	cfg, err := configloader.Load[*Config]("compare", Defaults())

	// then
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.HTTPServer.Port)
	assert.Equal(t, 4096, cfg.HTTPServer.MaxHeaderBytes)
	assert.Equal(t, 7*time.Second, cfg.HTTPServer.Timeout.ReadHeader)
}

func Test_Load_ConfigFileOverride(t *testing.T) {
	// given
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grpc:\n  port: \"9191\"\n  reflection: true\n"), 0o600))
	t.Setenv("COMPARE_CONFIG_FILE", path)

	// when
	cfg, err := configloader.Load[*Config]("compare", Defaults())

	// then
	require.NoError(t, err)
	assert.Equal(t, "9191", cfg.GRPC.Port)
	assert.True(t, cfg.GRPC.ReflectionEnabled)
}

func Test_Load_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "relative catalog endpoint", key: "COMPARE_CATALOG_ENDPOINT", value: "/products"},
		{name: "negative catalog timeout", key: "COMPARE_CATALOG_TIMEOUT", value: "-1s"},
		{name: "unknown log level", key: "COMPARE_LOG_LEVEL", value: "verbose"},
		{name: "grpc port out of range", key: "COMPARE_GRPC_PORT", value: "70000"},
		{name: "http port out of range", key: "COMPARE_SERVER_PORT", value: "0"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			t.Chdir(t.TempDir())
			t.Setenv(tc.key, tc.value)

			// when
			_, err := configloader.Load[*Config]("compare", Defaults())

			// then
			assert.ErrorContains(t, err, "config validation failed")
		})
	}
}

func Test_Config_String(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := configloader.Load[*Config]("compare", Defaults())
	require.NoError(t, err)

	s := cfg.String()

	assert.Contains(t, s, "--- Catalog ---")
	assert.Contains(t, s, config.DefaultCatalogEndpoint)
	assert.Contains(t, s, "--- NATS ---")
	assert.Contains(t, s, "--- Telemetry ---")
}
