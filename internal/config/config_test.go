package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("DELIVERY_DESK_API_URL", "https://ops.example.com/api")
	t.Setenv("DELIVERY_DESK_DATA_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://ops.example.com/api", cfg.APIBaseURL)
}

func TestLoadDefaultsToLocalEndpoint(t *testing.T) {
	// t.Setenv registers the restore; the unset makes the default apply.
	t.Setenv("DELIVERY_DESK_API_URL", "")
	os.Unsetenv("DELIVERY_DESK_API_URL")
	t.Setenv("DELIVERY_DESK_DATA_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
}

func TestLoadDefaultsDataDirUnderHome(t *testing.T) {
	t.Setenv("DELIVERY_DESK_DATA_DIR", "")
	os.Unsetenv("DELIVERY_DESK_DATA_DIR")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Contains(t, cfg.DataDir, ".delivery-desk")
}
