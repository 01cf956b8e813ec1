package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) error {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	return Setup()
}

func TestSetupDefaults(t *testing.T) {
	require.NoError(t, setup(t))

	assert.Equal(t, 8000, viper.GetInt("host.port"))
	assert.Equal(t, "mongo", viper.GetString("database.type"))
	assert.Equal(t, "videogen", viper.GetString("database.name"))
	assert.Equal(t, int64(50<<20), MaxUploadSize())
	assert.Equal(t, []string{"*"}, CORSOrigins())
	assert.False(t, viper.GetBool("tracing.enabled"))
}

func TestSetupReadsEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("DATABASE_TYPE", "memory")
	t.Setenv("UPLOAD_MAX_SIZE", "2")
	t.Setenv("HOST_CORS_ORIGINS", "http://a.test, http://b.test")

	require.NoError(t, setup(t))

	assert.Equal(t, 9090, viper.GetInt("host.port"))
	assert.Equal(t, "mongodb://localhost:27017", viper.GetString("database.url"))
	assert.Equal(t, "memory", viper.GetString("database.type"))
	assert.Equal(t, int64(2<<20), MaxUploadSize())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, CORSOrigins())
}

func TestSetupRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		env, value string
	}{
		{"APP_LOG_LEVEL", "loud"},
		{"PORT", "-1"},
		{"DATABASE_TYPE", "cassandra"},
		{"UPLOAD_MAX_SIZE", "0"},
		{"CACHE_TTL", "0"},
		{"SECURITY_RATE_LIMIT", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			assert.Error(t, setup(t))
		})
	}
}

func TestSetupReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[database]
type = "sqlite"
url = "videogen.db"

[host]
cors_origins = ["http://localhost:5173"]
`), 0o600)
	require.NoError(t, err)

	old := *configDir
	*configDir = dir
	t.Cleanup(func() { *configDir = old })

	require.NoError(t, setup(t))

	assert.Equal(t, "sqlite", viper.GetString("database.type"))
	assert.Equal(t, "videogen.db", viper.GetString("database.url"))
	assert.Equal(t, []string{"http://localhost:5173"}, CORSOrigins())
}
