package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestMakeLogger(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	require.NoError(t, MakeLogger("warn"))
	assert.False(t, zap.L().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, zap.L().Core().Enabled(zapcore.WarnLevel))

	assert.Error(t, MakeLogger("loud"))
}

func TestCORSConfig(t *testing.T) {
	cfg := corsConfig([]string{"*"})
	assert.True(t, cfg.AllowAllOrigins)
	assert.False(t, cfg.AllowCredentials)

	cfg = corsConfig(nil)
	assert.True(t, cfg.AllowAllOrigins)

	cfg = corsConfig([]string{"https://a.example", "https://b.example"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.True(t, cfg.AllowCredentials)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowOrigins)
}
