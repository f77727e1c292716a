package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/ncskier/CapriciousCroissants-sub000/config"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		cfg  config.LoggingConfig
		want zapcore.Level
	}{
		{config.LoggingConfig{Level: "debug", Format: "console"}, zapcore.DebugLevel},
		{config.LoggingConfig{Level: "warn", Format: "json"}, zapcore.WarnLevel},
		{config.LoggingConfig{Level: "loud"}, zapcore.InfoLevel},
	}
	for _, c := range cases {
		l, err := New(c.cfg)
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(c.want))
		assert.False(t, l.Core().Enabled(c.want-1), "level %v", c.want)
	}
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
}
