package dlogger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestGetLogger(t *testing.T) {
	for _, tc := range []struct {
		level   string
		enabled zapcore.Level
		wantErr bool
	}{
		{level: LogLevelDebug, enabled: zapcore.DebugLevel},
		{level: LogLevelInfo, enabled: zapcore.InfoLevel},
		{level: LogLevelWarn, enabled: zapcore.WarnLevel},
		{level: LogLevelError, enabled: zapcore.ErrorLevel},
		{level: "verbose", wantErr: true},
	} {
		tc := tc
		t.Run(tc.level, func(t *testing.T) {
			l, err := GetLogger(tc.level, OutputPaths("stderr"))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tc.enabled))
			if tc.enabled > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tc.enabled-1))
			}
		})
	}
}

func TestNoneLogger(t *testing.T) {
	l, err := GetLogger(LogLevelNone)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))

	l = MustGetLogger("", Development())
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestMustGetLogger(t *testing.T) {
	assert.Panics(t, func() { _ = MustGetLogger("loud") })
	assert.NotPanics(t, func() { _ = MustGetLogger(LogLevelInfo, Development()) })
}
