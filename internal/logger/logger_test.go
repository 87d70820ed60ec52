package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_Level(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "disabled", level: "disabled", want: zerolog.Disabled},
		{name: "empty falls back to info", level: "", want: zerolog.InfoLevel},
		{name: "unknown falls back to info", level: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Logger{Level: tt.level, Format: "json", Output: "stderr"}
			l.Setup()
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestSetup_FileOutput(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	path := filepath.Join(t.TempDir(), "coordfinder.log")
	l := Logger{Level: "info", Format: "json", Output: path}
	l.Setup()

	log.Info().Str("refsys", "SWEREF99 TM").Msg("Paired coordinates")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"refsys":"SWEREF99 TM"`)
	assert.Contains(t, string(data), `"message":"Paired coordinates"`)
}

func TestSetup_BadFileFallsBack(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	l := Logger{Level: "info", Format: "console", Output: filepath.Join(t.TempDir(), "missing", "x.log")}
	l.Setup()

	assert.Nil(t, l.file)
	assert.NoError(t, l.Close())
}
