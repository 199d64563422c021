package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vigil/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger returns a logger writing to a buffer with colours disabled.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name       string
		log        func(*logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(l *logger.Logger) { l.Info("cache warmed") },
			goldenName: "info_basic",
		},
		{
			name:       "warn",
			log:        func(l *logger.Logger) { l.Warn("snapshot missing") },
			goldenName: "warn_basic",
		},
		{
			name: "debug when verbose",
			log: func(l *logger.Logger) {
				l.SetVerbose(true)
				l.Debug("cache hit")
			},
			goldenName: "debug_verbose",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_DebugHiddenByDefault(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Debug("cache hit")
	assert.Empty(t, buf.String())

	lg.SetVerbose(true)
	lg.SetVerbose(false)
	lg.Debug("cache hit")
	assert.Empty(t, buf.String())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "simple error",
			err:        os.ErrPermission,
			goldenName: "error_simple",
		},
		{
			name:       "multiline error",
			err:        errors.New("yaml: unmarshal errors:\n  line 3: cannot unmarshal"),
			goldenName: "error_multiline",
		},
		{
			name: "zerr chain",
			err: zerr.Wrap(
				zerr.Wrap(errors.New("connection refused"), "health check request failed"),
				"probe failed",
			),
			goldenName: "error_chain",
		},
		{
			name: "metadata",
			err: zerr.With(
				zerr.With(zerr.Wrap(errors.New("unexpected end of JSON input"), "failed to unmarshal cache entry"),
					"path", ".vigil/cache/ab.json"),
				"op", "get",
			),
			goldenName: "error_metadata",
		},
		{
			name:       "metadata on plain error",
			err:        zerr.With(errors.New("disk full"), "key", "abc"),
			goldenName: "error_metadata_plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Error(zerr.Wrap(errors.New("connection refused"), "probe failed"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "operation failed", record["msg"])
	assert.Equal(t, "probe failed: connection refused", record["error"])
}

func TestLogger_JSONKeepsOutput(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Info("hello")
	lg.SetJSON(false)
	lg.Info("world")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.True(t, json.Valid(lines[0]))
	assert.Equal(t, "world", string(lines[1]))
}

func TestErrorLines_FoldsFieldsIntoCause(t *testing.T) {
	t.Parallel()

	got := logger.ErrorLines(zerr.With(zerr.New("source not found"), "source", "reddit"))
	assert.Equal(t, "Error: source not found (source=reddit)", got)
}
