package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/comp-pricer/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"DEBUG":   slog.LevelDebug,
		" error ": slog.LevelError,
		"":        slog.LevelInfo,
		"trace":   slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, logger.ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestValidLevelAndFormat(t *testing.T) {
	t.Parallel()

	for _, lvl := range []string{"debug", "Info", "WARN", "warning", "error"} {
		assert.True(t, logger.ValidLevel(lvl), lvl)
	}
	for _, lvl := range []string{"", "trace", "fatal"} {
		assert.False(t, logger.ValidLevel(lvl), lvl)
	}

	for _, f := range []string{"json", "JSON", "text", "Text"} {
		assert.True(t, logger.ValidFormat(f), f)
	}
	for _, f := range []string{"", "logfmt", "console"} {
		assert.False(t, logger.ValidFormat(f), f)
	}
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		format   string
		emit     func(*slog.Logger)
		want     []string
		wantNone bool
	}{
		{
			name:   "text",
			level:  "info",
			format: "text",
			emit:   func(l *slog.Logger) { l.Info("priced", "product", "p1") },
			want:   []string{"level=INFO", "msg=priced", "product=p1"},
		},
		{
			name:   "json ignores case",
			level:  "info",
			format: "JSON",
			emit:   func(l *slog.Logger) { l.Warn("slow source") },
			want:   []string{`"level":"WARN"`, `"msg":"slow source"`},
		},
		{
			name:   "unknown format falls back to text",
			level:  "info",
			format: "logfmt",
			emit:   func(l *slog.Logger) { l.Info("x") },
			want:   []string{"level=INFO"},
		},
		{
			name:     "debug filtered at info",
			level:    "info",
			format:   "text",
			emit:     func(l *slog.Logger) { l.Debug("noise") },
			wantNone: true,
		},
		{
			name:     "info filtered at warn",
			level:    "warn",
			format:   "json",
			emit:     func(l *slog.Logger) { l.Info("noise") },
			wantNone: true,
		},
		{
			name:   "durations are human readable",
			level:  "info",
			format: "json",
			emit:   func(l *slog.Logger) { l.Info("fetched", "took", 1500*time.Millisecond) },
			want:   []string{`"took":"1.5s"`},
		},
		{
			name:   "debug adds source",
			level:  "debug",
			format: "json",
			emit:   func(l *slog.Logger) { l.Debug("trace me") },
			want:   []string{`"source":{`, "logger_test.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.emit(logger.NewWithWriter(&buf, tt.level, tt.format))

			if tt.wantNone {
				assert.Empty(t, buf.String())
				return
			}
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestNewWithWriter_InfoOmitsSource(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger.NewWithWriter(&buf, "info", "json").Info("hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.NotContains(t, rec, "source")
	assert.Equal(t, "hello", rec["msg"])
}

func TestNew(t *testing.T) {
	t.Parallel()
	require.NotNil(t, logger.New("info", "text"))
}
