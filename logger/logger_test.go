package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	l.Info("hello", "key", "value")

	out := buf.String()
	assert.Contains(t, out, " INFO hello")
	assert.Contains(t, out, "key=value")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}

func TestLogger_DebugDisabledByDefault(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	l.Debug("quiet")

	assert.Empty(t, buf.String())
}

func TestLogger_DebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true)

	l.Debug("loud", "n", 1)

	assert.Contains(t, buf.String(), " DEBUG loud n=1")
}

func TestLogger_Pairs(t *testing.T) {
	tests := []struct {
		name     string
		args     []any
		expected string
	}{
		{"no args", nil, " WARN w\n"},
		{"pair", []any{"a", 1}, " WARN w a=1\n"},
		{"two pairs", []any{"a", 1, "b", "x"}, " WARN w a=1 b=x\n"},
		{"dangling key", []any{"a", 1, "b"}, " WARN w a=1 b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New(&buf, false).Warn("w", tt.args...)
			assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte(tt.expected)), "got %q", buf.String())
		})
	}
}

func TestDebugEnabled_ReadsEnv(t *testing.T) {
	t.Setenv("QREVAL_DEBUG", "true")
	assert.True(t, debugEnabled())

	t.Setenv("QREVAL_DEBUG", "TRUE")
	assert.True(t, debugEnabled())

	t.Setenv("QREVAL_DEBUG", "")
	assert.False(t, debugEnabled())
}

func TestDiscard(t *testing.T) {
	l := Discard()

	// nothing to observe, just must not panic or write anywhere visible
	l.Debug("a")
	l.Info("b", "k", "v")
	l.Warn("c")
	l.Error("d")
}
