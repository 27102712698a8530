package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(buf *bytes.Buffer) string {
	return ansi.ReplaceAllString(buf.String(), "")
}

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	log.Info("Command executed",
		slog.String("type", "cmd"),
		slog.String("name", "open"),
		slog.String("user_name", "ash"),
		slog.String("status", "success"),
		slog.Duration("took", 12*time.Millisecond),
		slog.Int("cards", 6),
	)
	assert.Contains(t, buf.String(), colorGreen+"INFO")
	line := plain(&buf)
	assert.Contains(t, line, "[INFO]")
	assert.Contains(t, line, "[CMD]")
	assert.Contains(t, line, "Command executed [open by ash] [Status: success] (took 12ms)")
	assert.Contains(t, line, "cards=6")

	buf.Reset()
	log.Debug("hidden")
	assert.Empty(t, buf.String())

	buf.Reset()
	log.With(slog.String("type", "trade")).Error("Failed", slog.Any("error", errors.New("boom")))
	assert.Contains(t, plain(&buf), "[ERROR]")
	assert.Contains(t, plain(&buf), "[TRADE]")
	assert.Contains(t, plain(&buf), "Failed: boom")

	buf.Reset()
	log.Info("sending heartbeat")
	assert.Empty(t, buf.String())
}

func TestNewPicksFormat(t *testing.T) {
	var buf bytes.Buffer
	slog.New(New(Config{Format: "json"}, &buf)).Info("hello", slog.String("type", "sys"))
	assert.True(t, strings.HasPrefix(buf.String(), "{"))

	_, ok := New(Config{}, &buf).(*CustomHandler)
	assert.True(t, ok)
}
