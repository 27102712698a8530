package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestObserve(t *testing.T) {
	user := discord.User{ID: snowflake.ID(42), Username: "ash"}

	buf := captureLogs(t)
	err := observe("cmd", "Command", "open", user, func() error { return nil })
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Command completed")
	assert.Contains(t, buf.String(), "user_id=42")
	assert.Contains(t, buf.String(), "status=success")

	buf.Reset()
	boom := errors.New("boom")
	err = observe("cmd", "Command", "open", user, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "Command failed")
	assert.Contains(t, buf.String(), "status=failed")
}
