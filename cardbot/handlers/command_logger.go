package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/ellavondegurechaff/cardbot/cardbot/config"
)

const slowThreshold = 2 * time.Second

// WrapWithLogging logs start, outcome and duration of a slash command.
func WrapWithLogging(name string, h handler.CommandHandler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return observe("cmd", "Command", name, e.User(), func() error { return h(e) })
	}
}

// WrapComponentWithLogging logs start, outcome and duration of a button or
// menu interaction.
func WrapComponentWithLogging(name string, h handler.ComponentHandler) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		return observe("cmd", "Component interaction", name, e.User(), func() error { return h(e) })
	}
}

func observe(logType, label, name string, user discord.User, run func() error) error {
	start := time.Now()
	base := []any{
		slog.String("type", logType),
		slog.String("name", name),
		slog.String("user_id", user.ID.String()),
		slog.String("user_name", user.Username),
	}
	slog.Debug(label+" started", base...)

	done := make(chan error, 1)
	go func() {
		done <- run()
	}()

	select {
	case err := <-done:
		attrs := append(base, slog.Duration("took", time.Since(start)))
		switch {
		case err != nil:
			slog.Error(label+" failed", append(attrs, slog.Any("error", err), slog.String("status", "failed"))...)
		case time.Since(start) > slowThreshold:
			slog.Warn(label+" executed slowly", append(attrs, slog.String("status", "slow"))...)
		default:
			slog.Info(label+" completed", append(attrs, slog.String("status", "success"))...)
		}
		return err

	case <-time.After(config.CommandExecutionTimeout):
		slog.Error(label+" timed out", append(base,
			slog.String("status", "timeout"),
			slog.Duration("timeout", config.CommandExecutionTimeout),
		)...)
		return fmt.Errorf("%s %s timed out after %s", label, name, config.CommandExecutionTimeout)
	}
}
