package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeCommand LogType = "CMD"
	TypeDB      LogType = "DB"
	TypeSystem  LogType = "SYS"
	TypeError   LogType = "ERR"
	TypePack    LogType = "PACK"
	TypeTrade   LogType = "TRADE"
)

// Config mirrors the [log] table of config.toml.
type Config struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

// New returns a JSON handler for format "json" and the colored console
// handler otherwise.
func New(cfg Config, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: cfg.Level, AddSource: cfg.AddSource}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return NewHandler(w, opts)
}

// Setup installs the handler for cfg as the slog default.
func Setup(cfg Config) {
	slog.SetDefault(slog.New(New(cfg, os.Stdout)))
}

type CustomHandler struct {
	opts   *slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

func NewHandler(w io.Writer, opts *slog.HandlerOptions) *CustomHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{Level: slog.LevelInfo}
	}
	return &CustomHandler{opts: opts, out: w, mu: &sync.Mutex{}}
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &c
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.groups = append(append([]string{}, h.groups...), name)
	return &c
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	if shouldSkipLog(&r) {
		return nil
	}

	var levelColor, levelText string
	switch {
	case r.Level >= slog.LevelError:
		levelColor, levelText = colorRed, "ERROR"
	case r.Level >= slog.LevelWarn:
		levelColor, levelText = colorYellow, "WARN"
	case r.Level >= slog.LevelInfo:
		levelColor, levelText = colorGreen, "INFO"
	default:
		levelColor, levelText = colorPurple, "DEBUG"
	}

	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})

	logType := TypeSystem
	var cmdName, userName, status, errDetails, took string
	var extra strings.Builder
	for _, a := range attrs {
		switch a.Key {
		case "type":
			logType = typeOf(a.Value.String())
		case "name":
			cmdName = a.Value.String()
		case "user_name":
			userName = a.Value.String()
		case "status":
			status = a.Value.String()
		case "error":
			errDetails = a.Value.String()
		case "took":
			took = a.Value.String()
		default:
			fmt.Fprintf(&extra, " %s=%v", h.qualify(a.Key), a.Value)
		}
	}

	message := r.Message
	if r.Level >= slog.LevelError {
		if h.opts.AddSource && r.PC != 0 {
			message = fmt.Sprintf("%s (%s)", message, source(r.PC))
		}
		if errDetails != "" {
			message = fmt.Sprintf("%s: %s", message, errDetails)
		}
	} else if errDetails != "" {
		fmt.Fprintf(&extra, " error=%s", errDetails)
	}
	if cmdName != "" && userName != "" {
		message = fmt.Sprintf("%s [%s by %s]", message, cmdName, userName)
	} else if cmdName != "" {
		message = fmt.Sprintf("%s [%s]", message, cmdName)
	}
	if status != "" {
		message = fmt.Sprintf("%s [Status: %s]", message, status)
	}
	if took != "" {
		message = fmt.Sprintf("%s (took %s)", message, took)
	}

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.out, "%s[cardbot] [%s] [%s%s%s] [%s] %s%s%s\n",
		colorWhite,
		ts.Format("15:04:05"),
		levelColor,
		levelText,
		colorWhite,
		logType,
		message,
		extra.String(),
		colorReset,
	)
	return err
}

func (h *CustomHandler) qualify(key string) string {
	if len(h.groups) == 0 {
		return key
	}
	return strings.Join(h.groups, ".") + "." + key
}

func typeOf(v string) LogType {
	switch v {
	case "cmd":
		return TypeCommand
	case "db", "migrate":
		return TypeDB
	case "error":
		return TypeError
	case "pack":
		return TypePack
	case "trade":
		return TypeTrade
	}
	return TypeSystem
}

var skippedMessages = []string{
	"locking buckets",
	"unlocking buckets",
	"gateway event",
	"cleaning up bucket",
	"binary message received",
	"received gateway message",
	"sending gateway command",
	"new request",
	"new response",
	"rate limit response headers",
	"sending heartbeat",
}

// shouldSkipLog drops disgo's chatty gateway and rest debug lines.
func shouldSkipLog(r *slog.Record) bool {
	msg := strings.ToLower(r.Message)
	for _, skip := range skippedMessages {
		if strings.Contains(msg, skip) {
			return true
		}
	}
	return false
}
