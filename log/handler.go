// Package log routes structured logging (slog) through the host boundary.
// Each record becomes one svc.logger message; the host decides where the
// output lands.
package log

import (
	"context"
	"log/slog"

	wafer "github.com/wafer-dev/wafer-sdk"
	"github.com/wafer-dev/wafer-sdk/domain/entities"
	"github.com/wafer-dev/wafer-sdk/domain/ports"
)

// ChannelHandler implements slog.Handler on top of a boundary channel.
type ChannelHandler struct {
	opts  handlerConfig
	ch    ports.Channel
	attrs []slog.Attr
	group string
}

// HandlerOption configures the ChannelHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level slog.Level
}

func defaultHandlerConfig() handlerConfig {
	return handlerConfig{level: slog.LevelInfo}
}

// WithLevel sets the minimum log level to report. Records below this level
// are filtered on the guest side and never cross the boundary.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// NewHandler creates a ChannelHandler writing to the given channel.
func NewHandler(ch ports.Channel, opts ...HandlerOption) *ChannelHandler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &ChannelHandler{opts: cfg, ch: ch}
}

// Install wires slog's default logger through the block's host channel.
// Call it once at startup, before Register.
func Install(opts ...HandlerOption) {
	slog.SetDefault(slog.New(NewHandler(wafer.DefaultContext().Channel(), opts...)))
}

// Enabled reports whether the handler handles records at the given level.
func (h *ChannelHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level
}

// Handle serializes the record and sends it across the boundary. A failed
// send is dropped silently; logging must never take down the block.
func (h *ChannelHandler) Handle(_ context.Context, rec slog.Record) error {
	data, err := encodeRecord(rec, h.attrs, h.group)
	if err != nil {
		return err
	}

	msg := entities.NewMessage("svc.logger."+levelName(rec.Level), data)
	msg.SetMeta("level", levelName(rec.Level))
	h.ch.Send(msg)
	return nil
}

// WithAttrs returns a handler that includes the given attributes on every
// record.
func (h *ChannelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	nh.attrs = append(nh.attrs, h.attrs...)
	nh.attrs = append(nh.attrs, attrs...)
	return &nh
}

// WithGroup returns a handler that prefixes attribute keys with the group
// name.
func (h *ChannelHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	if h.group != "" {
		nh.group = h.group + "." + name
	} else {
		nh.group = name
	}
	return &nh
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warn"
	case level >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}
