// Package log wraps log/slog with the component and field vocabulary used
// across the service. Each subsystem gets a component-scoped Logger once at
// construction; records carry the component without per-call plumbing.
package log

import (
	"log/slog"
	"os"
)

// Logger is a component-scoped slog.Logger. The component name is bound as
// a handler attribute, so the embedded level methods all emit it.
type Logger struct {
	*slog.Logger
	base      slog.Handler
	component string
}

// Config controls the level and component name. A nil Handler gets a text
// handler on stdout at the configured level.
type Config struct {
	Level     slog.Level
	Component string
	Handler   slog.Handler
}

func DefaultConfig() Config {
	return Config{
		Level:     slog.LevelInfo,
		Component: "finnexus",
	}
}

func New(cfg Config) *Logger {
	handler := cfg.Handler
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level})
	}
	return &Logger{
		Logger:    slog.New(handler).With(FieldComponent, cfg.Component),
		base:      handler,
		component: cfg.Component,
	}
}

// With returns a logger carrying extra attributes on top of the bound
// component.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger:    l.Logger.With(args...),
		base:      l.base,
		component: l.component,
	}
}

// WithComponent rebinds the component from the base handler, so the previous
// component attribute is not carried along.
func (l *Logger) WithComponent(component string) *Logger {
	h := l.base
	if h == nil {
		h = l.Logger.Handler()
	}
	return &Logger{
		Logger:    slog.New(h).With(FieldComponent, component),
		base:      h,
		component: component,
	}
}

// Component returns the bound component name.
func (l *Logger) Component() string {
	return l.component
}

// SetDefault installs the logger as the process-wide slog default.
func SetDefault(l *Logger) {
	slog.SetDefault(l.Logger)
}
