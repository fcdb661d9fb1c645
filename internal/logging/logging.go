package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldEnvelope  = "envelope_id"
	FieldName      = "name"
	FieldValue     = "value"
	FieldFormat    = "format"
	FieldCount     = "count"
	FieldError     = "error"
)

// Components
const (
	ComponentApp     = "app"
	ComponentStorage = "storage"
	ComponentInput   = "input"
	ComponentConfig  = "config"
)

// Operations
const (
	OpStartup  = "startup"
	OpShutdown = "shutdown"
	OpLoad     = "load"
	OpSave     = "save"
	OpReload   = "reload"
	OpMigrate  = "migrate"
	OpFocus    = "focus"
	OpBlur     = "blur"
)

// Setup opens (appending) the log file at path and returns a text logger
// writing to it. The caller closes the returned Closer on exit.
func Setup(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f, nil
}

// New returns a text logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return New(io.Discard, slog.LevelError)
}

// Component returns logger tagged with a component name.
func Component(logger *slog.Logger, name string) *slog.Logger {
	if logger == nil {
		logger = Discard()
	}
	return logger.With(FieldComponent, name)
}
