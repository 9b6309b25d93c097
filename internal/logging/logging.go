// Package logging builds the zerolog loggers used across ecoshare and carries
// them, along with a per-invocation trace ID, through context.Context.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
	FormatText    = "text"
)

// Output destinations.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
	OutputFile   = "file"
)

// Config describes how a logger is built.
type Config struct {
	Level  string
	Format string
	Output string
	File   string
	Caller bool
}

// DefaultConfig logs info and above to stderr in console format.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: FormatConsole,
		Output: OutputStderr,
	}
}

// LogPathResult is returned by NewLoggerWithPath so callers can tell the user
// where logs went.
type LogPathResult struct {
	Logger zerolog.Logger

	// FilePath is the log file in use, empty when logging to a stream.
	FilePath string

	// UsingFile is true when logs are written to FilePath.
	UsingFile bool

	// FallbackUsed is true when a file was requested but could not be opened.
	FallbackUsed bool

	// FallbackReason explains why the file could not be used.
	FallbackReason string

	file *os.File
}

// Close releases the log file, if one was opened.
func (r *LogPathResult) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// ParseLevel converts a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// NewLogger builds a logger writing to the configured stream. File output is
// ignored here; use NewLoggerWithPath for that.
func NewLogger(cfg Config) zerolog.Logger {
	var w io.Writer = os.Stderr
	if cfg.Output == OutputStdout {
		w = os.Stdout
	}
	return NewLoggerWithWriter(cfg, w)
}

// NewLoggerWithWriter builds a logger that writes to w.
func NewLoggerWithWriter(cfg Config, w io.Writer) zerolog.Logger {
	if cfg.Format == FormatConsole || cfg.Format == FormatText {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(w).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// NewLoggerWithPath builds a logger and, when cfg asks for file output, opens
// the log file. If the file cannot be opened the logger falls back to stderr
// and the result records why.
func NewLoggerWithPath(cfg Config) LogPathResult {
	if cfg.Output != OutputFile || cfg.File == "" {
		return LogPathResult{Logger: NewLogger(cfg)}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o750); err != nil {
		return fallback(cfg, err)
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fallback(cfg, err)
	}

	// Files always get JSON so they stay machine-readable.
	fileCfg := cfg
	fileCfg.Format = FormatJSON
	return LogPathResult{
		Logger:    NewLoggerWithWriter(fileCfg, f),
		FilePath:  cfg.File,
		UsingFile: true,
		file:      f,
	}
}

func fallback(cfg Config, err error) LogPathResult {
	streamCfg := cfg
	streamCfg.Output = OutputStderr
	return LogPathResult{
		Logger:         NewLogger(streamCfg),
		FallbackUsed:   true,
		FallbackReason: err.Error(),
	}
}

// ComponentLogger returns a child logger tagged with the component name.
func ComponentLogger(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

// PrintLogPathMessage tells the user where the log file is.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user the log file could not be used.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: could not open log file (%s), logging to stderr\n", reason)
}
