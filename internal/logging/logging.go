// Package logging builds the application logger. The logger is an explicit
// value handed to each component constructor rather than a process-wide
// singleton, so unit tests can pass zerolog.Nop().
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// New constructs a logger from the logging configuration. With a directory
// configured, output is duplicated into a timestamped log file
// ({YYYYMMDD_HHMMSS}_quantumwatch.log) so every run keeps its own log.
func New(level, format, directory string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var console io.Writer = os.Stderr
	if format == "console" {
		console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	writer := console
	if directory != "" {
		if err := os.MkdirAll(directory, 0755); err != nil {
			return zerolog.Nop(), fmt.Errorf("failed to create log directory: %w", err)
		}
		name := fmt.Sprintf("%s_quantumwatch.log", time.Now().Format("20060102_150405"))
		file, err := os.OpenFile(filepath.Join(directory, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("failed to open log file: %w", err)
		}
		writer = zerolog.MultiLevelWriter(console, file)
	}

	logger := zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
	return logger, nil
}
