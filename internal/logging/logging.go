// Package logging builds the logrus loggers used across the service.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// Format names accepted by New
const (
	FormatText = "text"
	FormatJSON = "json"
)

// formatter adds the owning component to each log entry.
type formatter struct {
	owner string
	lf    log.Formatter
}

// Format satisfies the log.Formatter interface.
func (f *formatter) Format(e *log.Entry) ([]byte, error) {
	if _, ok := f.lf.(*log.JSONFormatter); ok {
		data := make(log.Fields, len(e.Data)+1)
		for k, v := range e.Data {
			data[k] = v
		}
		data["component"] = f.owner
		clone := *e
		clone.Data = data
		return f.lf.Format(&clone)
	}
	e.Message = fmt.Sprintf("[%s] %s", f.owner, e.Message)
	return f.lf.Format(e)
}

// New returns a logger for owner writing to stderr at the given level
// ("debug", "info", ...) in the given format ("text" or "json")
func New(owner, level, format string) (*log.Logger, error) {
	return NewWithOutput(os.Stderr, owner, level, format)
}

// NewWithOutput is New with an explicit destination
func NewWithOutput(out io.Writer, owner, level, format string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	var lf log.Formatter
	switch format {
	case "", FormatText:
		lf = &log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.StampMilli,
		}
	case FormatJSON:
		lf = &log.JSONFormatter{TimestampFormat: time.RFC3339Nano}
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	logger := log.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&formatter{owner: owner, lf: lf})
	return logger, nil
}

// Discard returns a logger that drops everything, for tests
func Discard() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}
