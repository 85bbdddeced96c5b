// Package logging builds the structured loggers used across the outline
// extractor.
package logging

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Field names shared by all components
const (
	RunIDKey = "run_id"
	FileKey  = "file"
	PageKey  = "page"
)

// Options configures a logger
type Options struct {
	// Level is a logrus level name ("debug", "info", "warn", ...)
	// Default: "info"
	Level string

	// File, when set, receives a rotated copy of the log
	File string

	// NoColors disables ANSI colors on the console writer
	NoColors bool

	// Output is the console writer
	// Default: os.Stderr
	Output io.Writer

	// ReportCaller adds file:line and function to every entry
	ReportCaller bool
}

// New creates a logger with the nested formatter. When opts.File is set the
// log is also written to a size-rotated file.
func New(opts Options) (*logrus.Logger, error) {
	level := logrus.InfoLevel
	if opts.Level != "" {
		l, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = l
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&formatter.Formatter{
		NoColors:        opts.NoColors,
		TimestampFormat: "02 Jan 06 - 15:04:05",
		HideKeys:        false,
		CallerFirst:     true,
		CustomCallerFormatter: func(f *runtime.Frame) string {
			s := strings.Split(f.Function, ".")
			funcName := s[len(s)-1]
			return fmt.Sprintf(" [%s:%d][%s()]", path.Base(f.File), f.Line, funcName)
		},
	})

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	writers := []io.Writer{out}
	if opts.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			LocalTime:  true,
			Compress:   true,
			MaxSize:    100,
			MaxAge:     7,
			MaxBackups: 3,
		})
	}

	logger.SetOutput(io.MultiWriter(writers...))
	logger.SetReportCaller(opts.ReportCaller)
	return logger, nil
}

// Discard returns a logger that drops everything
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// OrDiscard returns l, or a discarding logger when l is nil
func OrDiscard(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return Discard()
	}
	return l
}

// NewRunID returns a fresh identifier for one document run
func NewRunID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return "unknown"
	}
	return id.String()
}

// ForDocument returns an entry tagged with a new run id and the document path
func ForDocument(l logrus.FieldLogger, file string) *logrus.Entry {
	return OrDiscard(l).WithFields(logrus.Fields{
		RunIDKey: NewRunID(),
		FileKey:  path.Base(file),
	})
}
