// Package observability provides the logger used across graphkit and
// optional error reporting to Sentry.
package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
)

// Tags are key/value pairs attached to captured events.
type Tags map[string]string

// NewTags builds Tags from slog-style arguments: slog.Attr values or
// key/value pairs. Incomplete pairs and other types are ignored.
func NewTags(args ...any) Tags {
	tags := Tags{}
	for len(args) > 0 {
		switch x := args[0].(type) {
		case slog.Attr:
			tags[x.Key] = x.Value.String()
			args = args[1:]
		case string:
			if len(args) < 2 {
				return tags
			}
			attr := slog.Any(x, args[1])
			tags[attr.Key] = attr.Value.String()
			args = args[2:]
		default:
			args = args[1:]
		}
	}
	return tags
}

// LevelFatal is logged for errors that end the process.
const LevelFatal = slog.Level(12)

type CoreLoggerParams struct {
	// Reporter receives captured events. Nil disables reporting.
	Reporter *Reporter
	Tags     Tags
}

// CoreLogger is a slog.Logger that can also report to Sentry.
type CoreLogger struct {
	*slog.Logger
	baseTags Tags
	reporter *Reporter
}

func NewCoreLogger(logger *slog.Logger, params *CoreLoggerParams) *CoreLogger {
	if params == nil {
		params = &CoreLoggerParams{}
	}

	tags := Tags{}
	var args []any
	for key, value := range params.Tags {
		args = append(args, slog.String(key, value))
		tags[key] = value
	}

	return &CoreLogger{
		Logger:   logger.With(args...),
		baseTags: tags,
		reporter: params.Reporter,
	}
}

// tagsFor merges args with the logger's base tags. Base tags win.
func (cl *CoreLogger) tagsFor(args ...any) Tags {
	tags := NewTags(args...)
	maps.Copy(tags, cl.baseTags)
	return tags
}

// With returns a derived logger that includes args in each message.
func (cl *CoreLogger) With(args ...any) *CoreLogger {
	return &CoreLogger{
		Logger:   cl.Logger.With(args...),
		baseTags: cl.baseTags,
		reporter: cl.reporter,
	}
}

// CaptureError logs an error and reports it.
func (cl *CoreLogger) CaptureError(err error, args ...any) {
	cl.Error(err.Error(), args...)
	cl.reporter.captureError(err, cl.tagsFor(args...))
}

// CaptureFatal logs an error at LevelFatal and reports it.
func (cl *CoreLogger) CaptureFatal(err error, args ...any) {
	cl.Log(context.Background(), LevelFatal, err.Error(), args...)
	cl.reporter.captureError(err, cl.tagsFor(args...))
}

// CaptureWarn logs a warning and reports it.
func (cl *CoreLogger) CaptureWarn(msg string, args ...any) {
	cl.Warn(msg, args...)
	cl.reporter.captureMessage(msg, levelWarning, cl.tagsFor(args...))
}

// CaptureInfo logs an info message and reports it.
func (cl *CoreLogger) CaptureInfo(msg string, args ...any) {
	cl.Info(msg, args...)
	cl.reporter.captureMessage(msg, levelInfo, cl.tagsFor(args...))
}

// Reraise reports a panic in progress and panics again.
//
// It must be deferred directly.
func (cl *CoreLogger) Reraise(args ...any) {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", r)
		}
		cl.CaptureFatal(err, args...)
		cl.reporter.Flush(flushTimeout)
		panic(r)
	}
}

// Tags returns the logger's base tags.
func (cl *CoreLogger) Tags() Tags {
	return cl.baseTags
}

// NewNoOpLogger returns a logger that discards all messages.
func NewNoOpLogger() *CoreLogger {
	return NewCoreLogger(
		slog.New(slog.NewJSONHandler(io.Discard, nil)),
		nil,
	)
}
