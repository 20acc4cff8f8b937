// Package observabilitytest provides loggers for tests.
package observabilitytest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wandb/wandb/graphkit/internal/observability"
)

// NewTestLogger returns a logger whose output is shown by the testing
// framework when a test fails.
func NewTestLogger(t *testing.T) *observability.CoreLogger {
	t.Helper()
	return observability.NewCoreLogger(
		slog.New(slog.NewJSONHandler(t.Output(), &slog.HandlerOptions{Level: slog.LevelDebug})),
		nil,
	)
}

// NewRecordingTestLogger is like NewTestLogger but also records messages
// into the returned buffer.
func NewRecordingTestLogger(t *testing.T) (*observability.CoreLogger, *bytes.Buffer) {
	t.Helper()

	recorded := &bytes.Buffer{}
	writer := io.MultiWriter(t.Output(), recorded)

	return observability.NewCoreLogger(
		slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: slog.LevelDebug})),
		nil,
	), recorded
}

// ExtractLogs decodes the records of a NewRecordingTestLogger buffer.
//
// The "time" key is dropped. Every record has "level" and "msg".
func ExtractLogs(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	records := make([]map[string]any, 0)
	for line := range bytes.Lines(buf.Bytes()) {
		var record map[string]any
		require.NoError(t, json.Unmarshal(line, &record))
		delete(record, "time")
		records = append(records, record)
	}
	return records
}
