package observability_test

import (
	"errors"
	"log/slog"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/wandb/graphkit/internal/observability"
	"github.com/wandb/wandb/graphkit/internal/observabilitytest"
)

func TestCaptureRateLimiter(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rl, err := observability.NewCaptureRateLimiter(2, time.Minute)
		require.NoError(t, err)

		assert.True(t, rl.AllowCapture("render failed"))
		assert.True(t, rl.AllowCapture("watch failed"))

		time.Sleep(30 * time.Second)
		assert.False(t, rl.AllowCapture("render failed"))
		assert.False(t, rl.AllowCapture("watch failed"))

		time.Sleep(31 * time.Second)
		assert.True(t, rl.AllowCapture("render failed"))
	})
}

func TestCaptureRateLimiterNil(t *testing.T) {
	var rl *observability.CaptureRateLimiter
	assert.True(t, rl.AllowCapture("anything"))
}

func TestNewTags(t *testing.T) {
	tags := observability.NewTags(
		slog.String("kind", "line"),
		"file", "data.csv",
		42,
		"dangling",
	)
	assert.Equal(t, observability.Tags{"kind": "line", "file": "data.csv"}, tags)
}

// eventSink collects events handed to BeforeSend and drops them.
type eventSink struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (s *eventSink) beforeSend(e *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *eventSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestCaptureError_ReportsOncePerInterval(t *testing.T) {
	sink := &eventSink{}
	reporter, err := observability.NewReporter(observability.ReporterParams{
		DSN:               "https://public@example.com/1",
		RateLimitInterval: time.Hour,
		BeforeSend:        sink.beforeSend,
	})
	require.NoError(t, err)
	require.True(t, reporter.Enabled())

	logger := observability.NewCoreLogger(
		observabilitytest.NewTestLogger(t).Logger,
		&observability.CoreLoggerParams{
			Reporter: reporter,
			Tags:     observability.Tags{"component": "render"},
		},
	)

	logger.CaptureError(errors.New("boom"), "file", "a.csv")
	logger.CaptureError(errors.New("boom"), "file", "a.csv")
	logger.CaptureWarn("slow frame")

	require.Equal(t, 2, sink.count())
	assert.Equal(t, "render", sink.events[0].Tags["component"])
	assert.Equal(t, "a.csv", sink.events[0].Tags["file"])
}

func TestCaptureError_DisabledReporter(t *testing.T) {
	reporter, err := observability.NewReporter(observability.ReporterParams{})
	require.NoError(t, err)
	assert.False(t, reporter.Enabled())

	logger := observability.NewCoreLogger(
		observabilitytest.NewTestLogger(t).Logger,
		&observability.CoreLoggerParams{Reporter: reporter},
	)
	logger.CaptureError(errors.New("not sent"))
	assert.True(t, reporter.Flush(time.Millisecond))
}

func TestWith_KeepsBaseTags(t *testing.T) {
	logger := observability.NewCoreLogger(
		observabilitytest.NewTestLogger(t).Logger,
		&observability.CoreLoggerParams{Tags: observability.Tags{"kind": "bar"}},
	)
	child := logger.With("file", "x.csv")
	assert.Equal(t, observability.Tags{"kind": "bar"}, child.Tags())
}

func TestReraise(t *testing.T) {
	logger := observability.NewNoOpLogger()
	assert.PanicsWithValue(t, "kaboom", func() {
		defer logger.Reraise()
		panic("kaboom")
	})
}
