package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	flushTimeout = 2 * time.Second

	levelInfo    = sentry.LevelInfo
	levelWarning = sentry.LevelWarning
)

type ReporterParams struct {
	// DSN of the Sentry project. Empty disables sending.
	DSN         string
	Release     string
	Environment string

	// RateLimitSize is the number of distinct messages tracked for
	// deduplication.
	RateLimitSize int
	// RateLimitInterval is the minimum time between two reports of the
	// same message.
	RateLimitInterval time.Duration

	// BeforeSend can modify or drop events.
	BeforeSend func(*sentry.Event, *sentry.EventHint) *sentry.Event
}

// Reporter sends captured errors and messages to Sentry on a private hub.
//
// A nil Reporter reports nothing.
type Reporter struct {
	hub     *sentry.Hub
	limiter *CaptureRateLimiter
	enabled bool
}

// NewReporter creates a reporter with its own Sentry client.
func NewReporter(params ReporterParams) (*Reporter, error) {
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:              params.DSN,
		Release:          params.Release,
		Environment:      params.Environment,
		AttachStacktrace: true,
		BeforeSend:       params.BeforeSend,
	})
	if err != nil {
		return nil, err
	}

	if params.RateLimitSize <= 0 {
		params.RateLimitSize = 100
	}
	if params.RateLimitInterval <= 0 {
		params.RateLimitInterval = time.Minute
	}
	limiter, err := NewCaptureRateLimiter(params.RateLimitSize, params.RateLimitInterval)
	if err != nil {
		return nil, err
	}

	return &Reporter{
		hub:     sentry.NewHub(client, sentry.NewScope()),
		limiter: limiter,
		enabled: params.DSN != "",
	}, nil
}

// Enabled reports whether events are sent anywhere.
func (r *Reporter) Enabled() bool {
	return r != nil && r.enabled
}

func (r *Reporter) captureError(err error, tags Tags) {
	if !r.Enabled() || err == nil || !r.limiter.AllowCapture(err.Error()) {
		return
	}
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		r.hub.CaptureException(err)
	})
}

func (r *Reporter) captureMessage(msg string, level sentry.Level, tags Tags) {
	if !r.Enabled() || !r.limiter.AllowCapture(msg) {
		return
	}
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		scope.SetLevel(level)
		r.hub.CaptureMessage(msg)
	})
}

// Flush waits up to timeout for queued events to be sent.
func (r *Reporter) Flush(timeout time.Duration) bool {
	if !r.Enabled() {
		return true
	}
	return r.hub.Flush(timeout)
}
