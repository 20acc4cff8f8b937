package observability

import (
	"crypto/sha256"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// CaptureRateLimiter drops repeated reports of the same message.
//
// It remembers when each message digest was last reported. Memory is
// bounded by an LRU cache, so with many distinct messages an evicted
// repeat may still get through.
//
// A nil limiter allows everything.
type CaptureRateLimiter struct {
	cache       *lru.Cache
	minInterval time.Duration
}

// NewCaptureRateLimiter tracks up to size messages and allows each one
// at most once per minInterval.
func NewCaptureRateLimiter(size int, minInterval time.Duration) (*CaptureRateLimiter, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &CaptureRateLimiter{cache: cache, minInterval: minInterval}, nil
}

// AllowCapture reports whether msg may be reported now, and if so
// records the time.
func (rl *CaptureRateLimiter) AllowCapture(msg string) bool {
	if rl == nil {
		return true
	}

	digest := sha256.Sum256([]byte(msg))
	key := string(digest[:])
	now := time.Now()

	if last, ok := rl.cache.Get(key); ok && now.Sub(last.(time.Time)) < rl.minInterval {
		return false
	}

	rl.cache.Add(key, now)
	return true
}
