package samplesource_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wandb/wandb/graphkit/internal/observabilitytest"
	"github.com/wandb/wandb/graphkit/internal/samplesource"
)

func writeFileAndGetModTime(t *testing.T, path string, content string) time.Time {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	info, err := os.Stat(path)
	require.NoError(t, err)
	return info.ModTime()
}

func waitWithDeadline[S any](t *testing.T, c <-chan S, msg string) S {
	t.Helper()
	select {
	case x := <-c:
		return x
	case <-time.After(5 * time.Second):
		t.Fatal("took too long: " + msg)
		panic("unreachable")
	}
}

func TestWatcher(t *testing.T) {
	// The poller sleeps between polls, so these tests use a short period
	// and a generous deadline.
	newTestWatcher := func(t *testing.T) *samplesource.Watcher {
		return samplesource.NewWatcher(samplesource.WatcherParams{
			Logger:        observabilitytest.NewTestLogger(t),
			PollingPeriod: 10 * time.Millisecond,
		})
	}
	finishWithDeadline := func(t *testing.T, w *samplesource.Watcher) {
		finished := make(chan struct{})
		go func() {
			w.Finish()
			close(finished)
		}()
		waitWithDeadline(t, finished, "expected Finish() to complete")
	}

	t.Run("runs callback on file write", func(t *testing.T) {
		t.Parallel()

		// Buffered with non-blocking sends so extra events never stall
		// the watcher loop.
		onChange := make(chan struct{}, 1)
		file := filepath.Join(t.TempDir(), "samples.txt")
		t1 := writeFileAndGetModTime(t, file, "1 2 3")

		w := newTestWatcher(t)
		defer finishWithDeadline(t, w)
		require.NoError(t, w.Watch(file, func() {
			select {
			case onChange <- struct{}{}:
			default:
			}
		}))
		time.Sleep(100 * time.Millisecond)
		t2 := writeFileAndGetModTime(t, file, "1 2 3 4")

		if t1 == t2 {
			t.Skip("test ran too fast and mtime didn't change")
		}

		waitWithDeadline(t, onChange, "expected file callback to be called")
	})

	t.Run("fails if file does not exist", func(t *testing.T) {
		t.Parallel()

		w := newTestWatcher(t)
		defer finishWithDeadline(t, w)

		err := w.Watch(filepath.Join(t.TempDir(), "missing.txt"), func() {})
		require.Error(t, err)
	})

	t.Run("fails if Watch is called after Finish", func(t *testing.T) {
		t.Parallel()

		file := filepath.Join(t.TempDir(), "samples.txt")
		writeFileAndGetModTime(t, file, "1")

		w := newTestWatcher(t)
		finishWithDeadline(t, w)

		err := w.Watch(file, func() {})
		require.ErrorContains(t, err, "tried to call Watch() after Finish()")
	})

	t.Run("starts with a non-positive polling period", func(t *testing.T) {
		t.Parallel()

		file := filepath.Join(t.TempDir(), "samples.txt")
		writeFileAndGetModTime(t, file, "1")

		w := samplesource.NewWatcher(samplesource.WatcherParams{
			Logger:        observabilitytest.NewTestLogger(t),
			PollingPeriod: -time.Second,
		})
		require.NoError(t, w.Watch(file, func() {}))
		finishWithDeadline(t, w)
	})

	t.Run("finish without watch", func(t *testing.T) {
		t.Parallel()
		finishWithDeadline(t, newTestWatcher(t))
	})
}
