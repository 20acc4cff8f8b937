package samplesource

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	poller "github.com/radovskyb/watcher"
	"golang.org/x/sync/errgroup"

	"github.com/wandb/wandb/graphkit/internal/observability"
)

// DefaultPollingPeriod is how often watched files are polled when
// WatcherParams.PollingPeriod is unset.
const DefaultPollingPeriod = 500 * time.Millisecond

type WatcherParams struct {
	Logger *observability.CoreLogger

	// PollingPeriod is how often to poll files for updates. Periods under
	// 1ms use DefaultPollingPeriod.
	PollingPeriod time.Duration
}

// Watcher invokes callbacks when watched sample files are written.
//
// It polls the operating system's file system, not an afero.Fs.
type Watcher struct {
	mu         sync.Mutex
	logger     *observability.CoreLogger
	delegate   *poller.Watcher
	wg         sync.WaitGroup
	handlers   map[string]func()
	isFinished bool

	pollingPeriod time.Duration
}

func NewWatcher(params WatcherParams) *Watcher {
	if params.PollingPeriod < time.Millisecond {
		params.PollingPeriod = DefaultPollingPeriod
	}
	if params.Logger == nil {
		params.Logger = observability.NewNoOpLogger()
	}

	return &Watcher{
		logger:        params.Logger,
		handlers:      make(map[string]func()),
		pollingPeriod: params.PollingPeriod,
	}
}

// Watch starts calling onChange after the file at path is written or
// recreated. onChange runs on the watcher's goroutine.
func (w *Watcher) Watch(path string, onChange func()) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isFinished {
		return fmt.Errorf("samplesource: tried to call Watch() after Finish()")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if w.delegate == nil {
		if err := w.startWatcher(); err != nil {
			return err
		}
	}

	if err := w.delegate.Add(absPath); err != nil {
		return fmt.Errorf("samplesource: watching %s: %v", path, err)
	}
	w.handlers[absPath] = onChange
	w.logger.Debug(fmt.Sprintf("watcher: watching %s", path))

	return nil
}

// Finish stops the watcher and waits for its goroutines to exit.
func (w *Watcher) Finish() {
	w.mu.Lock()
	w.isFinished = true
	delegate := w.delegate
	w.mu.Unlock()

	if delegate != nil {
		delegate.Close()
	}
	w.wg.Wait()
}

func (w *Watcher) startWatcher() error {
	w.delegate = poller.New()
	// Create is kept as well: the poller may report an existing file as
	// created right after Add, and editors often replace files on save.
	w.delegate.FilterOps(poller.Write, poller.Create)

	grp, ctx := errgroup.WithContext(context.Background())
	w.wg.Add(2)

	grp.Go(func() error {
		defer w.wg.Done()
		w.loopWatchFiles(ctx)
		return nil
	})

	grp.Go(func() error {
		defer w.wg.Done()
		return w.delegate.Start(w.pollingPeriod)
	})

	// Close is a no-op until Start is looping, so wait for that (or for
	// Start to fail) before returning.
	//
	// Start fails only for a period under 1ns or a poller that is already
	// running. NewWatcher rules out the first and the poller is new, so
	// Wait always returns. If Start did fail, the goroutine below would
	// stay blocked for the life of the process.
	started := make(chan struct{})
	go func() {
		w.delegate.Wait()
		close(started)
	}()
	select {
	case <-started:
	case <-ctx.Done():
		return grp.Wait()
	}

	return nil
}

// loopWatchFiles processes file events until the poller closes.
//
// ctx is canceled if the poller fails to start, in which case no
// channel would ever receive.
func (w *Watcher) loopWatchFiles(ctx context.Context) {
	for {
		select {
		case event := <-w.delegate.Event:
			if event.IsDir() {
				continue
			}
			w.onChange(event.Path)

		case err := <-w.delegate.Error:
			w.logger.CaptureError(fmt.Errorf("watcher: error in file watcher: %v", err))

		case <-w.delegate.Closed:
			return

		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) onChange(path string) {
	w.mu.Lock()
	handler := w.handlers[path]
	w.mu.Unlock()

	if handler != nil {
		w.logger.Debug(fmt.Sprintf("watcher: %s changed", path))
		handler()
	}
}
