// internal/app/system/workers/prewarm.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/jefgalicia/jefsite/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Refresher rebuilds cached pages. *pagebuild.Builder implements it.
type Refresher interface {
	RefreshAll(ctx context.Context) error
}

// Prewarm is a background worker that builds the directory pages before the
// first request and, optionally, again on a fixed interval.
type Prewarm struct {
	pages    Refresher
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewPrewarm creates a new prewarm worker.
//
// Parameters:
//   - pages: the page builder to refresh
//   - logger: zap logger for logging
//   - interval: how often to rebuild after the initial warm-up; zero or less
//     warms once at start
func NewPrewarm(pages Refresher, logger *zap.Logger, interval time.Duration) *Prewarm {
	return &Prewarm{
		pages:    pages,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background loop. The first refresh runs immediately.
func (w *Prewarm) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("prewarm worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish. It is safe to
// call more than once.
func (w *Prewarm) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
	w.log.Info("prewarm worker stopped")
}

func (w *Prewarm) run() {
	defer w.wg.Done()

	w.refresh()
	if w.interval <= 0 {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.refresh()
		}
	}
}

func (w *Prewarm) refresh() {
	// Leave room for the build log write after the directory calls.
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Directory()+timeouts.Short())
	defer cancel()

	start := time.Now()
	if err := w.pages.RefreshAll(ctx); err != nil {
		w.log.Warn("page prewarm incomplete", zap.Error(err))
		return
	}
	w.log.Info("pages prewarmed", zap.Duration("took", time.Since(start)))
}
