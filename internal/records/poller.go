package records

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Poller re-fetches a fixed set of resources on an interval. It is started
// and stopped explicitly with the lifetime of whatever consumes it.
type Poller struct {
	refresher *Refresher
	interval  time.Duration
	resources []string
	logger    *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a stopped poller.
func NewPoller(refresher *Refresher, interval time.Duration, resources []string, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		refresher: refresher,
		interval:  interval,
		resources: append([]string(nil), resources...),
		logger:    logger,
	}
}

// Start launches the polling loop. The first poll runs immediately. Calling
// Start on a running poller does nothing.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.loop(ctx, p.done)

	p.logger.Info("Poller started",
		zap.Duration("interval", p.interval),
		zap.Strings("resources", p.resources))
}

// Stop cancels the loop and waits for it to exit. It is safe to call on a
// stopped poller.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	p.logger.Info("Poller stopped")
}

// Running reports whether the loop is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

func (p *Poller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	interval := p.interval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

// poll runs one refresh. Failures are logged only; the store keeps serving
// the previous snapshot.
func (p *Poller) poll(ctx context.Context) {
	if err := p.refresher.Refresh(ctx, p.resources...); err != nil && ctx.Err() == nil {
		p.logger.Warn("Poll failed", zap.Error(err))
	}
}
