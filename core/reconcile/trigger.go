package reconcile

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// trigger states
const (
	stopped int32 = iota
	running
	transitioning
)

const defaultTriggerInterval = time.Second * 5

// TickFunc is the work a Trigger runs on every interval.
type TickFunc func(ctx context.Context) error

// Trigger runs a TickFunc on a fixed interval until stopped.
type Trigger struct {
	name     string
	interval time.Duration
	tick     TickFunc
	logger   *zap.Logger
	metrics  *Metrics

	state int32

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewTrigger creates a stopped trigger.
func NewTrigger(name string, interval time.Duration, tick TickFunc, logger *zap.Logger, metrics *Metrics) *Trigger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = mustMetrics()
	}
	if interval <= 0 {
		interval = defaultTriggerInterval
	}
	return &Trigger{
		name:     name,
		interval: interval,
		tick:     tick,
		logger:   logger.With(zap.String("trigger", name)),
		metrics:  metrics,
	}
}

// Start begins running the tick on the trigger's interval. The first tick fires
// after one interval. Starting a running trigger returns ErrTriggerNotStopped.
func (t *Trigger) Start() error {
	if !atomic.CompareAndSwapInt32(&t.state, stopped, transitioning) {
		t.logger.Error("Start called when the trigger was not stopped", zap.Error(ErrTriggerNotStopped))
		return ErrTriggerNotStopped
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.mu.Lock()
	t.cancel = cancel
	t.mu.Unlock()

	ticker := time.NewTicker(t.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.run(ctx)
			}
		}
	}()

	atomic.StoreInt32(&t.state, running)
	return nil
}

// Stop cancels the trigger. A tick in progress sees its context cancelled but is
// not waited for.
func (t *Trigger) Stop() error {
	if !atomic.CompareAndSwapInt32(&t.state, running, transitioning) {
		return ErrTriggerNotRunning
	}

	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.mu.Unlock()

	atomic.StoreInt32(&t.state, stopped)
	return nil
}

// Running reports whether the trigger is scheduled.
func (t *Trigger) Running() bool {
	return atomic.LoadInt32(&t.state) == running
}

func (t *Trigger) run(ctx context.Context) {
	outcome := SuccessOutcome
	if err := t.tick(ctx); err != nil {
		outcome = FailureOutcome
		if ctx.Err() == nil {
			t.logger.Error("Trigger tick failed", zap.Error(err))
		}
	}
	t.metrics.Ticks.WithLabelValues(t.name, outcome).Inc()
}
