package gesture

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var (
	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("oracle already started")
	// ErrStopped is returned when Start is called after Stop.
	ErrStopped = errors.New("oracle stopped")
)

// Oracle produces landmark frames at its own cadence and publishes them into
// a mailbox. Start acquires the underlying source; Stop releases it and is
// safe to call more than once.
type Oracle interface {
	Start(ctx context.Context) error
	Stop() error
	Mailbox() *Mailbox
}

// SteppedOracle can run on the caller's clock instead of its own ticker.
// After StartStepped no goroutine runs; frames are published only from
// Advance, at most one per period of the clock Advance is given.
type SteppedOracle interface {
	Oracle
	StartStepped() error
	Advance(now time.Duration)
}

// producer yields the hands for the frame at elapsed time t. ok=false ends
// the stream.
type producer func(t time.Duration) (hands []Hand, ok bool)

// loop runs a producer on a ticker and publishes into a mailbox. It carries
// the start/stop bookkeeping shared by the concrete oracles.
type loop struct {
	name   string
	period time.Duration
	box    Mailbox

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
	stop    sync.Once
	release func() error

	// Stepped mode
	next   producer
	primed bool
	ended  bool
	base   time.Duration
	nextAt time.Duration
}

func newLoop(name string, period time.Duration) *loop {
	if period <= 0 {
		period = time.Second / 30
	}
	return &loop{name: name, period: period}
}

// resetBox clears the mailbox; oracles use it as their release step.
func (l *loop) resetBox() error {
	l.box.Reset()
	return nil
}

// Mailbox returns the cell the oracle publishes into.
func (l *loop) Mailbox() *Mailbox {
	return &l.box
}

// claim marks the loop started. Callers hold mu.
func (l *loop) claim() error {
	if l.stopped {
		return ErrStopped
	}
	if l.started {
		return ErrAlreadyStarted
	}
	l.started = true
	return nil
}

// runStepped arms the producer for Advance. release is called once, by Stop.
func (l *loop) runStepped(next producer, release func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.claim(); err != nil {
		return err
	}
	l.next = next
	l.release = release
	slog.Info("landmark oracle started", "oracle", l.name, "period", l.period, "clock", "stepped")
	return nil
}

// Advance publishes the frame for now if a period has passed since the last
// one. The first call sets the stream's zero time. It does nothing unless the
// loop was started with runStepped and has not been stopped.
func (l *loop) Advance(now time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.next == nil || l.stopped || l.ended {
		return
	}
	if !l.primed {
		l.primed = true
		l.base = now
		l.nextAt = now
	}
	if now < l.nextAt {
		return
	}

	hands, ok := l.next(now - l.base)
	if !ok {
		l.ended = true
		slog.Info("landmark stream ended", "oracle", l.name)
		return
	}
	l.box.Put(hands)

	l.nextAt += l.period
	if l.nextAt <= now {
		l.nextAt = now + l.period
	}
}

// run starts the producer goroutine. release is called once, by Stop.
func (l *loop) run(ctx context.Context, next producer, release func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.claim(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	l.release = release

	go func() {
		defer close(l.done)
		ticker := time.NewTicker(l.period)
		defer ticker.Stop()

		start := time.Now()
		for {
			hands, ok := next(time.Since(start))
			if !ok {
				slog.Info("landmark stream ended", "oracle", l.name)
				return
			}
			l.box.Put(hands)

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	slog.Info("landmark oracle started", "oracle", l.name, "period", l.period)
	return nil
}

// Stop cancels the producer, waits for it to exit and releases the source.
func (l *loop) Stop() error {
	var err error
	l.stop.Do(func() {
		l.mu.Lock()
		l.stopped = true
		cancel, done, release := l.cancel, l.done, l.release
		l.next = nil
		l.mu.Unlock()

		if cancel != nil {
			cancel()
			<-done
		}
		if release != nil {
			err = release()
		}
		slog.Info("landmark oracle stopped", "oracle", l.name)
	})
	return err
}
