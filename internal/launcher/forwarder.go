package launcher

import (
	"fmt"
	"os"
	"os/signal"
	"sync"

	"go.uber.org/zap"
)

var (
	signalNotify  = signal.Notify
	signalStop    = signal.Stop
	sendInterrupt = interruptProcess
)

// Forwarder relays SIGINT received by this process to a single child.
type Forwarder struct {
	pid    int
	send   func(pid int) error
	ch     chan os.Signal
	errs   chan error
	done   chan struct{}
	exited chan struct{}
	once   sync.Once
}

// Forward installs a process-wide interrupt handler that delivers SIGINT to
// pid. The handler stays active until Stop is called. Delivery failures are
// reported on Errors.
func Forward(pid int, logger *zap.Logger, limiter rateLimiter) (*Forwarder, error) {
	if pid <= 0 {
		return nil, fmt.Errorf("%w: invalid pid %d", ErrSignalDelivery, pid)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	f := &Forwarder{
		pid:    pid,
		send:   sendInterrupt,
		ch:     make(chan os.Signal, 1),
		errs:   make(chan error, 1),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	signalNotify(f.ch, os.Interrupt)

	go f.loop(logger, limiter)
	return f, nil
}

// loop only touches the values captured by Forward.
func (f *Forwarder) loop(logger *zap.Logger, limiter rateLimiter) {
	defer close(f.exited)
	for {
		select {
		case <-f.done:
			return
		case <-f.ch:
			if limiter == nil || limiter.Allow() {
				logger.Info("forwarding interrupt", zap.Int("pid", f.pid))
			}
			if err := f.send(f.pid); err != nil {
				select {
				case f.errs <- fmt.Errorf("%w: pid %d: %w", ErrSignalDelivery, f.pid, err):
				default:
				}
			}
		}
	}
}

// Errors reports delivery failures.
func (f *Forwarder) Errors() <-chan error {
	return f.errs
}

// Stop uninstalls the handler and waits for the relay goroutine to exit.
// It is safe to call more than once.
func (f *Forwarder) Stop() {
	f.once.Do(func() {
		signalStop(f.ch)
		close(f.done)
	})
	<-f.exited
}
