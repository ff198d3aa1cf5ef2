package launcher

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

const (
	defaultSignalLogRPS   = 1
	defaultSignalLogBurst = 3
)

// Option configures the behaviour of New.
type Option func(*Launcher)

// WithStdio overrides the standard streams handed to the child.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(l *Launcher) {
		l.stdin = stdin
		l.stdout = stdout
		l.stderr = stderr
	}
}

// WithDetach makes Run return right after the child starts instead of
// waiting for it.
func WithDetach(detach bool) Option {
	return func(l *Launcher) {
		l.detach = detach
	}
}

// WithSignalLogRate limits how often forwarded interrupts are logged.
func WithSignalLogRate(ratePerSecond float64, burst int) Option {
	return func(l *Launcher) {
		l.limiter = newTokenBucketLimiter(ratePerSecond, burst)
	}
}

// WithRateLimiter overrides the forwarded-interrupt log limiter (primarily for tests).
func WithRateLimiter(limiter rateLimiter) Option {
	return func(l *Launcher) {
		l.limiter = limiter
	}
}

// Launcher spawns a command with a resolved environment and relays interrupts to it.
type Launcher struct {
	logger  *zap.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	detach  bool
	limiter rateLimiter
}

// New creates a Launcher inheriting the parent's standard streams.
func New(logger *zap.Logger, opts ...Option) *Launcher {
	l := &Launcher{
		logger:  logger,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		limiter: newTokenBucketLimiter(defaultSignalLogRPS, defaultSignalLogBurst),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = zap.NewNop()
	}
	return l
}

// Run starts the invocation's command with its environment as the child's
// entire environment, then forwards SIGINT to it. In wait mode it returns the
// child's exit status; in detach mode it returns 0 as soon as the child is
// running and leaves the forwarder installed.
func (l *Launcher) Run(inv Invocation) (int, error) {
	argv := inv.Command()
	if len(argv) == 0 {
		return 0, fmt.Errorf("%w: empty command", ErrSpawn)
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = inv.Env().Environ()
	cmd.Stdin = l.stdin
	cmd.Stdout = l.stdout
	cmd.Stderr = l.stderr

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrSpawn, argv[0], err)
	}

	pid := cmd.Process.Pid
	l.logger.Debug("child started",
		zap.String("command", argv[0]),
		zap.Int("pid", pid),
		zap.Int("vars", len(cmd.Env)),
	)

	fwd, err := Forward(pid, l.logger, l.limiter)
	if err != nil {
		return 0, err
	}

	if l.detach {
		if err := cmd.Process.Release(); err != nil {
			l.logger.Warn("release child", zap.Int("pid", pid), zap.Error(err))
		}
		return 0, nil
	}
	defer fwd.Stop()

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- cmd.Wait()
	}()

	select {
	case err := <-fwd.Errors():
		return 0, err
	case err := <-waitErr:
		var exitErr *exec.ExitError
		if err != nil && !errors.As(err, &exitErr) {
			return 0, fmt.Errorf("wait for %s: %w", argv[0], err)
		}
		code := exitStatus(cmd.ProcessState)
		l.logger.Debug("child exited", zap.Int("pid", pid), zap.Int("status", code))
		return code, nil
	}
}
