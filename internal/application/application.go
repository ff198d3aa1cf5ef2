package application

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/denver/internal/config"
	"github.com/eugenenazirov/denver/internal/envfile"
	"github.com/eugenenazirov/denver/internal/launcher"
	"github.com/eugenenazirov/denver/internal/resolver"
)

// Request is the bound command-line input of a single run.
type Request struct {
	Command []string
	Envs    []string
	Froms   []resolver.From
	Sets    []envfile.Pair
}

// Option configures New.
type Option func(*options)

type options struct {
	environ      func() []string
	launcherOpts []launcher.Option
}

// WithEnviron overrides the inherited environment snapshot source (primarily for tests).
func WithEnviron(environ func() []string) Option {
	return func(o *options) {
		o.environ = environ
	}
}

// WithLauncherOptions appends options to the process launcher.
func WithLauncherOptions(opts ...launcher.Option) Option {
	return func(o *options) {
		o.launcherOpts = append(o.launcherOpts, opts...)
	}
}

// App encapsulates the resolver and launcher built from one configuration.
type App struct {
	cfg      config.Config
	loader   *envfile.DirLoader
	resolver resolver.Resolver
	launcher *launcher.Launcher
	logger   *zap.Logger
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	o := options{environ: os.Environ}
	for _, opt := range opts {
		opt(&o)
	}

	if cfg.Dir != "" {
		info, err := os.Stat(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("environment directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("environment directory: %s is not a directory", cfg.Dir)
		}
	}

	loader := envfile.NewDirLoader(cfg.Dir)
	res := resolver.New(loader,
		resolver.WithEnviron(o.environ),
		resolver.WithLogger(logger),
	)

	launcherOpts := append([]launcher.Option{
		launcher.WithDetach(cfg.Detach),
		launcher.WithSignalLogRate(cfg.SignalLogRPS, cfg.SignalLogBurst),
	}, o.launcherOpts...)

	return &App{
		cfg:      cfg,
		loader:   loader,
		resolver: res,
		launcher: launcher.New(logger, launcherOpts...),
		logger:   logger,
	}, nil
}

// Direction returns the merge direction selected by the configuration.
func (a *App) Direction() resolver.Direction {
	if a.cfg.MergeLeft {
		return resolver.Left
	}
	return resolver.Right
}

// Resolve builds the invocation for req without starting anything.
func (a *App) Resolve(req Request) (launcher.Invocation, error) {
	env, err := a.resolver.Resolve(resolver.Request{
		Envs:      req.Envs,
		Direction: a.Direction(),
		Froms:     req.Froms,
		Sets:      req.Sets,
	})
	if err != nil {
		return launcher.Invocation{}, err
	}

	a.logger.Info("environment resolved",
		zap.Strings("envs", req.Envs),
		zap.Stringer("direction", a.Direction()),
		zap.Int("vars", len(env)),
	)
	return launcher.NewInvocation(req.Command, env), nil
}

// Run resolves req and runs its command. Nothing is started if resolution
// fails. The returned status is the child's exit status in wait mode and 0
// in detach mode.
func (a *App) Run(req Request) (int, error) {
	inv, err := a.Resolve(req)
	if err != nil {
		return 0, err
	}

	a.logger.Info("starting command",
		zap.String("command", strings.Join(inv.Command(), " ")),
		zap.Bool("detach", a.cfg.Detach),
	)
	return a.launcher.Run(inv)
}
