package resolver

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/eugenenazirov/denver/internal/envfile"
)

// Option configures a resolver built by New.
type Option func(*layeredResolver)

// WithEnviron overrides the source of the inherited process environment.
func WithEnviron(environ func() []string) Option {
	return func(r *layeredResolver) {
		r.environ = environ
	}
}

// WithLogger attaches a logger for resolution tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(r *layeredResolver) {
		r.logger = logger
	}
}

type layeredResolver struct {
	loader  envfile.Loader
	environ func() []string
	logger  *zap.Logger
}

// New creates a Resolver reading environment files through loader.
func New(loader envfile.Loader, opts ...Option) Resolver {
	r := &layeredResolver{
		loader:  loader,
		environ: os.Environ,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// Resolve layers the process environment, the default file, the named files,
// the from-directives and the literal overrides, in that order. Any file
// failure aborts the whole resolution.
func (r *layeredResolver) Resolve(req Request) (envfile.EnvMap, error) {
	acc := envfile.FromEnviron(r.environ())

	base, err := r.loader.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("load default environment: %w", err)
	}
	acc = r.fold(acc, base, req.Direction, "default")

	for _, name := range req.Envs {
		src, err := r.loader.Load(name)
		if err != nil {
			return nil, fmt.Errorf("load environment %q: %w", name, err)
		}
		acc = r.fold(acc, src, req.Direction, name)
	}

	for _, from := range req.Froms {
		src, err := r.loader.Load(from.Env)
		if err != nil {
			return nil, fmt.Errorf("load environment %q for %s: %w", from.Env, from.Key, err)
		}
		value, ok := src[from.Key]
		if !ok {
			r.logger.Debug("from key not found",
				zap.String("key", from.Key),
				zap.String("env", from.Env),
			)
			continue
		}
		acc[from.Key] = value
	}

	for _, p := range req.Sets {
		acc.Set(p)
	}

	return acc, nil
}

// Fold merges src into acc and returns the result as a new map. With Right,
// keys in src overwrite keys in acc; with Left, only keys missing from acc are
// taken from src.
func Fold(acc, src envfile.EnvMap, dir Direction) envfile.EnvMap {
	out := acc.Clone()
	for k, v := range src {
		if dir == Left {
			if _, exists := out[k]; exists {
				continue
			}
		}
		out[k] = v
	}
	return out
}

func (r *layeredResolver) fold(acc, src envfile.EnvMap, dir Direction, name string) envfile.EnvMap {
	r.logger.Debug("environment folded",
		zap.String("env", name),
		zap.Stringer("direction", dir),
		zap.Int("vars", len(src)),
	)
	return Fold(acc, src, dir)
}
