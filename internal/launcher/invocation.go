package launcher

import (
	"slices"

	"github.com/eugenenazirov/denver/internal/envfile"
)

// Invocation is a command together with the environment it runs with.
// It is immutable once built.
type Invocation struct {
	command []string
	env     envfile.EnvMap
}

// NewInvocation copies command and env into a new Invocation.
func NewInvocation(command []string, env envfile.EnvMap) Invocation {
	return Invocation{
		command: slices.Clone(command),
		env:     env.Clone(),
	}
}

// Command returns a copy of the command tokens.
func (i Invocation) Command() []string {
	return slices.Clone(i.command)
}

// Env returns a copy of the resolved environment.
func (i Invocation) Env() envfile.EnvMap {
	return i.env.Clone()
}
