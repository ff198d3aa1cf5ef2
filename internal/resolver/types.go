package resolver

import "github.com/eugenenazirov/denver/internal/envfile"

// Direction decides which side of a fold wins on key collision.
type Direction int

const (
	// Right lets later sources overwrite earlier values.
	Right Direction = iota
	// Left preserves earlier values; later sources only fill gaps.
	Left
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// From pulls the value of Key out of the environment named Env.
type From struct {
	Key string
	Env string
}

// Request carries the inputs of a single resolution.
type Request struct {
	// Envs are the named environments layered over the default one, in order.
	Envs      []string
	Direction Direction
	// Froms are applied after all layers, before Sets.
	Froms []From
	// Sets are literal overrides applied last.
	Sets []envfile.Pair
}

// Resolver describes the behaviour required from an environment resolver.
type Resolver interface {
	Resolve(req Request) (envfile.EnvMap, error)
}
