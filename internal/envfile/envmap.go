package envfile

import (
	"sort"
	"strings"
)

// Pair is a single key/value assignment.
type Pair struct {
	Key   string
	Value string
}

// EnvMap maps variable names to values. Keys are unique; the last write wins.
type EnvMap map[string]string

// FromEnviron builds an EnvMap from "KEY=VALUE" entries as returned by os.Environ.
// Entries without "=" are ignored.
func FromEnviron(environ []string) EnvMap {
	env := make(EnvMap, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}

// Set stores the pair, replacing any existing value for its key.
func (e EnvMap) Set(p Pair) {
	e[p.Key] = p.Value
}

// Clone returns an independent copy of the map.
func (e EnvMap) Clone() EnvMap {
	out := make(EnvMap, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Keys returns the variable names in sorted order.
func (e EnvMap) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Environ renders the map as sorted "KEY=VALUE" entries suitable for exec.Cmd.Env.
func (e EnvMap) Environ() []string {
	out := make([]string, 0, len(e))
	for _, k := range e.Keys() {
		out = append(out, k+"="+e[k])
	}
	return out
}
