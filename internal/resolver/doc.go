// Package resolver computes the environment a command runs with. It folds the
// inherited process environment, the default environment file and any named
// environment files into one map using a merge direction, then applies
// from-directives and literal overrides, which always win.
package resolver
