// Package config loads denver's own settings from multiple sources (an
// optional YAML file, DENVER_* environment variables, CLI flags) with
// precedence: CLI flags > Environment variables > YAML config > Defaults.
// These settings control where environment files are read from and how the
// child is supervised; they are never passed to the child.
package config
