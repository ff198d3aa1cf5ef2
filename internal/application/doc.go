// Package application provides dependency wiring for a single denver run.
// It builds the environment file loader, the resolver and the launcher from
// a configuration, keeping the main package focused on CLI parsing and exit
// handling.
package application
