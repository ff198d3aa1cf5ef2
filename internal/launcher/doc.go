// Package launcher runs a command with a fully specified environment and
// relays SIGINT received by this process to the child for as long as the
// relay is installed.
package launcher
