package launcher

import "errors"

var (
	// ErrSpawn is returned when the command cannot be found or started.
	ErrSpawn = errors.New("cannot start command")
	// ErrSignalDelivery is returned when an interrupt cannot be forwarded to the child.
	ErrSignalDelivery = errors.New("cannot forward interrupt to child")
)
