package envfile

import "errors"

var (
	// ErrFileAccess is returned when an environment file cannot be opened or read.
	ErrFileAccess = errors.New("environment file is not accessible")
)
