package bootstrap

import "errors"

// Error definitions for the bootstrap package.
var (
	// ErrDependencyUnavailable means the plugin manager could not be
	// fetched into place. There is no partial-success state: either the
	// clone completed or dependent stages must not run.
	ErrDependencyUnavailable = errors.New("plugin manager could not be fetched")
)
