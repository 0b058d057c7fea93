package plugin

import "errors"

// Error definitions for the plugin package.
var (
	ErrMissingRepo  = errors.New("plugin spec has no repository")
	ErrReservedName = errors.New("plugin name is reserved for the plugin manager")
)
