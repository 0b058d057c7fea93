package env

import (
	"os"

	"github.com/nvinit-dev/nvinit/internal/envvar"
)

// Environment identifies the runtime environment.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// FromEnv resolves the environment from NVINIT_ENV.
// Anything other than "production" is treated as development.
func FromEnv() Environment {
	if os.Getenv(envvar.NvinitEnv) == string(Production) {
		return Production
	}
	return Development
}

// IsDevelopment reports whether e is the development environment.
func (e Environment) IsDevelopment() bool {
	return e == Development
}
