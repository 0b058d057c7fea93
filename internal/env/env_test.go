package env

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nvinit-dev/nvinit/internal/envvar"
)

func TestFromEnv(t *testing.T) {
	t.Setenv(envvar.NvinitEnv, "")
	assert.Equal(t, Development, FromEnv())

	t.Setenv(envvar.NvinitEnv, "production")
	assert.Equal(t, Production, FromEnv())

	t.Setenv(envvar.NvinitEnv, "staging")
	assert.Equal(t, Development, FromEnv())

	assert.True(t, Development.IsDevelopment())
	assert.False(t, Production.IsDevelopment())
}
