package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_DisabledWithoutEndpoint(t *testing.T) {
	c, err := Init("")
	require.NoError(t, err)
	assert.Nil(t, c.traceProvider)
	assert.NoError(t, c.Shutdown(context.Background()))
}
