package client

import (
	"context"
	"testing"

	"soundgate/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewFluentdClientDisabled(t *testing.T) {
	conf := &config.Configuration{}
	conf.Fluentd.Enabled = false

	c, cleanup, err := NewFluentdClient(zap.NewNop(), conf)
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, &NoopClient{}, c)
	assert.NoError(t, c.Post(context.Background(), "request_log", map[string]any{"a": 1}))
	assert.NoError(t, c.Close())
}
