package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/nourish/internal/adapters/config"
)

func TestPathFromContext(t *testing.T) {
	assert.Empty(t, config.PathFromContext(context.Background()))

	ctx := config.WithPath(context.Background(), "/etc/nourish.yaml")
	assert.Equal(t, "/etc/nourish.yaml", config.PathFromContext(ctx))
}

func TestProgressFromContext(t *testing.T) {
	assert.False(t, config.ProgressFromContext(context.Background()))

	ctx := config.WithProgress(context.Background(), true)
	assert.True(t, config.ProgressFromContext(ctx))
	assert.False(t, config.ProgressFromContext(config.WithProgress(ctx, false)))
}
