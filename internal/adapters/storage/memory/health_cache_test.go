package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCache_DownUntilTTLExpires(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newHealthCache(func() time.Time { return now })
	ctx := context.Background()

	down, err := c.IsDown(ctx, "planos")
	require.NoError(t, err)
	assert.False(t, down)

	require.NoError(t, c.MarkDown(ctx, "planos", 10*time.Second))

	down, _ = c.IsDown(ctx, "PLANOS")
	assert.True(t, down, "service names are case-insensitive")

	now = now.Add(10 * time.Second)
	down, _ = c.IsDown(ctx, "planos")
	assert.False(t, down, "expired entries are not down")
}

func TestHealthCache_MarkUpClears(t *testing.T) {
	c := newHealthCache(time.Now)
	ctx := context.Background()

	require.NoError(t, c.MarkDown(ctx, "receitas", time.Minute))
	require.NoError(t, c.MarkUp(ctx, "receitas"))

	down, err := c.IsDown(ctx, "receitas")
	require.NoError(t, err)
	assert.False(t, down)
}

func TestHealthCache_ZeroTTLIsNoop(t *testing.T) {
	c := newHealthCache(time.Now)
	ctx := context.Background()

	require.NoError(t, c.MarkDown(ctx, "usuarios", 0))
	down, _ := c.IsDown(ctx, "usuarios")
	assert.False(t, down)
}
