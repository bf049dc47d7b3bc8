package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, RegionPageKey("norway"), payload{"Norway", 3}, time.Minute))

	var got payload
	hit, err := m.Get(ctx, RegionPageKey("norway"), &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{"Norway", 3}, got)

	require.NoError(t, m.Delete(ctx, RegionPageKey("norway"), RegionListKey))
	hit, err = m.Get(ctx, RegionPageKey("norway"), &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Now()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", payload{Count: 1}, time.Second))
	m.now = func() time.Time { return now.Add(2 * time.Second) }

	var got payload
	hit, err := m.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestNoop_AlwaysMisses(t *testing.T) {
	ctx := context.Background()
	var c Cache = Noop{}
	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	var v int
	hit, err := c.Get(ctx, "k", &v)
	assert.NoError(t, err)
	assert.False(t, hit)
}
