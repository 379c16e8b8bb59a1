package sunbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunbind/sunbind/internal/checkpoint"
	"github.com/sunbind/sunbind/types"
)

func TestRecorderEveryN(t *testing.T) {
	store := checkpoint.NewMemStore()
	defer store.Close()

	var forwarded []float64
	rec := NewRecorder(store, 3, func(t float64, y types.Vector) int {
		forwarded = append(forwarded, t)
		return types.StatusSuccess
	})
	hook := rec.Hook()
	for i := 1; i <= 7; i++ {
		require.Equal(t, types.StatusSuccess, hook(float64(i), types.Vector{float64(i * i)}))
	}

	assert.Len(t, forwarded, 7)
	assert.Equal(t, 2, rec.Saved())
	require.Equal(t, 2, store.Len())

	p, found, err := store.Load(6)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 6.0, p.T)
	assert.Equal(t, []float64{36}, p.Y)
	require.NoError(t, rec.Err())
}

func TestRecorderForwardsNextStatus(t *testing.T) {
	store := checkpoint.NewMemStore()
	defer store.Close()

	rec := NewRecorder(store, 0, func(float64, types.Vector) int { return 5 })
	require.Equal(t, 5, rec.Hook()(0.1, types.Vector{1}))
	require.Equal(t, 1, rec.Saved(), "every < 1 records each step")
}

func TestRecorderStoreFailure(t *testing.T) {
	store := checkpoint.NewMemStore()
	require.NoError(t, store.Close())

	called := false
	rec := NewRecorder(store, 1, func(float64, types.Vector) int {
		called = true
		return types.StatusSuccess
	})
	require.Equal(t, types.StatusPostprocessFail, rec.Hook()(0.1, types.Vector{1}))
	require.False(t, called)
	require.ErrorIs(t, rec.Err(), checkpoint.ErrClosed)
	require.Zero(t, rec.Saved())
}
