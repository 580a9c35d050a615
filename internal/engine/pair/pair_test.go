package pair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nholm/leaper/internal/engine/document"
)

func pos(line, col uint32) document.Position {
	return document.Position{Line: line, Col: col}
}

func mk(openCol, closeCol uint32) Pair {
	return Pair{Open: pos(0, openCol), Close: pos(0, closeCol)}
}

func TestPairContains(t *testing.T) {
	p := mk(5, 10)

	assert.False(t, p.Contains(pos(0, 5)), "at open is outside")
	assert.True(t, p.Contains(pos(0, 6)), "just after open is inside")
	assert.True(t, p.Contains(pos(0, 10)), "at close is inside")
	assert.False(t, p.Contains(pos(0, 11)), "past close is outside")
	assert.False(t, p.Contains(pos(1, 7)), "other line is outside")
}

func TestPairValid(t *testing.T) {
	assert.True(t, mk(5, 10).Valid())
	assert.False(t, mk(10, 5).Valid())
	assert.False(t, mk(5, 5).Valid())
	assert.False(t, Pair{Open: pos(0, 5), Close: pos(1, 6)}.Valid())
}

func TestClusterPushOrdering(t *testing.T) {
	var c Cluster
	require.NoError(t, c.Push(mk(0, 20)))
	require.NoError(t, c.Push(mk(3, 15)))
	require.NoError(t, c.Push(mk(5, 10)))

	assert.Equal(t, 3, c.Len())
	assert.True(t, c.Nested())

	inner, ok := c.Nearest()
	require.True(t, ok)
	assert.Equal(t, mk(5, 10), inner)
}

func TestClusterPushRejectsNonNested(t *testing.T) {
	var c Cluster
	require.NoError(t, c.Push(mk(5, 10)))

	err := c.Push(mk(3, 15))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotNested)
	assert.Equal(t, 1, c.Len(), "failed push must not mutate the cluster")
}

func TestClusterPushRejectsMalformed(t *testing.T) {
	var c Cluster
	err := c.Push(mk(10, 5))
	assert.ErrorIs(t, err, ErrMalformedPair)
}

func TestClusterPopNearest(t *testing.T) {
	var c Cluster
	require.NoError(t, c.Push(mk(0, 20)))
	require.NoError(t, c.Push(mk(5, 10)))

	p, ok := c.PopNearest()
	require.True(t, ok)
	assert.Equal(t, mk(5, 10), p)
	assert.Equal(t, 1, c.Len())

	p, ok = c.PopNearest()
	require.True(t, ok)
	assert.Equal(t, mk(0, 20), p)

	_, ok = c.PopNearest()
	assert.False(t, ok)
}

func TestClusterRetainPreservesOrder(t *testing.T) {
	var c Cluster
	require.NoError(t, c.Push(mk(0, 30)))
	require.NoError(t, c.Push(mk(2, 20)))
	require.NoError(t, c.Push(mk(4, 10)))

	dropped := c.Retain(func(p Pair) bool { return p.Open.Col != 2 })
	require.Len(t, dropped, 1)
	assert.Equal(t, mk(2, 20), dropped[0])

	pairs := c.Pairs()
	require.Len(t, pairs, 2)
	assert.Equal(t, mk(0, 30), pairs[0])
	assert.Equal(t, mk(4, 10), pairs[1])
}

func TestClusterRetainContaining(t *testing.T) {
	var c Cluster
	require.NoError(t, c.Push(mk(0, 30)))
	require.NoError(t, c.Push(mk(2, 20)))
	require.NoError(t, c.Push(mk(4, 10)))

	t.Run("cursor inside all keeps all", func(t *testing.T) {
		cc := c
		cc.pairs = c.Pairs()
		dropped := cc.RetainContaining(pos(0, 7))
		assert.Empty(t, dropped)
		assert.Equal(t, 3, cc.Len())
	})

	t.Run("cursor between inner opens drops inner only", func(t *testing.T) {
		cc := Cluster{pairs: c.Pairs()}
		dropped := cc.RetainContaining(pos(0, 3))
		require.Len(t, dropped, 2)
		assert.Equal(t, 1, cc.Len())
		assert.True(t, cc.Nested())
	})

	t.Run("cursor on another line drops everything", func(t *testing.T) {
		cc := Cluster{pairs: c.Pairs()}
		dropped := cc.RetainContaining(pos(1, 7))
		assert.Len(t, dropped, 3)
		assert.True(t, cc.IsEmpty())
	})

	t.Run("jump and stepwise moves agree", func(t *testing.T) {
		jump := Cluster{pairs: c.Pairs()}
		jump.RetainContaining(pos(0, 1))

		step := Cluster{pairs: c.Pairs()}
		for col := uint32(6); col >= 1; col-- {
			step.RetainContaining(pos(0, col))
		}

		assert.Equal(t, jump.Pairs(), step.Pairs())
	})
}

func TestClusterClear(t *testing.T) {
	var c Cluster
	require.NoError(t, c.Push(mk(0, 20)))
	require.NoError(t, c.Push(mk(5, 10)))

	dropped := c.Clear()
	assert.Len(t, dropped, 2)
	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Clear(), "clearing an empty cluster drops nothing")
}
