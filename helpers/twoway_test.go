package helpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidroman0O/gohooks"
	"github.com/davidroman0O/gohooks/store"
)

func TestUseTwoWay(t *testing.T) {
	var (
		leftPeers, rightPeers Peers[string]
		leftSees, rightSees   []string
	)

	rt := gohooks.New(func(f *gohooks.Frame) error {
		UseTwoWay(f, "",
			func(f *gohooks.Frame, p Peers[string]) {
				leftPeers = p
				v, _ := p.Right()
				leftSees = append(leftSees, v)
			},
			func(f *gohooks.Frame, p Peers[string]) {
				rightPeers = p
				v, _ := p.Left()
				rightSees = append(rightSees, v)
			},
		)
		return nil
	})

	ctx := context.Background()
	require.NoError(t, rt.Render(ctx))

	// Callbacks created on the first render can already write.
	require.NoError(t, leftPeers.SetRight("from left"))
	require.NoError(t, rightPeers.SetLeft("from right"))
	require.NoError(t, rt.Render(ctx))

	assert.Equal(t, []string{"", "from left"}, leftSees)
	assert.Equal(t, []string{"", "from right"}, rightSees)

	l, ok := leftPeers.Left()
	assert.True(t, ok)
	assert.Equal(t, "from right", l)
	assert.Equal(t, 3, rt.Store().Len(), "the shared pair plus one value per side")
}

func TestPeersBeforeLink(t *testing.T) {
	s := store.NewStore()
	p := Peers[int]{shared: store.Handle[peerPair[int]](s, 1)}

	_, ok := p.Left()
	assert.False(t, ok)
	assert.ErrorIs(t, p.SetRight(1), store.ErrNotFound)
}
