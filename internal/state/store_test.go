package state

import (
	"sync"
	"testing"

	"github.com/NaiduBagana/cam2cart/internal/receipt"
	"github.com/NaiduBagana/cam2cart/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewOf(orderID string) View {
	return View{
		Receipt: receipt.Build(models.OrderRecord{OrderID: orderID}, models.SourceRemote),
		Source:  models.SourceRemote,
	}
}

func TestStore_EmptyUntilFirstCommit(t *testing.T) {
	s := NewStore()

	_, ok := s.Current()
	assert.False(t, ok)

	gen := s.Begin()
	_, ok = s.Current()
	assert.False(t, ok, "a started load must not install anything")

	require.True(t, s.Commit(gen, viewOf("A")))
	v, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "A", v.Receipt.OrderID)
	assert.Equal(t, gen, v.Generation)
}

func TestStore_ReplacesWholesale(t *testing.T) {
	s := NewStore()

	a := View{
		Receipt: receipt.Build(models.DemoOrder(), models.SourceFallback),
		Source:  models.SourceFallback,
	}
	require.True(t, s.Commit(s.Begin(), a))
	require.True(t, s.Commit(s.Begin(), viewOf("B")))

	v, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "B", v.Receipt.OrderID)
	assert.Empty(t, v.Receipt.Lines)
	assert.False(t, v.UsingDemoData())
}

func TestStore_LatestIssuedWins(t *testing.T) {
	s := NewStore()

	older := s.Begin()
	newer := s.Begin()

	assert.True(t, s.Commit(newer, viewOf("new")))
	assert.False(t, s.Commit(older, viewOf("old")), "a superseded load must be dropped")

	v, _ := s.Current()
	assert.Equal(t, "new", v.Receipt.OrderID)
	assert.Equal(t, newer, s.Issued())
}

func TestStore_OlderMayShowUntilNewerFinishes(t *testing.T) {
	s := NewStore()

	older := s.Begin()
	newer := s.Begin()

	assert.True(t, s.Commit(older, viewOf("old")))
	assert.True(t, s.Commit(newer, viewOf("new")))

	v, _ := s.Current()
	assert.Equal(t, "new", v.Receipt.OrderID)
}

func TestStore_ConcurrentCommits(t *testing.T) {
	s := NewStore()
	const loads = 64

	gens := make([]uint64, loads)
	for i := range gens {
		gens[i] = s.Begin()
	}

	var wg sync.WaitGroup
	for i := len(gens) - 1; i >= 0; i-- {
		wg.Add(1)
		go func(gen uint64) {
			defer wg.Done()
			s.Commit(gen, viewOf("x"))
		}(gens[i])
	}
	wg.Wait()

	v, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, uint64(loads), v.Generation)
}
