package graph

import (
	"sync"
	"testing"

	"github.com/navya-devv/optirelief/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loc(id string) models.Location {
	return models.Location{ID: id, Name: "Location " + id}
}

func TestStore_AddEdgeUnknownLocation(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddLocation(loc("A")))

	err := s.AddEdge("A", "B", 5, false)
	require.ErrorIs(t, err, ErrUnknownLocation)

	err = s.AddEdge("Z", "A", 5, false)
	require.ErrorIs(t, err, ErrUnknownLocation)
}

func TestStore_AddEdgeNegativeDistance(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddLocation(loc("A")))
	require.NoError(t, s.AddLocation(loc("B")))

	require.ErrorIs(t, s.AddEdge("A", "B", -1, false), ErrNegativeDistance)
}

func TestStore_EmptyLocationID(t *testing.T) {
	s := NewStore()
	require.ErrorIs(t, s.AddLocation(models.Location{}), ErrEmptyLocationID)
}

func TestStore_UndirectedEdgeMirrors(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddLocation(loc("A")))
	require.NoError(t, s.AddLocation(loc("B")))
	require.NoError(t, s.AddEdge("A", "B", 7, false))

	forward, err := s.Neighbors("A")
	require.NoError(t, err)
	assert.Equal(t, []Neighbor{{ID: "B", Distance: 7}}, forward)

	backward, err := s.Neighbors("B")
	require.NoError(t, err)
	assert.Equal(t, []Neighbor{{ID: "A", Distance: 7}}, backward)
}

func TestStore_DirectedEdgeOneWay(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddLocation(loc("A")))
	require.NoError(t, s.AddLocation(loc("B")))
	require.NoError(t, s.AddEdge("A", "B", 3, true))

	forward, err := s.Neighbors("A")
	require.NoError(t, err)
	assert.Len(t, forward, 1)

	backward, err := s.Neighbors("B")
	require.NoError(t, err)
	assert.Empty(t, backward)
}

func TestStore_DuplicateEdgeReplaces(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddLocation(loc("A")))
	require.NoError(t, s.AddLocation(loc("B")))
	require.NoError(t, s.AddEdge("A", "B", 10, false))
	require.NoError(t, s.AddEdge("A", "B", 4, false))

	d, ok := s.Distance("A", "B")
	require.True(t, ok)
	assert.Equal(t, 4.0, d)
}

func TestStore_ReAddLocationKeepsOriginal(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddLocation(models.Location{ID: "A", Name: "first"}))
	require.NoError(t, s.AddLocation(models.Location{ID: "A", Name: "second"}))

	got, ok := s.Location("A")
	require.True(t, ok)
	assert.Equal(t, "first", got.Name)
}

func TestStore_NeighborsSorted(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"A", "C", "B", "D"} {
		require.NoError(t, s.AddLocation(loc(id)))
	}
	require.NoError(t, s.AddEdge("A", "D", 1, true))
	require.NoError(t, s.AddEdge("A", "B", 1, true))
	require.NoError(t, s.AddEdge("A", "C", 1, true))

	neighbors, err := s.Neighbors("A")
	require.NoError(t, err)
	assert.Equal(t, "B", neighbors[0].ID)
	assert.Equal(t, "C", neighbors[1].ID)
	assert.Equal(t, "D", neighbors[2].ID)
}

func TestStore_ConcurrentReadersAndWriters(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddLocation(loc("A")))
	require.NoError(t, s.AddLocation(loc("B")))
	require.NoError(t, s.AddEdge("A", "B", 1, false))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = s.Neighbors("A")
				_ = s.Locations()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.AddEdge("A", "B", float64(j), false)
			}
		}()
	}
	wg.Wait()

	_, ok := s.Distance("A", "B")
	assert.True(t, ok)
}
