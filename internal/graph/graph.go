// Package graph provides the thread-safe weighted location graph that the
// routing and dispatch components operate on. Reads take a shared lock so
// concurrent route computations never block each other; writes are
// serialized.
package graph

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/navya-devv/optirelief/internal/models"
)

var (
	// ErrUnknownLocation indicates an operation referenced a location id
	// that was never added to the store.
	ErrUnknownLocation = errors.New("graph: unknown location")

	// ErrEmptyLocationID indicates a location with an empty id.
	ErrEmptyLocationID = errors.New("graph: location id is empty")

	// ErrNegativeDistance indicates an edge with a negative distance.
	ErrNegativeDistance = errors.New("graph: negative edge distance")
)

// Neighbor is one outgoing hop from a location.
type Neighbor struct {
	ID       string
	Distance float64
}

type Store struct {
	mu        sync.RWMutex
	locations map[string]models.Location
	adjacency map[string]map[string]float64 // from -> to -> distance
}

func NewStore() *Store {
	return &Store{
		locations: make(map[string]models.Location),
		adjacency: make(map[string]map[string]float64),
	}
}

// AddLocation registers a location. Re-adding an existing id is a no-op so
// callers can replay seed data safely.
func (s *Store) AddLocation(loc models.Location) error {
	if loc.ID == "" {
		return ErrEmptyLocationID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.locations[loc.ID]; exists {
		return nil
	}
	s.locations[loc.ID] = loc
	s.adjacency[loc.ID] = make(map[string]float64)
	return nil
}

// AddEdge connects two existing locations. A duplicate (from, to) pair
// replaces the stored distance. Undirected edges insert the mirror entry.
func (s *Store) AddEdge(from, to string, distance float64, directed bool) error {
	if distance < 0 {
		return fmt.Errorf("%w: %s->%s distance=%v", ErrNegativeDistance, from, to, distance)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.locations[from]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLocation, from)
	}
	if _, ok := s.locations[to]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLocation, to)
	}

	s.adjacency[from][to] = distance
	if !directed {
		s.adjacency[to][from] = distance
	}
	return nil
}

// Neighbors returns the outgoing hops of id sorted by neighbor id, so
// traversals over equal-distance alternatives are deterministic.
func (s *Store) Neighbors(id string) ([]Neighbor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	adj, ok := s.adjacency[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocation, id)
	}

	neighbors := make([]Neighbor, 0, len(adj))
	for to, dist := range adj {
		neighbors = append(neighbors, Neighbor{ID: to, Distance: dist})
	}
	sort.Slice(neighbors, func(i, j int) bool { return neighbors[i].ID < neighbors[j].ID })
	return neighbors, nil
}

// Distance returns the direct edge distance from one location to another.
func (s *Store) Distance(from, to string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	adj, ok := s.adjacency[from]
	if !ok {
		return 0, false
	}
	d, ok := adj[to]
	return d, ok
}

func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.locations[id]
	return ok
}

func (s *Store) Location(id string) (models.Location, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loc, ok := s.locations[id]
	return loc, ok
}

// Locations returns all locations sorted by id.
func (s *Store) Locations() []models.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()

	locs := make([]models.Location, 0, len(s.locations))
	for _, loc := range s.locations {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i].ID < locs[j].ID })
	return locs
}

// IDs returns all location ids sorted.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.locations))
	for id := range s.locations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.locations)
}
