// Package routing computes single-source shortest routes over the location
// graph using Dijkstra's algorithm with a min-heap and lazy decrease-key:
// improved distances push duplicate heap entries, and stale entries are
// skipped when popped.
package routing

import (
	"container/heap"
	"errors"
	"fmt"
	"math"

	"github.com/navya-devv/optirelief/internal/graph"
)

// ErrNoRouteFound indicates the target is unreachable from the source.
var ErrNoRouteFound = errors.New("routing: no route found")

// Step is one hop of a route with its edge distance.
type Step struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Distance float64 `json:"distance"`
}

type Route struct {
	Path          []string `json:"path"`
	TotalDistance float64  `json:"total_distance"`
	EstimatedTime float64  `json:"estimated_time"` // minutes
	Steps         []Step   `json:"steps"`
}

type Planner struct {
	store          *graph.Store
	minutesPerUnit float64
}

func NewPlanner(store *graph.Store, minutesPerUnit float64) *Planner {
	return &Planner{store: store, minutesPerUnit: minutesPerUnit}
}

// ShortestRoute returns the minimum-distance path between two locations.
// Equal-distance alternatives resolve to the path whose predecessor has
// the lexicographically smaller id, so repeated queries are reproducible.
func (p *Planner) ShortestRoute(from, to string) (*Route, error) {
	if !p.store.Has(from) {
		return nil, fmt.Errorf("%w: %q", graph.ErrUnknownLocation, from)
	}
	if !p.store.Has(to) {
		return nil, fmt.Errorf("%w: %q", graph.ErrUnknownLocation, to)
	}

	if from == to {
		return &Route{Path: []string{from}, Steps: []Step{}}, nil
	}

	dist := map[string]float64{from: 0}
	prev := make(map[string]string)
	visited := make(map[string]bool)

	pq := &nodePQ{}
	heap.Init(pq)
	heap.Push(pq, nodeItem{id: from, dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(nodeItem)
		u := item.id
		if visited[u] {
			continue
		}
		visited[u] = true
		if u == to {
			break
		}

		neighbors, err := p.store.Neighbors(u)
		if err != nil {
			return nil, err
		}
		for _, n := range neighbors {
			if visited[n.ID] {
				continue
			}
			candidate := dist[u] + n.Distance
			current, seen := dist[n.ID]
			switch {
			case !seen || candidate < current:
				dist[n.ID] = candidate
				prev[n.ID] = u
				heap.Push(pq, nodeItem{id: n.ID, dist: candidate})
			case candidate == current && u < prev[n.ID]:
				prev[n.ID] = u
			}
		}
	}

	if _, reached := dist[to]; !reached || !visited[to] {
		return nil, fmt.Errorf("%w: %s -> %s", ErrNoRouteFound, from, to)
	}

	path := reconstruct(prev, from, to)
	steps := make([]Step, 0, len(path)-1)
	var total float64
	for i := 0; i < len(path)-1; i++ {
		d, ok := p.store.Distance(path[i], path[i+1])
		if !ok {
			return nil, fmt.Errorf("routing: edge %s -> %s vanished during search", path[i], path[i+1])
		}
		steps = append(steps, Step{From: path[i], To: path[i+1], Distance: d})
		total += d
	}

	return &Route{
		Path:          path,
		TotalDistance: total,
		EstimatedTime: math.Round(total * p.minutesPerUnit),
		Steps:         steps,
	}, nil
}

func reconstruct(prev map[string]string, from, to string) []string {
	path := []string{to}
	for cur := to; cur != from; {
		cur = prev[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type nodeItem struct {
	id   string
	dist float64
}

// nodePQ orders by distance, then id, so pops are deterministic when
// distances tie.
type nodePQ []nodeItem

func (pq nodePQ) Len() int { return len(pq) }
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x any)   { *pq = append(*pq, x.(nodeItem)) }
func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
