// Package dispatch builds all-pairs shortest-path matrices over the
// location graph with Floyd-Warshall and synthesizes multi-center dispatch
// plans from them. Relaxation runs over the whole graph and the result is
// projected onto the selected centers, so pairwise paths may route through
// locations that are not themselves centers.
package dispatch

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/navya-devv/optirelief/internal/graph"
)

// ErrInsufficientCenters indicates fewer than two centers were selected.
var ErrInsufficientCenters = errors.New("dispatch: at least 2 centers required")

// UnreachableCost is the serialized sentinel for center pairs with no
// connecting path. Internally distances use +Inf; JSON cannot carry it.
const UnreachableCost = -1

// RouteEntry is the reconstructed cheapest path for one ordered center pair.
type RouteEntry struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Cost float64  `json:"cost"`
	Path []string `json:"path"`
}

// PlanEntry lists, for one center, the other selected centers it can serve
// within the time budget, nearest first, and the sequential time to visit
// them all in that order.
type PlanEntry struct {
	Center       string   `json:"center"`
	Destinations []string `json:"destinations"`
	TotalTime    float64  `json:"total_time"` // minutes
}

type Result struct {
	Centers       []string     `json:"centers"`
	CostMatrix    [][]float64  `json:"cost_matrix"`
	OptimalRoutes []RouteEntry `json:"optimal_routes"`
	TotalCost     float64      `json:"total_cost"`
	DispatchPlan  []PlanEntry  `json:"dispatch_plan"`
}

type Matrix struct {
	store          *graph.Store
	minutesPerUnit float64
	timeBudget     time.Duration
}

func NewMatrix(store *graph.Store, minutesPerUnit float64, timeBudget time.Duration) *Matrix {
	return &Matrix{store: store, minutesPerUnit: minutesPerUnit, timeBudget: timeBudget}
}

// Plan runs Floyd-Warshall over the full graph and projects the selected
// centers. Duplicate center ids are collapsed; order of first mention is
// kept. Unreachable pairs are excluded from routes and plans, never
// reported as zero cost.
func (m *Matrix) Plan(centerIDs []string) (*Result, error) {
	centers := dedupe(centerIDs)
	if len(centers) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientCenters, len(centers))
	}
	for _, id := range centers {
		if !m.store.Has(id) {
			return nil, fmt.Errorf("%w: %q", graph.ErrUnknownLocation, id)
		}
	}

	ids := m.store.IDs()
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	dist, next, err := m.relax(ids, index)
	if err != nil {
		return nil, err
	}

	k := len(centers)
	costMatrix := make([][]float64, k)
	routes := make([]RouteEntry, 0, k*(k-1))
	var totalCost float64

	for i, from := range centers {
		costMatrix[i] = make([]float64, k)
		for j, to := range centers {
			d := dist[index[from]][index[to]]
			if math.IsInf(d, 1) {
				costMatrix[i][j] = UnreachableCost
				continue
			}
			costMatrix[i][j] = d
			if i == j {
				continue
			}
			totalCost += d
			routes = append(routes, RouteEntry{
				From: from,
				To:   to,
				Cost: d,
				Path: walk(next, ids, index, from, to),
			})
		}
	}

	return &Result{
		Centers:       centers,
		CostMatrix:    costMatrix,
		OptimalRoutes: routes,
		TotalCost:     totalCost,
		DispatchPlan:  m.plan(centers, index, dist),
	}, nil
}

// relax builds the dense distance and next-hop matrices. O(V^3) over the
// whole graph; +Inf marks absent paths.
func (m *Matrix) relax(ids []string, index map[string]int) ([][]float64, [][]int, error) {
	n := len(ids)
	dist := make([][]float64, n)
	next := make([][]int, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		next[i] = make([]int, n)
		for j := range dist[i] {
			dist[i][j] = math.Inf(1)
			next[i][j] = -1
		}
		dist[i][i] = 0
		next[i][i] = i
	}

	for i, id := range ids {
		neighbors, err := m.store.Neighbors(id)
		if err != nil {
			return nil, nil, err
		}
		for _, nb := range neighbors {
			j := index[nb.ID]
			dist[i][j] = nb.Distance
			next[i][j] = j
		}
	}

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if math.IsInf(dist[i][k], 1) {
				continue
			}
			for j := 0; j < n; j++ {
				if dist[i][k]+dist[k][j] < dist[i][j] {
					dist[i][j] = dist[i][k] + dist[k][j]
					next[i][j] = next[i][k]
				}
			}
		}
	}

	return dist, next, nil
}

// plan lists, per center, the other centers reachable within the time
// budget ordered nearest first, and the sequential tour time through them.
func (m *Matrix) plan(centers []string, index map[string]int, dist [][]float64) []PlanEntry {
	budget := m.timeBudget.Minutes()
	entries := make([]PlanEntry, 0, len(centers))

	for _, center := range centers {
		i := index[center]
		reachable := make([]string, 0, len(centers)-1)
		for _, other := range centers {
			if other == center {
				continue
			}
			d := dist[i][index[other]]
			if math.IsInf(d, 1) || d*m.minutesPerUnit > budget {
				continue
			}
			reachable = append(reachable, other)
		}
		sort.Slice(reachable, func(a, b int) bool {
			da, db := dist[i][index[reachable[a]]], dist[i][index[reachable[b]]]
			if da != db {
				return da < db
			}
			return reachable[a] < reachable[b]
		})

		var tour float64
		at := i
		for _, stop := range reachable {
			leg := dist[at][index[stop]]
			if math.IsInf(leg, 1) {
				// One-way edges can make a stop unreachable from the
				// previous stop; dispatch that leg from the center instead.
				leg = dist[i][index[stop]]
			}
			tour += leg
			at = index[stop]
		}

		entries = append(entries, PlanEntry{
			Center:       center,
			Destinations: reachable,
			TotalTime:    math.Round(tour * m.minutesPerUnit),
		})
	}

	return entries
}

// walk reconstructs the path from one location to another via the next-hop
// matrix. Callers must only pass pairs with finite distance.
func walk(next [][]int, ids []string, index map[string]int, from, to string) []string {
	i, j := index[from], index[to]
	path := []string{from}
	for i != j {
		i = next[i][j]
		path = append(path, ids[i])
	}
	return path
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
