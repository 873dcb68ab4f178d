// Package matching assigns available volunteers to regions, maximizing
// total match quality under per-region capacity. The search is best-first
// backtracking with branch-and-bound pruning; when it exceeds the
// configured node-expansion budget it falls back to greedy maximum-score
// matching. The fallback is an explicit, reported policy, not a silent
// approximation.
package matching

import (
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/navya-devv/optirelief/internal/models"
)

// ErrNoVolunteersAvailable indicates an empty candidate pool.
var ErrNoVolunteersAvailable = errors.New("matching: no volunteers available")

// Score weighting: skill overlap dominates, home-location proximity tops
// it up. skillOverlapRatio*70 + proximityBonus*30.
const (
	skillWeight     = 70
	proximityWeight = 30
)

type Assignment struct {
	VolunteerID   string  `json:"volunteer_id"`
	VolunteerName string  `json:"volunteer_name"`
	RegionID      string  `json:"region_id"`
	RegionName    string  `json:"region_name"`
	MatchScore    float64 `json:"match_score"`
}

type Result struct {
	Assignments []Assignment `json:"assignments"`
	// TotalCoverage is the percentage of regions with at least one
	// volunteer assigned.
	TotalCoverage        float64 `json:"total_coverage"`
	UnassignedVolunteers int     `json:"unassigned_volunteers"`
	// GreedyFallback reports that the node budget was exhausted and the
	// result came from the greedy pass.
	GreedyFallback bool `json:"greedy_fallback"`
}

type Matcher struct {
	nodeBudget int
}

func NewMatcher(nodeBudget int) *Matcher {
	return &Matcher{nodeBudget: nodeBudget}
}

// PairScore rates one volunteer against one region.
func PairScore(v models.Volunteer, r models.Region) float64 {
	score := skillOverlapRatio(v.Skills, r.DemandSkills) * skillWeight
	if proximate(v.Location, r.Name) {
		score += proximityWeight
	}
	return score
}

// Assign computes the best volunteer-to-region assignment. The matcher is
// pure: status transitions are the caller's job, applied only after the
// claimed volunteers are verified still available.
func (m *Matcher) Assign(volunteers []models.Volunteer, regions []models.Region) (*Result, error) {
	if len(volunteers) == 0 {
		return nil, ErrNoVolunteersAvailable
	}

	s := newSearch(volunteers, regions, m.nodeBudget)
	s.run()

	fallback := s.exhausted
	best := s.best
	if fallback {
		slog.Warn("assignment search exceeded node budget, using greedy fallback",
			"budget", m.nodeBudget, "volunteers", len(volunteers), "regions", len(regions))
		best = s.greedy()
	}

	assignments := make([]Assignment, 0, len(best))
	covered := make(map[string]bool, len(regions))
	for _, pick := range best {
		v, r := volunteers[pick.volunteer], regions[pick.region]
		covered[r.ID] = true
		assignments = append(assignments, Assignment{
			VolunteerID:   v.ID,
			VolunteerName: v.Name,
			RegionID:      r.ID,
			RegionName:    r.Name,
			MatchScore:    pick.score,
		})
	}

	coverage := 0.0
	if len(regions) > 0 {
		coverage = float64(len(covered)) / float64(len(regions)) * 100
	}

	return &Result{
		Assignments:          assignments,
		TotalCoverage:        coverage,
		UnassignedVolunteers: len(volunteers) - len(assignments),
		GreedyFallback:       fallback,
	}, nil
}

type pick struct {
	volunteer int
	region    int
	score     float64
}

type candidate struct {
	region int
	score  float64
}

type search struct {
	regions    []models.Region
	candidates [][]candidate // per volunteer, score-descending
	bestRemain []float64     // bestRemain[i]: max attainable from volunteers i..n-1

	capacity  []int
	current   []pick
	currentOK float64

	best      []pick
	bestScore float64

	nodes     int
	budget    int
	exhausted bool
}

func newSearch(volunteers []models.Volunteer, regions []models.Region, budget int) *search {
	s := &search{
		regions:   regions,
		capacity:  make([]int, len(regions)),
		budget:    budget,
		bestScore: -1,
	}
	for i, r := range regions {
		s.capacity[i] = r.Capacity
	}

	s.candidates = make([][]candidate, len(volunteers))
	s.bestRemain = make([]float64, len(volunteers)+1)
	for i, v := range volunteers {
		var cands []candidate
		for j, r := range regions {
			if score := PairScore(v, r); score > 0 {
				cands = append(cands, candidate{region: j, score: score})
			}
		}
		// Best options first so the initial dive is already near-optimal
		// and the bound prunes aggressively.
		sort.SliceStable(cands, func(a, b int) bool { return cands[a].score > cands[b].score })
		s.candidates[i] = cands
	}
	for i := len(volunteers) - 1; i >= 0; i-- {
		top := 0.0
		if len(s.candidates[i]) > 0 {
			top = s.candidates[i][0].score
		}
		s.bestRemain[i] = s.bestRemain[i+1] + top
	}
	return s
}

func (s *search) run() {
	s.explore(0)
}

func (s *search) explore(vi int) {
	if s.exhausted {
		return
	}
	s.nodes++
	if s.nodes > s.budget {
		s.exhausted = true
		return
	}

	if vi == len(s.candidates) {
		if s.currentOK > s.bestScore {
			s.bestScore = s.currentOK
			s.best = append(s.best[:0], s.current...)
		}
		return
	}

	// Bound: even taking every remaining volunteer's best region cannot
	// beat the incumbent.
	if s.currentOK+s.bestRemain[vi] <= s.bestScore {
		return
	}

	for _, c := range s.candidates[vi] {
		if s.capacity[c.region] == 0 {
			continue
		}
		s.capacity[c.region]--
		s.current = append(s.current, pick{volunteer: vi, region: c.region, score: c.score})
		s.currentOK += c.score

		s.explore(vi + 1)

		s.currentOK -= c.score
		s.current = s.current[:len(s.current)-1]
		s.capacity[c.region]++
		if s.exhausted {
			return
		}
	}

	// Leaving this volunteer unassigned is always a legal branch.
	s.explore(vi + 1)
}

// greedy is the budget-exhausted fallback: take (volunteer, region) pairs
// in descending score order, respecting capacity and one region per
// volunteer.
func (s *search) greedy() []pick {
	var pairs []pick
	for vi, cands := range s.candidates {
		for _, c := range cands {
			pairs = append(pairs, pick{volunteer: vi, region: c.region, score: c.score})
		}
	}
	sort.SliceStable(pairs, func(a, b int) bool {
		if pairs[a].score != pairs[b].score {
			return pairs[a].score > pairs[b].score
		}
		return pairs[a].volunteer < pairs[b].volunteer
	})

	capacity := make([]int, len(s.regions))
	for i, r := range s.regions {
		capacity[i] = r.Capacity
	}
	taken := make(map[int]bool, len(s.candidates))
	var out []pick
	for _, p := range pairs {
		if taken[p.volunteer] || capacity[p.region] == 0 {
			continue
		}
		taken[p.volunteer] = true
		capacity[p.region]--
		out = append(out, p)
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].volunteer < out[b].volunteer })
	return out
}

func skillOverlapRatio(skills, demand []string) float64 {
	if len(demand) == 0 {
		return 0
	}
	have := make(map[string]bool, len(skills))
	for _, s := range skills {
		have[normalizeTag(s)] = true
	}
	matched := 0
	for _, d := range demand {
		if have[normalizeTag(d)] {
			matched++
		}
	}
	return float64(matched) / float64(len(demand))
}

// proximate reports whether the volunteer's home location names the same
// place as the region.
func proximate(location, regionName string) bool {
	loc := strings.ToLower(strings.TrimSpace(location))
	region := strings.ToLower(regionName)
	if loc == "" {
		return false
	}
	return strings.Contains(region, loc) || strings.Contains(loc, region)
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
