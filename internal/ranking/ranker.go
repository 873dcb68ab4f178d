// Package ranking scores disaster areas and orders them by urgency with a
// stable merge sort, so areas with equal scores keep their input order and
// repeated ranking of unchanged data is idempotent.
package ranking

import (
	"math"

	"github.com/navya-devv/optirelief/internal/models"
)

type Ranker struct {
	severityWeight   float64
	populationWeight float64
	delayWeight      float64
}

func NewRanker(severityWeight, populationWeight, delayWeight float64) *Ranker {
	return &Ranker{
		severityWeight:   severityWeight,
		populationWeight: populationWeight,
		delayWeight:      delayWeight,
	}
}

// Score derives the urgency of one area. Pure: same inputs, same score.
func (r *Ranker) Score(area models.DisasterArea) float64 {
	score := r.severityWeight*float64(area.Severity)*10 +
		r.populationWeight*math.Log(float64(area.Population)) +
		r.delayWeight*float64(area.DelayTime)
	return clamp(score, 0, 100)
}

// Rank scores every area and returns a new slice sorted by urgency,
// descending. The input slice is not modified. Zero areas yield an empty
// result, not an error.
func (r *Ranker) Rank(areas []models.DisasterArea) []models.DisasterArea {
	scored := make([]models.DisasterArea, len(areas))
	for i, area := range areas {
		area.UrgencyScore = r.Score(area)
		scored[i] = area
	}
	return mergeSort(scored)
}

func mergeSort(areas []models.DisasterArea) []models.DisasterArea {
	if len(areas) <= 1 {
		return areas
	}
	mid := len(areas) / 2
	return merge(mergeSort(areas[:mid]), mergeSort(areas[mid:]))
}

// merge keeps the left element on equal scores, which is what makes the
// sort stable.
func merge(left, right []models.DisasterArea) []models.DisasterArea {
	out := make([]models.DisasterArea, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if left[i].UrgencyScore >= right[j].UrgencyScore {
			out = append(out, left[i])
			i++
		} else {
			out = append(out, right[j])
			j++
		}
	}
	out = append(out, left[i:]...)
	out = append(out, right[j:]...)
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
