// Package textscan scores free-text relief requests against a fixed
// weighted keyword dictionary. Each keyword is located with a
// Boyer-Moore-Horspool skip search over the lower-cased text, and a match
// only counts when both ends fall on token boundaries: "fired" does not
// match "fire".
package textscan

import (
	"errors"
	"sort"
	"strings"

	"github.com/navya-devv/optirelief/internal/models"
)

// ErrEmptyMessage indicates blank message text.
var ErrEmptyMessage = errors.New("textscan: message text is empty")

type Keyword struct {
	Word   string
	Weight int
}

// DefaultDictionary is the engine's triage vocabulary. Weights reflect how
// strongly a term signals danger to life; a distinct keyword scores once
// per message no matter how often it repeats.
func DefaultDictionary() []Keyword {
	return []Keyword{
		{"urgent", 20},
		{"emergency", 25},
		{"help", 15},
		{"critical", 25},
		{"injured", 20},
		{"trapped", 30},
		{"fire", 20},
		{"flood", 20},
		{"collapse", 25},
		{"medical", 15},
		{"rescue", 25},
		{"immediate", 15},
		{"danger", 15},
		{"severe", 15},
		{"casualty", 25},
		{"ambulance", 20},
		{"hospital", 10},
	}
}

type Analysis struct {
	KeywordsFound []string            `json:"keywords_found"`
	UrgencyScore  int                 `json:"urgency_score"`
	UrgencyLevel  models.UrgencyLevel `json:"urgency_level"`
}

type Scanner struct {
	dict []Keyword
}

func NewScanner(dict []Keyword) *Scanner {
	if len(dict) == 0 {
		dict = DefaultDictionary()
	}
	return &Scanner{dict: dict}
}

// Analyze scans the text and derives its urgency. Matching is
// case-insensitive and whole-token; keywordsFound is de-duplicated in
// first-occurrence order. The scanner holds no per-call state, so scanning
// the same text twice yields identical results.
func (s *Scanner) Analyze(text string) (*Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	lowered := strings.ToLower(text)

	type hit struct {
		word  string
		at    int
		score int
	}
	hits := make([]hit, 0, len(s.dict))
	for _, kw := range s.dict {
		if at := firstTokenMatch(lowered, strings.ToLower(kw.Word)); at >= 0 {
			hits = append(hits, hit{word: kw.Word, at: at, score: kw.Weight})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].at < hits[j].at })

	found := make([]string, 0, len(hits))
	score := 0
	for _, h := range hits {
		found = append(found, h.word)
		score += h.score
	}
	if score > 100 {
		score = 100
	}

	return &Analysis{
		KeywordsFound: found,
		UrgencyScore:  score,
		UrgencyLevel:  Level(score),
	}, nil
}

// Level maps a score to its urgency band.
func Level(score int) models.UrgencyLevel {
	switch {
	case score >= 80:
		return models.UrgencyCritical
	case score >= 60:
		return models.UrgencyHigh
	case score >= 40:
		return models.UrgencyMedium
	default:
		return models.UrgencyLow
	}
}

// firstTokenMatch returns the index of the first whole-token occurrence of
// pattern in text, or -1. Horspool skip search: on a mismatch the window
// shifts by the bad-character distance of the last windowed byte.
func firstTokenMatch(text, pattern string) int {
	m, n := len(pattern), len(text)
	if m == 0 || m > n {
		return -1
	}

	var shift [256]int
	for i := range shift {
		shift[i] = m
	}
	for i := 0; i < m-1; i++ {
		shift[pattern[i]] = m - 1 - i
	}

	for s := 0; s <= n-m; {
		j := m - 1
		for j >= 0 && pattern[j] == text[s+j] {
			j--
		}
		if j < 0 {
			if isBoundary(text, s-1) && isBoundary(text, s+m) {
				return s
			}
			s++ // token-embedded occurrence; keep searching
			continue
		}
		s += shift[text[s+m-1]]
	}
	return -1
}

// isBoundary reports whether position i (possibly out of range) does not
// carry a token character.
func isBoundary(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return true
	}
	c := text[i]
	return !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9')
}
