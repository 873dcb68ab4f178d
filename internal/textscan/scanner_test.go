package textscan

import (
	"testing"

	"github.com/navya-devv/optirelief/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_EmptyMessage(t *testing.T) {
	s := NewScanner(nil)

	_, err := s.Analyze("")
	require.ErrorIs(t, err, ErrEmptyMessage)

	_, err = s.Analyze("   \t\n")
	require.ErrorIs(t, err, ErrEmptyMessage)
}

func TestAnalyze_WeightedKeywords(t *testing.T) {
	s := NewScanner([]Keyword{
		{"urgent", 20},
		{"trapped", 30},
		{"rescue", 25},
	})

	analysis, err := s.Analyze("URGENT trapped need rescue")
	require.NoError(t, err)

	assert.Equal(t, []string{"urgent", "trapped", "rescue"}, analysis.KeywordsFound)
	assert.Equal(t, 75, analysis.UrgencyScore)
	assert.Equal(t, models.UrgencyHigh, analysis.UrgencyLevel)
}

func TestAnalyze_NoKeywords(t *testing.T) {
	s := NewScanner(nil)

	analysis, err := s.Analyze("everything is calm and quiet here")
	require.NoError(t, err)

	assert.Empty(t, analysis.KeywordsFound)
	assert.Zero(t, analysis.UrgencyScore)
	assert.Equal(t, models.UrgencyLow, analysis.UrgencyLevel)
}

func TestAnalyze_WholeTokenBoundaries(t *testing.T) {
	s := NewScanner([]Keyword{{"fire", 20}, {"help", 15}})

	analysis, err := s.Analyze("he was fired from his helpdesk job")
	require.NoError(t, err)
	assert.Empty(t, analysis.KeywordsFound, "embedded tokens must not match")

	analysis, err = s.Analyze("fire! send help.")
	require.NoError(t, err)
	assert.Equal(t, []string{"fire", "help"}, analysis.KeywordsFound)
	assert.Equal(t, 35, analysis.UrgencyScore)
}

func TestAnalyze_DistinctKeywordScoresOnce(t *testing.T) {
	s := NewScanner([]Keyword{{"help", 15}})

	analysis, err := s.Analyze("help help help help")
	require.NoError(t, err)
	assert.Equal(t, []string{"help"}, analysis.KeywordsFound)
	assert.Equal(t, 15, analysis.UrgencyScore)
}

func TestAnalyze_FirstOccurrenceOrder(t *testing.T) {
	s := NewScanner([]Keyword{{"rescue", 25}, {"trapped", 30}})

	analysis, err := s.Analyze("trapped family, send rescue, still trapped")
	require.NoError(t, err)
	assert.Equal(t, []string{"trapped", "rescue"}, analysis.KeywordsFound)
}

func TestAnalyze_ScoreClampedAt100(t *testing.T) {
	s := NewScanner(nil)

	analysis, err := s.Analyze(
		"urgent emergency critical injured trapped fire flood collapse casualty ambulance")
	require.NoError(t, err)
	assert.Equal(t, 100, analysis.UrgencyScore)
	assert.Equal(t, models.UrgencyCritical, analysis.UrgencyLevel)
}

func TestAnalyze_Stateless(t *testing.T) {
	s := NewScanner(nil)
	text := "URGENT: people trapped, need medical rescue"

	first, err := s.Analyze(text)
	require.NoError(t, err)
	second, err := s.Analyze(text)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLevel_Bands(t *testing.T) {
	cases := []struct {
		score int
		want  models.UrgencyLevel
	}{
		{0, models.UrgencyLow},
		{39, models.UrgencyLow},
		{40, models.UrgencyMedium},
		{59, models.UrgencyMedium},
		{60, models.UrgencyHigh},
		{79, models.UrgencyHigh},
		{80, models.UrgencyCritical},
		{100, models.UrgencyCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Level(tc.score), "score %d", tc.score)
	}
}

func TestFirstTokenMatch(t *testing.T) {
	assert.Equal(t, 0, firstTokenMatch("fire at the mill", "fire"))
	assert.Equal(t, 12, firstTokenMatch("there is a (fire)", "fire"))
	assert.Equal(t, -1, firstTokenMatch("fired up", "fire"))
	assert.Equal(t, -1, firstTokenMatch("backfire", "fire"))
	assert.Equal(t, 5, firstTokenMatch("wild fire", "fire"))
	assert.Equal(t, -1, firstTokenMatch("fir", "fire"))
}
