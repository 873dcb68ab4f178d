package matching

import (
	"testing"

	"github.com/navya-devv/optirelief/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func volunteer(id, location string, skills ...string) models.Volunteer {
	return models.Volunteer{
		ID:       id,
		Name:     "Volunteer " + id,
		Skills:   skills,
		Location: location,
		Status:   models.VolunteerAvailable,
	}
}

func region(id, name string, capacity int, demand ...string) models.Region {
	return models.Region{ID: id, Name: name, Capacity: capacity, DemandSkills: demand}
}

func TestPairScore(t *testing.T) {
	r := region("r1", "Riverside Camp", 2, "medical", "rescue")

	// Half the demanded skills, no proximity.
	assert.Equal(t, 35.0, PairScore(volunteer("v1", "Hilltop", "medical"), r))

	// Full overlap plus matching home location.
	assert.Equal(t, 100.0, PairScore(volunteer("v2", "riverside", "medical", "rescue"), r))

	// Skill tags compare case-insensitively and trimmed.
	assert.Equal(t, 70.0, PairScore(volunteer("v3", "Hilltop", " Medical ", "RESCUE"), r))

	// No demanded skills: only the proximity bonus can apply.
	open := region("r2", "Riverside Camp", 1)
	assert.Equal(t, 30.0, PairScore(volunteer("v4", "riverside", "medical"), open))
	assert.Equal(t, 0.0, PairScore(volunteer("v5", "", "medical"), open))
}

func TestAssign_EmptyPool(t *testing.T) {
	m := NewMatcher(200000)

	_, err := m.Assign(nil, []models.Region{region("r1", "North", 1, "medical")})
	require.ErrorIs(t, err, ErrNoVolunteersAvailable)
}

func TestAssign_FindsOptimalOverGreedy(t *testing.T) {
	// Greedy would send v1 to r1 (70) and leave v2 idle; the optimal plan
	// routes v1 to r2 (35) so v2 can take r1 (70).
	volunteers := []models.Volunteer{
		volunteer("v1", "Hilltop", "medical", "rescue"),
		volunteer("v2", "Hilltop", "medical"),
	}
	regions := []models.Region{
		region("r1", "North Zone", 1, "medical"),
		region("r2", "South Zone", 1, "rescue", "logistics"),
	}

	m := NewMatcher(200000)
	result, err := m.Assign(volunteers, regions)
	require.NoError(t, err)

	assert.False(t, result.GreedyFallback)
	require.Len(t, result.Assignments, 2)

	byVolunteer := map[string]Assignment{}
	for _, a := range result.Assignments {
		byVolunteer[a.VolunteerID] = a
	}
	assert.Equal(t, "r2", byVolunteer["v1"].RegionID)
	assert.Equal(t, 35.0, byVolunteer["v1"].MatchScore)
	assert.Equal(t, "r1", byVolunteer["v2"].RegionID)
	assert.Equal(t, 70.0, byVolunteer["v2"].MatchScore)

	assert.Equal(t, 100.0, result.TotalCoverage)
	assert.Zero(t, result.UnassignedVolunteers)
}

func TestAssign_RespectsCapacityAndSingleRegion(t *testing.T) {
	volunteers := []models.Volunteer{
		volunteer("v1", "Hilltop", "medical"),
		volunteer("v2", "Hilltop", "medical"),
		volunteer("v3", "Hilltop", "medical"),
	}
	regions := []models.Region{region("r1", "North Zone", 2, "medical")}

	m := NewMatcher(200000)
	result, err := m.Assign(volunteers, regions)
	require.NoError(t, err)

	assert.Len(t, result.Assignments, 2)
	assert.Equal(t, 1, result.UnassignedVolunteers)

	seen := map[string]bool{}
	for _, a := range result.Assignments {
		assert.False(t, seen[a.VolunteerID], "volunteer assigned twice")
		seen[a.VolunteerID] = true
		assert.Equal(t, "r1", a.RegionID)
	}
}

func TestAssign_ZeroCapacityRegion(t *testing.T) {
	volunteers := []models.Volunteer{volunteer("v1", "Hilltop", "medical")}
	regions := []models.Region{region("r1", "North Zone", 0, "medical")}

	m := NewMatcher(200000)
	result, err := m.Assign(volunteers, regions)
	require.NoError(t, err)

	assert.Empty(t, result.Assignments)
	assert.Zero(t, result.TotalCoverage)
	assert.Equal(t, 1, result.UnassignedVolunteers)
}

func TestAssign_NoMatchingSkills(t *testing.T) {
	volunteers := []models.Volunteer{volunteer("v1", "Hilltop", "cooking")}
	regions := []models.Region{region("r1", "North Zone", 1, "medical")}

	m := NewMatcher(200000)
	result, err := m.Assign(volunteers, regions)
	require.NoError(t, err)

	assert.Empty(t, result.Assignments)
	assert.Equal(t, 1, result.UnassignedVolunteers)
}

func TestAssign_PartialCoverage(t *testing.T) {
	volunteers := []models.Volunteer{volunteer("v1", "Hilltop", "medical")}
	regions := []models.Region{
		region("r1", "North Zone", 1, "medical"),
		region("r2", "South Zone", 1, "rescue"),
	}

	m := NewMatcher(200000)
	result, err := m.Assign(volunteers, regions)
	require.NoError(t, err)

	require.Len(t, result.Assignments, 1)
	assert.Equal(t, 50.0, result.TotalCoverage)
}

func TestAssign_GreedyFallbackOnTinyBudget(t *testing.T) {
	volunteers := []models.Volunteer{
		volunteer("v1", "Hilltop", "medical"),
		volunteer("v2", "Hilltop", "rescue"),
	}
	regions := []models.Region{
		region("r1", "North Zone", 1, "medical"),
		region("r2", "South Zone", 1, "rescue"),
	}

	m := NewMatcher(1)
	result, err := m.Assign(volunteers, regions)
	require.NoError(t, err)

	assert.True(t, result.GreedyFallback)
	// The greedy pass still produces the full assignment here.
	require.Len(t, result.Assignments, 2)
	assert.Equal(t, 100.0, result.TotalCoverage)
}

func TestAssign_Deterministic(t *testing.T) {
	volunteers := []models.Volunteer{
		volunteer("v1", "Hilltop", "medical", "rescue"),
		volunteer("v2", "Riverside", "medical"),
		volunteer("v3", "Hilltop", "rescue", "logistics"),
	}
	regions := []models.Region{
		region("r1", "Riverside Camp", 1, "medical"),
		region("r2", "North Zone", 2, "rescue", "logistics"),
	}

	m := NewMatcher(200000)
	first, err := m.Assign(volunteers, regions)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := m.Assign(volunteers, regions)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
