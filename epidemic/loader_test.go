package epidemic_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrizontal/epidemicsim/epidemic"
)

func TestSyntheticLoaderProducesRequestedAgentCountGroupedIntoFamilies(t *testing.T) {
	l := epidemic.NewSyntheticLoader(20, 4, 4, rand.New(rand.NewSource(1)))
	recs, err := l.LoadAgents()
	require.NoError(t, err)
	require.Len(t, recs, 20)

	families := make(map[int]int)
	for _, r := range recs {
		families[r.Family]++
	}
	for fam, n := range families {
		assert.Equal(t, 4, n, "family %d should have exactly FamilySize members", fam)
	}
}

func TestSyntheticLoaderRejectsNonPositiveFamilySize(t *testing.T) {
	l := epidemic.NewSyntheticLoader(10, 4, 0, rand.New(rand.NewSource(1)))
	_, err := l.LoadAgents()
	assert.Error(t, err)
}

func TestSyntheticLoaderCommunitiesCoverTheFullGrid(t *testing.T) {
	l := epidemic.NewSyntheticLoader(10, 3, 2, rand.New(rand.NewSource(1)))
	communities, err := l.LoadCommunities()
	require.NoError(t, err)
	assert.Len(t, communities, 9)
}

func TestSyntheticLoaderAirportsFormARoundTripRoute(t *testing.T) {
	l := epidemic.NewSyntheticLoader(10, 5, 2, rand.New(rand.NewSource(1)))
	airports, routes, err := l.LoadAirports()
	require.NoError(t, err)
	assert.Len(t, airports, 2)
	assert.Len(t, routes, 2)
}

func TestNewAgentStoreFromRecordsPacksFieldsAndStartsAllAgentsNeverInfected(t *testing.T) {
	recs := []epidemic.AgentRecord{
		{AgeGroup: epidemic.AgeO65, Family: 1, HomeI: 2, HomeJ: 3, WorkI: 4, WorkJ: 5, Workgroup: 7},
	}
	s := epidemic.NewAgentStoreFromRecords(recs, 2)

	assert.Equal(t, epidemic.AgeO65, s.AgeGroup[0])
	assert.Equal(t, 2, s.HomeI[0])
	assert.Equal(t, 3, s.HomeJ[0])
	assert.Equal(t, 2, s.CellI[0], "agents start at their home cell")
	assert.Equal(t, 7, s.Workgroup[0])
	assert.Equal(t, epidemic.StatusNever, s.Status[0][0])
	assert.Equal(t, epidemic.StatusNever, s.Status[1][0])
}
