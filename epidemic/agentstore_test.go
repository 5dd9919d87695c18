package epidemic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrizontal/epidemicsim/epidemic"
)

func TestNewAgentStoreDefaults(t *testing.T) {
	s := epidemic.NewAgentStore(5, 2)
	for i := 0; i < 5; i++ {
		assert.Equal(t, -1, s.HospI[i])
		assert.Equal(t, -1, s.HospJ[i])
		assert.Equal(t, -1, s.RandomTravel[i])
		assert.Equal(t, -1, s.AirTravel[i])
		assert.False(t, s.InHospital(i))
		assert.False(t, s.IsDead(i))
		for d := 0; d < 2; d++ {
			assert.Equal(t, 1.0, s.Prob[d][i])
		}
	}
}

func TestNewAgentStoreRejectsBadDiseaseCount(t *testing.T) {
	assert.Panics(t, func() { epidemic.NewAgentStore(1, 0) })
	assert.Panics(t, func() { epidemic.NewAgentStore(1, epidemic.MaxDiseases+1) })
}

func TestRedistributeGroupsByTile(t *testing.T) {
	s := epidemic.NewAgentStore(3, 1)
	s.CellI[0], s.CellJ[0] = 0, 0
	s.CellI[1], s.CellJ[1] = 1, 1
	s.CellI[2], s.CellJ[2] = epidemic.TileSize, 0

	s.Redistribute()
	require.Len(t, s.Tiles, 2)

	seen := make(map[int]bool)
	s.ForEachAgent(func(i int) { seen[i] = true })
	assert.Len(t, seen, 3)
}

func TestRedistributeSkipsDeadAgents(t *testing.T) {
	s := epidemic.NewAgentStore(2, 1)
	s.Status[0][1] = epidemic.StatusDead
	s.Redistribute()

	var visited []int
	s.ForEachAgent(func(i int) { visited = append(visited, i) })
	assert.Equal(t, []int{0}, visited)
}

func TestReduceSumsAcrossTiles(t *testing.T) {
	s := epidemic.NewAgentStore(40, 1)
	for i := range s.CellI {
		s.CellI[i] = i
		s.CellJ[i] = 0
	}
	s.Redistribute()

	total := epidemic.Reduce(s, 0, func(acc, i int) int { return acc + 1 }, func(a, b int) int { return a + b })
	assert.Equal(t, 40, total)
}

func TestCheckInvariantsCatchesInconsistentHospitalCoords(t *testing.T) {
	s := epidemic.NewAgentStore(1, 1)
	s.HospI[0] = 3 // HospJ left at -1
	assert.Panics(t, func() { s.CheckInvariants() })
}

func TestCheckInvariantsCatchesDeathDesync(t *testing.T) {
	s := epidemic.NewAgentStore(1, 2)
	s.Status[0][0] = epidemic.StatusDead
	// disease 1 left alive: violates I3
	assert.Panics(t, func() { s.CheckInvariants() })
}

func TestCheckInvariantsAcceptsConsistentState(t *testing.T) {
	s := epidemic.NewAgentStore(3, 2)
	s.Redistribute()
	assert.NotPanics(t, func() { s.CheckInvariants() })
}
