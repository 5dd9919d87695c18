package epidemic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harrizontal/epidemicsim/epidemic"
)

// buildCell creates n agents co-located in the same grid cell, split across
// two home neighborhoods: agents with index < sameGroupSize share
// neighborhood 0 with the infectious seed; the rest belong to neighborhood 1.
func buildCell(n, sameGroupSize, infectedIdx int) *epidemic.AgentStore {
	s := epidemic.NewAgentStore(n, 1)
	for i := 0; i < n; i++ {
		s.CellI[i], s.CellJ[i] = 3, 3
		s.AgeGroup[i] = epidemic.Age30to49
		s.Status[0][i] = epidemic.StatusSusceptible
		if i < sameGroupSize {
			s.HomeNeighborhood[i] = 0
		} else {
			s.HomeNeighborhood[i] = 1
		}
	}
	s.Status[0][infectedIdx] = epidemic.StatusInfected
	s.Counter[0][infectedIdx] = 5
	s.LatentPeriod[0][infectedIdx] = 2
	s.InfectiousPeriod[0][infectedIdx] = 10
	s.Redistribute()
	return s
}

func TestHomeNborhoodSplitsSameNeighborhoodFromCommunityTier(t *testing.T) {
	dp := epidemic.DefaultDiseaseParams("covid")
	dp.XmitHood = [6]float64{1, 1, 1, 1, 1, 1}
	dp.XmitComm = [6]float64{}
	dp.PTrans = 1.0
	params := []epidemic.DiseaseParams{dp}

	// agents 0 (infectious), 1 (same neighborhood), 2 (other neighborhood)
	s := buildCell(3, 2, 0)
	epidemic.ResetProbabilities(s)
	epidemic.InteractionModHomeNborhood{}.Interact(s, params, 1.0)

	assert.Equal(t, 0.0, s.Prob[0][1], "same-neighborhood contact with XmitHood=1 must infect reliably")
	assert.Equal(t, 1.0, s.Prob[0][2], "XmitComm=0 must leave the other-neighborhood agent untouched")
}

func TestHomeNborhoodExcludesWithdrawnInfectiousAgent(t *testing.T) {
	dp := epidemic.DefaultDiseaseParams("covid")
	dp.XmitHood = [6]float64{1, 1, 1, 1, 1, 1}
	dp.XmitComm = [6]float64{1, 1, 1, 1, 1, 1}
	dp.PTrans = 1.0
	params := []epidemic.DiseaseParams{dp}

	s := buildCell(2, 1, 0)
	s.Withdrawn[0] = true // the only infectious agent is withdrawn
	epidemic.ResetProbabilities(s)
	epidemic.InteractionModHomeNborhood{}.Interact(s, params, 1.0)

	assert.Equal(t, 1.0, s.Prob[0][1], "a withdrawn infectious agent must not transmit")
}
