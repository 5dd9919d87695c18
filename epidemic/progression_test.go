package epidemic_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harrizontal/epidemicsim/epidemic"
)

func newSingleAgentStore(disease epidemic.DiseaseParams) (*epidemic.AgentStore, []epidemic.DiseaseParams) {
	s := epidemic.NewAgentStore(1, 1)
	s.AgeGroup[0] = epidemic.Age30to49
	s.HomeI[0], s.HomeJ[0] = 1, 1
	s.Redistribute()
	return s, []epidemic.DiseaseParams{disease}
}

func TestProgressionPureAsymptomaticCourseNeverWithdraws(t *testing.T) {
	dp := epidemic.DefaultDiseaseParams("covid")
	dp.PAsymp = 1.0 // always asymptomatic
	s, params := newSingleAgentStore(dp)

	s.Status[0][0] = epidemic.StatusInfected
	s.Counter[0][0] = 0
	s.LatentPeriod[0][0] = 2
	s.InfectiousPeriod[0][0] = 5
	s.IncubationPeriod[0][0] = 100 // never reached, so symptomatic transition never triggers

	dpr := epidemic.DiseaseProgression{}
	rngs := []*rand.Rand{rand.New(rand.NewSource(2))}
	for day := 0; day < 10; day++ {
		dpr.Advance(s, params, rngs)
	}

	assert.Equal(t, epidemic.Asymptomatic, s.Symptomatic[0][0])
	assert.False(t, s.Withdrawn[0])
	assert.Equal(t, epidemic.StatusImmune, s.Status[0][0])
}

func TestProgressionSymptomaticAgentWithdrawsWhenComplianceIsCertain(t *testing.T) {
	dp := epidemic.DefaultDiseaseParams("covid")
	dp.PAsymp = 0.0
	dp.SymptomaticWithdrawCompliance = 1.0
	dp.CHR = [6]float64{} // never hospitalized, isolate the withdrawal behavior
	s, params := newSingleAgentStore(dp)

	s.Status[0][0] = epidemic.StatusInfected
	s.Counter[0][0] = 0
	s.LatentPeriod[0][0] = 2
	s.InfectiousPeriod[0][0] = 5
	s.IncubationPeriod[0][0] = 3

	dpr := epidemic.DiseaseProgression{}
	rngs := []*rand.Rand{rand.New(rand.NewSource(2))}
	for day := 0; day < 3; day++ {
		dpr.Advance(s, params, rngs)
	}

	assert.Equal(t, epidemic.Symptomatic, s.Symptomatic[0][0])
	assert.True(t, s.Withdrawn[0])
}

func TestProgressionImmuneAgentReturnsToSusceptible(t *testing.T) {
	s := epidemic.NewAgentStore(1, 1)
	s.Status[0][0] = epidemic.StatusImmune
	s.Counter[0][0] = 1
	s.Redistribute()

	dpr := epidemic.DiseaseProgression{}
	rngs := []*rand.Rand{rand.New(rand.NewSource(3))}
	params := []epidemic.DiseaseParams{epidemic.DefaultDiseaseParams("covid")}

	dpr.Advance(s, params, rngs)
	assert.Equal(t, epidemic.StatusImmune, s.Status[0][0]) // counter 1 -> 0, still immune

	dpr.Advance(s, params, rngs)
	assert.Equal(t, epidemic.StatusSusceptible, s.Status[0][0])
}
