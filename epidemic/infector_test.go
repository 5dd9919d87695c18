package epidemic_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harrizontal/epidemicsim/epidemic"
)

func TestInfectorConvertsZeroEscapeProbabilityIntoInfectionReliably(t *testing.T) {
	s := epidemic.NewAgentStore(1, 1)
	s.Status[0][0] = epidemic.StatusSusceptible
	s.Prob[0][0] = 0.0 // certain infection: every contact failed to be escaped
	s.Redistribute()

	params := []epidemic.DiseaseParams{epidemic.DefaultDiseaseParams("covid")}
	rngs := []*rand.Rand{rand.New(rand.NewSource(1))}
	epidemic.Infector{}.Infect(s, params, rngs)

	assert.Equal(t, epidemic.StatusInfected, s.Status[0][0])
	assert.Equal(t, 0.0, s.Counter[0][0])
	assert.Greater(t, s.LatentPeriod[0][0], 0.0)
}

func TestInfectorLeavesAgentsAloneWhenEscapeProbabilityIsCertain(t *testing.T) {
	s := epidemic.NewAgentStore(1, 1)
	s.Status[0][0] = epidemic.StatusSusceptible
	s.Prob[0][0] = 1.0 // every contact escaped: no infection possible
	s.Redistribute()

	params := []epidemic.DiseaseParams{epidemic.DefaultDiseaseParams("covid")}
	rngs := []*rand.Rand{rand.New(rand.NewSource(1))}
	epidemic.Infector{}.Infect(s, params, rngs)

	assert.Equal(t, epidemic.StatusSusceptible, s.Status[0][0])
}

func TestInfectorIgnoresAlreadyInfectedAndImmuneAgents(t *testing.T) {
	s := epidemic.NewAgentStore(2, 1)
	s.Status[0][0] = epidemic.StatusInfected
	s.Prob[0][0] = 0.0
	s.Status[0][1] = epidemic.StatusImmune
	s.Prob[0][1] = 0.0
	s.Redistribute()

	params := []epidemic.DiseaseParams{epidemic.DefaultDiseaseParams("covid")}
	rngs := []*rand.Rand{rand.New(rand.NewSource(1))}
	epidemic.Infector{}.Infect(s, params, rngs)

	assert.Equal(t, epidemic.StatusInfected, s.Status[0][0])
	assert.Equal(t, epidemic.StatusImmune, s.Status[0][1])
}
