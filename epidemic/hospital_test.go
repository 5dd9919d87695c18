package epidemic_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harrizontal/epidemicsim/epidemic"
)

func hospitalizedAgent(timer float64) (*epidemic.AgentStore, *epidemic.StatsEngine) {
	s := epidemic.NewAgentStore(1, 1)
	s.AgeGroup[0] = epidemic.AgeO65
	s.HomeI[0], s.HomeJ[0] = 2, 2
	s.Status[0][0] = epidemic.StatusInfected
	s.IncubationPeriod[0][0] = 5
	s.Counter[0][0] = 9 // not equal to IncubationPeriod, so today isn't diagnosis day
	s.TreatmentTimer[0][0] = timer
	s.HospI[0], s.HospJ[0] = s.HomeI[0], s.HomeJ[0]
	s.Redistribute()
	stats := epidemic.NewStatsEngine()
	return s, stats
}

func TestHospitalDischargeAtTimerZeroRetractsOnlyHospitalizationGauge(t *testing.T) {
	dp := epidemic.DefaultDiseaseParams("covid")
	dp.HospToDeath[epidemic.StatHospitalization] = [6]float64{} // never dies at ward phase
	params := []epidemic.DiseaseParams{dp}

	s, stats := hospitalizedAgent(1) // counts down to 0 this step
	home := epidemic.CellKey{I: s.HomeI[0], J: s.HomeJ[0]}
	stats.RecordEvent(home, 0, epidemic.StatHospitalization, 1)

	h := epidemic.HospitalEngine{Stats: stats}
	rngs := []*rand.Rand{rand.New(rand.NewSource(1))}
	h.Treat(s, params, rngs)

	assert.Equal(t, epidemic.StatusImmune, s.Status[0][0])
	assert.False(t, s.InHospital(0))
	totals := stats.Totals(home, 0)
	assert.Equal(t, 0.0, totals.Hospitalization)
}

func TestHospitalDeathAtVentilatorPhaseRetractsAllActiveGaugesAndRecordsDeath(t *testing.T) {
	dp := epidemic.DefaultDiseaseParams("covid")
	dp.HospToDeath[epidemic.StatVentilator] = [6]float64{1, 1, 1, 1, 1, 1} // certain death
	params := []epidemic.DiseaseParams{dp}

	s, stats := hospitalizedAgent(2*dp.THospOffset + 1) // counts down to 2*offset: ventilator phase end
	home := epidemic.CellKey{I: s.HomeI[0], J: s.HomeJ[0]}
	stats.RecordEvent(home, 0, epidemic.StatHospitalization, 1)
	stats.RecordEvent(home, 0, epidemic.StatICU, 1)
	stats.RecordEvent(home, 0, epidemic.StatVentilator, 1)

	h := epidemic.HospitalEngine{Stats: stats}
	rngs := []*rand.Rand{rand.New(rand.NewSource(1))}
	h.Treat(s, params, rngs)

	assert.True(t, s.IsDead(0))
	assert.Equal(t, -1, s.HospI[0])
	totals := stats.Totals(home, 0)
	assert.Equal(t, 0.0, totals.Hospitalization)
	assert.Equal(t, 0.0, totals.ICU)
	assert.Equal(t, 0.0, totals.Ventilator)
	assert.Equal(t, 1.0, totals.Death)
}

func TestHospitalSkipsAgentsNotCurrentlyHospitalized(t *testing.T) {
	s := epidemic.NewAgentStore(1, 1)
	s.Status[0][0] = epidemic.StatusInfected
	s.TreatmentTimer[0][0] = 5 // nonzero, but agent was never admitted (HospI/J stay -1)
	s.Redistribute()

	h := epidemic.HospitalEngine{}
	rngs := []*rand.Rand{rand.New(rand.NewSource(1))}
	params := []epidemic.DiseaseParams{epidemic.DefaultDiseaseParams("covid")}
	h.Treat(s, params, rngs)

	assert.Equal(t, 5.0, s.TreatmentTimer[0][0], "non-hospitalized agents must be left untouched")
}
