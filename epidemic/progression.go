package epidemic

import (
	"math"
	"math/rand"
)

// ResetProbabilities resets every agent's per-disease Prob column to 1.0 at
// the start of a day, before any InteractionModel accumulates contact
// probability into it. Split out from DiseaseProgression (which performs
// this reset inline, at the end of the day, in
// original_source/src/DiseaseStatus.H) so the day's reset-then-accumulate
// ordering reads the same direction it runs in.
func ResetProbabilities(store *AgentStore) {
	store.ForEachAgent(func(i int) {
		for d := 0; d < store.NumDiseases; d++ {
			store.Prob[d][i] = 1.0
		}
	})
}

// DiseaseProgression advances each agent's per-disease clinical course by
// one day (§4.5), grounded on original_source/src/DiseaseStatus.H. It must
// run once per day, after Infector has turned accumulated contact
// probability into new infections.
type DiseaseProgression struct {
	Stats *StatsEngine
}

// Advance steps every live agent's disease state machine forward one day.
// rngs holds one independent generator per tile (len(store.Tiles)), so
// concurrent tiles never share RNG state.
func (dpr DiseaseProgression) Advance(store *AgentStore, params []DiseaseParams, rngs []*rand.Rand) {
	forEachTileIndexed(store, func(ti int, tile *Tile) {
		rng := rngs[ti]
		for _, i := range tile.Indices {
			if store.IsDead(i) {
				continue
			}
			markedHosp := false
			for d := range params {
				if dpr.advanceOne(store, &params[d], d, i, rng) {
					markedHosp = true
				}
			}
			if markedHosp && !store.InHospital(i) {
				store.HospI[i], store.HospJ[i] = store.HomeI[i], store.HomeJ[i]
			}
		}
	})
}

// advanceOne advances agent i's status for disease d by one day, returning
// true if the agent was newly marked for hospitalization today.
func (dpr DiseaseProgression) advanceOne(store *AgentStore, dp *DiseaseParams, d, i int, rng *rand.Rand) bool {
	home := CellKey{store.HomeI[i], store.HomeJ[i]}

	switch store.Status[d][i] {
	case StatusNever, StatusSusceptible:
		return false

	case StatusImmune:
		store.Counter[d][i]--
		if store.Counter[d][i] < 0 {
			store.Counter[d][i] = 0
			store.TreatmentTimer[d][i] = 0
			store.Status[d][i] = StatusSusceptible
		}
		return false

	case StatusInfected:
		store.Counter[d][i]++
		counter := store.Counter[d][i]

		switch {
		case counter == 1:
			if rng.Float64() < dp.PAsymp {
				store.Symptomatic[d][i] = Asymptomatic
			} else {
				store.Symptomatic[d][i] = Presymptomatic
			}

		case counter == math.Floor(store.IncubationPeriod[d][i]):
			if store.Symptomatic[d][i] == Presymptomatic {
				store.Symptomatic[d][i] = Symptomatic
				if dp.SymptomaticWithdrawCompliance > 0 && rng.Float64() < dp.SymptomaticWithdrawCompliance {
					store.Withdrawn[i] = true
				}
				timer, icu, vent := dp.CheckHospitalization(store.AgeGroup[i], rng)
				store.TreatmentTimer[d][i] = timer
				if timer > 0 {
					if dpr.Stats != nil {
						dpr.Stats.RecordEvent(home, d, StatHospitalization, 1)
						if icu {
							dpr.Stats.RecordEvent(home, d, StatICU, 1)
						}
						if vent {
							dpr.Stats.RecordEvent(home, d, StatVentilator, 1)
						}
					}
					return true
				}
			}

		case !store.InHospital(i):
			if counter >= store.LatentPeriod[d][i]+store.InfectiousPeriod[d][i] {
				store.Status[d][i] = StatusImmune
				store.Counter[d][i] = dp.SampleImmuneLength(rng)
				store.Symptomatic[d][i] = Presymptomatic
				store.Withdrawn[i] = false
			}
		}
	}
	return false
}
