package epidemic

import "math/rand"

// HospitalEngine treats hospitalized agents and decides discharge/death
// (§4.7), grounded on original_source/src/HospitalModel.H::treatAgents. The
// treatment_timer set by DiseaseProgression at diagnosis encodes all three
// phases (hospitalization, ICU, ventilator) as multiples of THospOffset;
// counting it down to zero, to THospOffset, or to 2*THospOffset signals the
// end of each phase.
type HospitalEngine struct {
	Stats *StatsEngine
}

// Treat advances every hospitalized agent's stay by one day.
func (h HospitalEngine) Treat(store *AgentStore, params []DiseaseParams, rngs []*rand.Rand) {
	forEachTileIndexed(store, func(ti int, tile *Tile) {
		rng := rngs[ti]
		for _, i := range tile.Indices {
			if !store.InHospital(i) {
				continue
			}
			h.treatOne(store, params, i, rng)
		}
	})
}

func (h HospitalEngine) treatOne(store *AgentStore, params []DiseaseParams, i int, rng *rand.Rand) {
	home := CellKey{store.HomeI[i], store.HomeJ[i]}
	died := false

	// Once one disease's phase-end roll kills the agent, no later disease in
	// this same day's loop may roll a second, double-counted death: mirrors
	// HospitalModel.H's is_alive_ptr check at the top of each disease's
	// per-agent body.
	for d := range params {
		if died {
			break
		}
		dp := &params[d]
		if store.Status[d][i] != StatusInfected {
			continue
		}
		// Newly diagnosed today: treatment_timer was just set, don't count
		// it down on the same day it was assigned.
		if store.Counter[d][i] == float64(int(store.IncubationPeriod[d][i])) {
			continue
		}
		if store.TreatmentTimer[d][i] == 0 {
			continue
		}

		store.TreatmentTimer[d][i]--
		timer := store.TreatmentTimer[d][i]

		var phase DiseaseStat
		var phaseEnded bool
		switch {
		case timer == 0:
			phase, phaseEnded = StatHospitalization, true
		case timer == dp.THospOffset:
			phase, phaseEnded = StatICU, true
		case timer == 2*dp.THospOffset:
			phase, phaseEnded = StatVentilator, true
		}
		if !phaseEnded {
			continue
		}

		if rng.Float64() < dp.HospToDeath[phase][store.AgeGroup[i]] {
			died = true
			store.Status[d][i] = StatusDead
			if h.Stats != nil {
				h.Stats.RecordEvent(home, d, StatDeath, 1)
				h.retractPhases(home, d, phase)
			}
		} else {
			store.Status[d][i] = StatusImmune
			store.Counter[d][i] = dp.SampleImmuneLength(rng)
			store.Symptomatic[d][i] = Presymptomatic
			store.Withdrawn[i] = false
			store.TreatmentTimer[d][i] = 0
			if h.Stats != nil {
				h.retractPhases(home, d, phase)
			}
		}
	}

	if died {
		for d := range params {
			store.Status[d][i] = StatusDead
		}
		store.HospI[i], store.HospJ[i] = -1, -1
		store.Withdrawn[i] = false
		return
	}

	sumTimers := 0.0
	for d := range params {
		sumTimers += store.TreatmentTimer[d][i]
	}
	if sumTimers == 0 {
		store.HospI[i], store.HospJ[i] = -1, -1
		store.Withdrawn[i] = false
	}
}

// retractPhases undoes the +1 recorded at diagnosis time for every phase the
// stay actually passed through, mirroring HospitalModel.H's
// abs(flag_status) > DiseaseStats::X decrements: a patient who reaches
// ventilator status was counted as hospitalized and ICU too, so the stay's
// end (at whichever phase it ends on) retracts Hospitalization
// unconditionally, ICU when the stay reached ICU or beyond, and Ventilator
// only when the stay reached ventilator.
func (h *HospitalEngine) retractPhases(home CellKey, d int, reached DiseaseStat) {
	h.Stats.RecordEvent(home, d, StatHospitalization, -1)
	if reached >= StatICU {
		h.Stats.RecordEvent(home, d, StatICU, -1)
	}
	if reached >= StatVentilator {
		h.Stats.RecordEvent(home, d, StatVentilator, -1)
	}
}
