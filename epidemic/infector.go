package epidemic

import "math/rand"

// Infector turns the day's accumulated contact probability into new
// infections (§4.6), grounded on
// original_source/src/AgentContainer.cpp::infectAgents. It must run after
// every InteractionModel has accumulated its multiplicative contribution
// into Prob[d][i], and before ResetProbabilities clears it at the start of
// the next day.
type Infector struct{}

// Infect converts each susceptible/never-infected agent's escape
// probability (Prob, the product of (1-p) across every contact) into an
// infection probability and rolls the dice.
func (Infector) Infect(store *AgentStore, params []DiseaseParams, rngs []*rand.Rand) {
	forEachTileIndexed(store, func(ti int, tile *Tile) {
		rng := rngs[ti]
		for _, i := range tile.Indices {
			if store.IsDead(i) {
				continue
			}
			for d := range params {
				infectProbability := 1 - store.Prob[d][i]
				st := store.Status[d][i]
				if st != StatusNever && st != StatusSusceptible {
					continue
				}
				if rng.Float64() < infectProbability {
					setInfected(store, &params[d], d, i, rng)
				}
			}
		}
	})
}

// setInfected transitions agent i to infected with disease d, sampling its
// clinical-course periods, grounded on
// original_source/src/DiseaseParm.H::setInfected.
func setInfected(store *AgentStore, dp *DiseaseParams, d, i int, rng *rand.Rand) {
	store.Status[d][i] = StatusInfected
	store.Counter[d][i] = 0
	latent, infectious, incubation := dp.SamplePeriods(rng)
	store.LatentPeriod[d][i] = latent
	store.InfectiousPeriod[d][i] = infectious
	store.IncubationPeriod[d][i] = incubation
}
