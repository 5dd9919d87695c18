package epidemic

import "math/rand"

// ShelterStart marks every agent inside a registered shelter zone (or every
// agent, if none are registered) as withdrawn with probability
// ShelterCompliance, grounded on
// original_source/src/AgentContainer.cpp::shelterStart. Unlike
// symptomatic-withdrawal it applies independently of disease status.
func ShelterStart(store *AgentStore, geom *Geometry, shelterCompliance float64, rngs []*rand.Rand) {
	forEachTileIndexed(store, func(ti int, tile *Tile) {
		rng := rngs[ti]
		for _, i := range tile.Indices {
			if !geom.InShelterZone(store.CellI[i], store.CellJ[i]) {
				continue
			}
			if rng.Float64() < shelterCompliance {
				store.Withdrawn[i] = true
			}
		}
	})
}

// ShelterStop clears every agent's withdrawn flag, grounded on
// original_source/src/AgentContainer.cpp::shelterStop.
func ShelterStop(store *AgentStore) {
	store.ForEachAgent(func(i int) {
		store.Withdrawn[i] = false
	})
}
