package epidemic

// InteractionModWorkNborhood implements the at-work neighborhood/community
// contact tier (§4.3), grounded on
// original_source/src/InteractionModWorkNborhood.H. Children use their home
// neighborhood even while at a workplace cell (e.g. daycare pickup), while
// adults use their work neighborhood; the tier (same-neighborhood vs
// same-community) is decided per pair from whichever value applies to each
// side.
type InteractionModWorkNborhood struct{}

func (InteractionModWorkNborhood) Name() string { return "work_nborhood" }

// effectiveNeighborhood returns the neighborhood index to use for contact
// tiering: home neighborhood for children, work neighborhood for adults.
func effectiveNeighborhood(store *AgentStore, i int) int {
	if store.AgeGroup[i].IsAdult() {
		return store.WorkNeighborhood[i]
	}
	return store.HomeNeighborhood[i]
}

func (InteractionModWorkNborhood) Interact(store *AgentStore, params []DiseaseParams, socialScale float64) {
	candidate := func(i int) bool {
		return !store.IsDead(i) && !store.InHospital(i) && !store.Withdrawn[i] && store.RandomTravel[i] < 0
	}
	bins := binAgents(store, func(i int) int { return cellKey(store.CellI[i], store.CellJ[i]) }, candidate)

	forEachBin(bins, func(members []int) {
		for d := range params {
			nbhdCount := make(map[int]int)
			total := 0
			for _, j := range members {
				if !store.IsInfectious(j, d) {
					continue
				}
				nbhdCount[effectiveNeighborhood(store, j)]++
				total++
			}

			dp := &params[d]
			for _, i := range members {
				if !store.IsSusceptible(i, d) {
					continue
				}
				age := store.AgeGroup[i]
				nSame := nbhdCount[effectiveNeighborhood(store, i)]
				nOther := total - nSame
				applyContacts(store, d, i, infectProb(dp.XmitHood[age], dp)*socialScale, nSame)
				applyContacts(store, d, i, infectProb(dp.XmitComm[age], dp)*socialScale, nOther)
			}
		}
	})
}
