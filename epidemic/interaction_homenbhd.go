package epidemic

// cellKey folds a (i,j) grid cell into a single int bin key, used by the
// kernels that bin by community (cell) rather than by a named group.
func cellKey(i, j int) int {
	const prime = 1_000_003
	return i*prime + j
}

// InteractionModHomeNborhood implements the neighborhood/community contact
// tier (§4.3), grounded on
// original_source/src/InteractionModHomeNborhood.H. Unlike InteractionModHome
// it allows random travelers to participate (they are physically present
// wherever they have traveled to), excluding only hospitalized and withdrawn
// agents.
type InteractionModHomeNborhood struct{}

func (InteractionModHomeNborhood) Name() string { return "home_nborhood" }

func (InteractionModHomeNborhood) Interact(store *AgentStore, params []DiseaseParams, socialScale float64) {
	candidate := func(i int) bool {
		return !store.IsDead(i) && !store.InHospital(i) && !store.Withdrawn[i]
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
				nbhdCount[store.HomeNeighborhood[j]]++
				total++
			}

			dp := &params[d]
			for _, i := range members {
				if !store.IsSusceptible(i, d) {
					continue
				}
				age := store.AgeGroup[i]
				nSame := nbhdCount[store.HomeNeighborhood[i]]
				nOther := total - nSame
				applyContacts(store, d, i, infectProb(dp.XmitHood[age], dp)*socialScale, nSame)
				applyContacts(store, d, i, infectProb(dp.XmitComm[age], dp)*socialScale, nOther)
			}
		}
	})
}
