package epidemic

// InteractionModWork implements the workplace contact tier (§4.3), grounded
// on original_source/src/InteractionModWork.H. Transmission is flat: every
// contact within a workgroup carries the same xmit_work probability
// regardless of either party's age.
type InteractionModWork struct{}

func (InteractionModWork) Name() string { return "work" }

func (InteractionModWork) Interact(store *AgentStore, params []DiseaseParams, workScale float64) {
	candidate := func(i int) bool {
		return !store.IsDead(i) && !store.InHospital(i) &&
			store.WorkI[i] >= 0 && store.Workgroup[i] > 0 &&
			!store.Withdrawn[i] && !store.IsTraveling(i)
	}
	bins := binAgents(store, func(i int) int { return cellKey(store.CellI[i], store.CellJ[i])*1_000_003 + store.Workgroup[i] }, candidate)

	forEachBin(bins, func(members []int) {
		for d := range params {
			dp := &params[d]
			n := 0
			for _, j := range members {
				if store.IsInfectious(j, d) {
					n++
				}
			}
			if n == 0 {
				continue
			}
			p := infectProb(dp.XmitWork, dp) * workScale
			for _, i := range members {
				if !store.IsSusceptible(i, d) {
					continue
				}
				applyContacts(store, d, i, p, n)
			}
		}
	})
}
