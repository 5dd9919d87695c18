package epidemic

// familyAgg accumulates infectious-transmitter counts for one family or
// family cluster, split by transmitter age class, grounded on
// original_source/src/InteractionModHome.H's BinaryInteractionHome.
type familyAgg struct {
	infChild, infAdult     int // all infectious transmitters of that disease
	infChildNW, infAdultNW int // the subset that is also not withdrawn
}

// InteractionModHome implements the within-household and family-cluster
// contact tiers (§4.3), grounded on
// original_source/src/InteractionModHome.H.
type InteractionModHome struct{}

func (InteractionModHome) Name() string { return "home" }

func (InteractionModHome) Interact(store *AgentStore, params []DiseaseParams, socialScale float64) {
	candidate := func(i int) bool {
		return candidateForFixedSiteModels(store, i)
	}
	bins := binAgents(store, func(i int) int { return store.HomeNeighborhood[i] }, candidate)

	forEachBin(bins, func(members []int) {
		for d := range params {
			familyAggs := make(map[int]*familyAgg)
			clusterAggs := make(map[int]*familyAgg)

			for _, j := range members {
				if !store.IsInfectious(j, d) {
					continue
				}
				fam := store.Family[j]
				cluster := fam / FamiliesPerCluster
				fa := familyAggs[fam]
				if fa == nil {
					fa = &familyAgg{}
					familyAggs[fam] = fa
				}
				ca := clusterAggs[cluster]
				if ca == nil {
					ca = &familyAgg{}
					clusterAggs[cluster] = ca
				}
				child := !store.AgeGroup[j].IsAdult()
				if child {
					fa.infChild++
				} else {
					fa.infAdult++
				}
				if !store.Withdrawn[j] {
					if child {
						fa.infChildNW++
						ca.infChildNW++
					} else {
						fa.infAdultNW++
						ca.infAdultNW++
					}
				}
			}

			dp := &params[d]
			for _, i := range members {
				if !store.IsSusceptible(i, d) {
					continue
				}
				age := store.AgeGroup[i]
				fam := store.Family[i]
				cluster := fam / FamiliesPerCluster

				if fa := familyAggs[fam]; fa != nil {
					applyContacts(store, d, i, infectProb(dp.XmitHHChild[age], dp), fa.infChild)
					applyContacts(store, d, i, infectProb(dp.XmitHHAdult[age], dp), fa.infAdult)
				}

				if store.Withdrawn[i] {
					continue
				}
				ca := clusterAggs[cluster]
				if ca == nil {
					continue
				}
				fa := familyAggs[fam]
				famChildNW, famAdultNW := 0, 0
				if fa != nil {
					famChildNW, famAdultNW = fa.infChildNW, fa.infAdultNW
				}
				nClusterChild := ca.infChildNW - famChildNW
				nClusterAdult := ca.infAdultNW - famAdultNW
				applyContacts(store, d, i, infectProb(dp.XmitNCChild[age], dp)*socialScale, nClusterChild)
				applyContacts(store, d, i, infectProb(dp.XmitNCAdult[age], dp)*socialScale, nClusterAdult)
			}
		}
	})
}
