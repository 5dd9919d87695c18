package epidemic

// schoolBinKey combines a school's location, id, and grade into one bin key
// so that only agents attending literally the same class mix together,
// grounded on original_source/src/InteractionModSchool.H's per-(school_id,
// school_grade) binning.
func schoolBinKey(store *AgentStore, i int) int {
	return cellKey(store.WorkI[i], store.WorkJ[i])*104729 + store.SchoolID[i]*1009 + store.SchoolGrade[i]
}

// InteractionModSchool implements the at-school contact tier (§4.3),
// grounded on original_source/src/InteractionModSchool.H. College through
// elementary school (SchoolCollege..SchoolElem, school ids 1-4) distinguish
// child-to-child, child-to-adult (student-to-staff), adult-to-child, and
// adult-to-adult transmission; daycare (school id 5) only transmits within the same home
// neighborhood, with no age distinction.
type InteractionModSchool struct{}

func (InteractionModSchool) Name() string { return "school" }

func (InteractionModSchool) Interact(store *AgentStore, params []DiseaseParams, socialScale float64) {
	candidate := func(i int) bool {
		return !store.IsDead(i) && !store.InHospital(i) &&
			store.SchoolID[i] > 0 && !store.SchoolClosed[i] &&
			!store.Withdrawn[i] && !store.IsTraveling(i)
	}
	bins := binAgents(store, func(i int) int { return schoolBinKey(store, i) }, candidate)

	forEachBin(bins, func(members []int) {
		if len(members) == 0 {
			return
		}
		schoolID := store.SchoolID[members[0]]

		for d := range params {
			dp := &params[d]

			if schoolID >= int(SchoolDaycare) { // daycare: same home-neighborhood only
				nbhdInfCount := make(map[int]int)
				for _, j := range members {
					if store.IsInfectious(j, d) {
						nbhdInfCount[store.HomeNeighborhood[j]]++
					}
				}
				p := infectProb(dp.XmitSchool[SchoolDaycare], dp) * socialScale
				for _, i := range members {
					if !store.IsSusceptible(i, d) {
						continue
					}
					applyContacts(store, d, i, p, nbhdInfCount[store.HomeNeighborhood[i]])
				}
				continue
			}

			var infChild, infAdult int
			for _, j := range members {
				if !store.IsInfectious(j, d) {
					continue
				}
				if store.AgeGroup[j].IsAdult() {
					infAdult++
				} else {
					infChild++
				}
			}

			st := SchoolType(schoolID)
			for _, i := range members {
				if !store.IsSusceptible(i, d) {
					continue
				}
				if store.AgeGroup[i].IsAdult() {
					applyContacts(store, d, i, infectProb(dp.XmitSchool[st], dp)*socialScale, infAdult)
					applyContacts(store, d, i, infectProb(dp.XmitSchoolC2A[st], dp)*socialScale, infChild)
				} else {
					applyContacts(store, d, i, infectProb(dp.XmitSchoolA2C[st], dp)*socialScale, infAdult)
					applyContacts(store, d, i, infectProb(dp.XmitSchool[st], dp)*socialScale, infChild)
				}
			}
		}
	})
}
