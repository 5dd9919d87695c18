package epidemic

import "math/rand"

// MovementEngine implements the relocation operations of §4.2. Every
// operation is a parallel pass over all agents (AgentStore.ForEachAgent);
// operations that may move an agent across a cell boundary must be followed
// by AgentStore.Redistribute, exactly as §4.2 specifies.
//
// Positions are always stored in grid space (CellI/CellJ); Geometry
// converts to (lng,lat) only at the loader/output boundary, which collapses
// the source's census-vs-UrbanPop coordinate-space distinction into a
// single internal representation without changing observable behavior.
type MovementEngine struct {
	Store *AgentStore
	Geom  *Geometry
}

// NewMovementEngine builds a MovementEngine over the given store and
// geometry.
func NewMovementEngine(store *AgentStore, geom *Geometry) *MovementEngine {
	return &MovementEngine{Store: store, Geom: geom}
}

func (m *MovementEngine) placeAt(i, ci, cj int) {
	if !m.Geom.InDomain(ci, cj) {
		panic("epidemic: movement placed agent out of domain")
	}
	m.Store.CellI[i] = ci
	m.Store.CellJ[i] = cj
}

// MoveToWork relocates every non-hospitalized, non-traveling agent to its
// work cell and raises AtWork. Agents away on random or air travel are left
// at their travel cell: they neither commute to work nor back home until
// ReturnRandomTravel/ReturnAirTravel finalizes the trip at day's end (§4.2,
// §4.4).
func (m *MovementEngine) MoveToWork() {
	s := m.Store
	s.ForEachAgent(func(i int) {
		if s.InHospital(i) || s.IsDead(i) || s.IsTraveling(i) {
			return
		}
		m.placeAt(i, s.WorkI[i], s.WorkJ[i])
		s.AtWork[i] = true
	})
}

// MoveToHome relocates every non-hospitalized, non-traveling agent to its
// home cell and clears AtWork.
func (m *MovementEngine) MoveToHome() {
	s := m.Store
	s.ForEachAgent(func(i int) {
		if s.InHospital(i) || s.IsDead(i) || s.IsTraveling(i) {
			return
		}
		m.placeAt(i, s.HomeI[i], s.HomeJ[i])
		s.AtWork[i] = false
	})
}

// MoveRandomWalk displaces every live agent by a uniform random offset
// within +/- one cell width in each axis, for sensitivity testing (§4.2).
func (m *MovementEngine) MoveRandomWalk(rng *rand.Rand) {
	s := m.Store
	s.ForEachAgent(func(i int) {
		if s.IsDead(i) {
			return
		}
		di := rng.Intn(3) - 1 // -1, 0, or 1
		dj := rng.Intn(3) - 1
		ci, cj := s.CellI[i]+di, s.CellJ[i]+dj
		if !m.Geom.InDomain(ci, cj) {
			return
		}
		s.CellI[i], s.CellJ[i] = ci, cj
	})
}

// MoveRandomTravel teleports eligible agents (not hospitalized, not
// withdrawn, not already traveling) to a uniformly random cell with
// probability p each, flagging them as random travelers (§4.2). It does not
// redistribute; the caller's next MoveToWork+Redistribute absorbs it, per
// §4.2's note that outbound travel ops are intentionally not redistributed
// immediately.
func (m *MovementEngine) MoveRandomTravel(p float64, rng *rand.Rand) {
	s := m.Store
	s.ForEachAgent(func(i int) {
		if s.IsDead(i) || s.InHospital(i) || s.Withdrawn[i] || s.IsTraveling(i) {
			return
		}
		if rng.Float64() >= p {
			return
		}
		s.RandomTravel[i] = i
		ci := rng.Intn(m.Geom.CellsI)
		cj := rng.Intn(m.Geom.CellsJ)
		s.CellI[i], s.CellJ[i] = ci, cj
	})
}

// MoveAirTravel teleports eligible agents to their previously-computed
// trav_i/trav_j destination with per-home-unit probability p[unit], and
// flags them as air travelers (§4.2). Like MoveRandomTravel, it does not
// redistribute immediately.
func (m *MovementEngine) MoveAirTravel(unitOf func(homeI, homeJ int) int, pByUnit map[int]float64, rng *rand.Rand) {
	s := m.Store
	s.ForEachAgent(func(i int) {
		if s.IsDead(i) || s.InHospital(i) || s.Withdrawn[i] || s.RandomTravel[i] >= 0 {
			return
		}
		if s.TravI[i] < 0 {
			return
		}
		unit := unitOf(s.HomeI[i], s.HomeJ[i])
		p := pByUnit[unit]
		if rng.Float64() >= p {
			return
		}
		s.AirTravel[i] = i
		s.CellI[i], s.CellJ[i] = s.TravI[i], s.TravJ[i]
	})
}

// ReturnRandomTravel places every random-traveling agent back at home and
// clears its travel flag.
func (m *MovementEngine) ReturnRandomTravel() {
	s := m.Store
	s.ForEachAgent(func(i int) {
		if s.RandomTravel[i] < 0 {
			return
		}
		s.RandomTravel[i] = -1
		m.placeAt(i, s.HomeI[i], s.HomeJ[i])
	})
}

// ReturnAirTravel places every air-traveling agent back at home and clears
// its travel flag.
func (m *MovementEngine) ReturnAirTravel() {
	s := m.Store
	s.ForEachAgent(func(i int) {
		if s.AirTravel[i] < 0 {
			return
		}
		s.AirTravel[i] = -1
		m.placeAt(i, s.HomeI[i], s.HomeJ[i])
	})
}

// SetAirTravel assigns a trav_i/trav_j destination to every eligible agent
// that draws into the per-unit outbound-travel probability, by sampling the
// air-travel network's CDF rooted at that agent's home unit's airport. It
// only computes destinations; MoveAirTravel performs the actual relocation
// as a separate step (DayLoop.Step calls both, in that order, on the same
// day), matching original_source's two-step set/move split.
func (m *MovementEngine) SetAirTravel(net *AirTravelNetwork, originOfUnit func(unit int) int64, unitOf func(homeI, homeJ int) int, pByUnit map[int]float64, rng *rand.Rand) {
	s := m.Store
	s.ForEachAgent(func(i int) {
		if s.IsDead(i) || s.InHospital(i) || s.Withdrawn[i] {
			return
		}
		unit := unitOf(s.HomeI[i], s.HomeJ[i])
		if rng.Float64() >= pByUnit[unit] {
			return
		}
		origin := originOfUnit(unit)
		destID, ok := net.SampleDestination(origin, rng.Float64())
		if !ok {
			return
		}
		dest, ok := net.Airport(destID)
		if !ok {
			return
		}
		s.TravI[i], s.TravJ[i] = dest.CellI, dest.CellJ
	})
}

// MoveHospital places every hospitalized agent at its hospital cell
// centroid, invoked at the end of DiseaseProgression/HospitalEngine (§4.2).
func (m *MovementEngine) MoveHospital() {
	s := m.Store
	s.ForEachAgent(func(i int) {
		if !s.InHospital(i) {
			return
		}
		m.placeAt(i, s.HospI[i], s.HospJ[i])
	})
}
