package epidemic

import "math/rand"

// Default daily travel probabilities used when a Loader supplies no
// explicit per-unit outbound-travel table (§6): small enough that random
// and air travel remain a minority-of-agents mechanism, matching the scale
// of the other default compliance/transmission constants in
// DefaultDiseaseParams.
const (
	defaultRandomTravelProb = 0.0005
	defaultAirTravelProb    = 0.0002
)

// Simulation wires every component into the top-level API (§6): init,
// step, totals, cellCensus, shelterStart, shelterStop. Grounded on the
// Harrizontal dispatchserver teacher's Simulation struct in
// dispatchsim/simulator.go, which plays the same role of holding every
// subsystem and exposing a small imperative control surface.
type Simulation struct {
	Store    *AgentStore
	Geometry *Geometry
	Grid     *CommunityGrid
	Params   []DiseaseParams
	AirNet   *AirTravelNetwork
	Movement *MovementEngine
	Stats    *StatsEngine
	Day      DayLoop

	ShelterCompliance float64
	shelterActive     bool
	seed              int64
	unitOf            func(homeI, homeJ int) int
}

// NewSimulation builds a Simulation from a Loader and a disease parameter
// set (§6's init operation). minLng/minLat/spacingX/spacingY/cellsI/cellsJ
// describe the domain Geometry; seed is the base RNG seed every day's
// per-tile generators derive from.
func NewSimulation(loader Loader, params []DiseaseParams, minLng, minLat, spacingX, spacingY float64, cellsI, cellsJ int, seed int64) (*Simulation, error) {
	agentRecs, err := loader.LoadAgents()
	if err != nil {
		return nil, err
	}
	communities, err := loader.LoadCommunities()
	if err != nil {
		return nil, err
	}
	airports, routes, err := loader.LoadAirports()
	if err != nil {
		return nil, err
	}

	geom := NewGeometry(minLng, minLat, spacingX, spacingY, cellsI, cellsJ)
	grid := NewCommunityGrid(geom)
	for _, c := range communities {
		if !geom.InDomain(c.Cell.I, c.Cell.J) {
			return nil, &DataError{Reason: "community cell outside domain"}
		}
		grid.Set(c)
	}

	store := NewAgentStoreFromRecords(agentRecs, len(params))
	for i := 0; i < store.N; i++ {
		if !geom.InDomain(store.HomeI[i], store.HomeJ[i]) || !geom.InDomain(store.WorkI[i], store.WorkJ[i]) {
			return nil, &DataError{Reason: "agent home or work cell outside domain"}
		}
	}
	store.Redistribute()

	airNet := NewAirTravelNetwork()
	for _, a := range airports {
		airNet.AddAirport(a)
	}
	for _, r := range routes {
		airNet.AddRoute(r.From, r.To, r.Prob)
	}
	airNet.Finalize()

	unitOf := func(homeI, homeJ int) int {
		if c := grid.Get(homeI, homeJ); c != nil {
			return c.UnitID
		}
		return 0
	}

	// originOfUnit assigns each unit the airport of the first registered
	// airport serving it (§6: "per-unit assigned airport"); units with no
	// airport get -1, which AirTravelNetwork.SampleDestination treats as
	// having no outbound routes.
	unitAirport := make(map[int]int64)
	for _, a := range airports {
		if _, ok := unitAirport[a.Unit]; !ok {
			unitAirport[a.Unit] = a.ID
		}
	}
	originOfUnit := func(unit int) int64 {
		if id, ok := unitAirport[unit]; ok {
			return id
		}
		return -1
	}
	airTravelProbByUnit := make(map[int]float64, len(unitAirport))
	for unit := range unitAirport {
		airTravelProbByUnit[unit] = defaultAirTravelProb
	}

	stats := NewStatsEngine()
	stats.BuildRollupGraph(grid, store)

	movement := NewMovementEngine(store, geom)

	sim := &Simulation{
		Store:             store,
		Geometry:          geom,
		Grid:              grid,
		Params:            params,
		AirNet:            airNet,
		Movement:          movement,
		Stats:             stats,
		ShelterCompliance: params[0].ShelterCompliance,
		seed:              seed,
		unitOf:            unitOf,
	}
	sim.Day = DayLoop{
		Store:               store,
		Params:              params,
		Movement:            movement,
		Stats:               stats,
		WorkScale:           1.0,
		SocialScale:         1.0,
		RandomTravelProb:    defaultRandomTravelProb,
		AirNet:              airNet,
		UnitOf:              unitOf,
		OriginOfUnit:        originOfUnit,
		AirTravelProbByUnit: airTravelProbByUnit,
		Seed:                seed,
	}

	for d := range params {
		seedInitialCases(store, &params[d], d, rand.New(rand.NewSource(seed)))
	}

	return sim, nil
}

// seedInitialCases infects NumInitialCases random susceptible agents at
// start-of-run, the random-seeding half of §4.6's InitialCaseType (file-based
// seeding is a Loader/Non-goals concern).
func seedInitialCases(store *AgentStore, dp *DiseaseParams, d int, rng *rand.Rand) {
	remaining := dp.NumInitialCases
	for remaining > 0 && store.N > 0 {
		i := rng.Intn(store.N)
		if store.Status[d][i] != StatusNever {
			continue
		}
		setInfected(store, dp, d, i, rng)
		remaining--
	}
}

// Step advances the simulation by one day.
func (s *Simulation) Step() {
	s.Day.Step()
}

// Totals returns the active hospitalization/ICU/ventilator gauges and the
// cumulative death count for one community and disease.
func (s *Simulation) Totals(cell CellKey, disease int) CommunityTotals {
	return s.Stats.Totals(cell, disease)
}

// CellCensus returns live-agent counts by Status for one cell/disease.
func (s *Simulation) CellCensus(cell CellKey, disease int) map[Status]int {
	return CellCensus(s.Store, cell, disease)
}

// NeighborhoodTotals sums the hospitalization/ICU/ventilator gauges and
// death counts across every community in one home neighborhood.
func (s *Simulation) NeighborhoodTotals(neighborhood, disease int) CommunityTotals {
	return s.Stats.NeighborhoodTotals(s.Grid, neighborhood, disease)
}

// SchoolTotals sums the hospitalization/ICU/ventilator gauges and death
// counts across every community with a resident enrolled in one school.
func (s *Simulation) SchoolTotals(schoolID, disease int) CommunityTotals {
	return s.Stats.SchoolTotals(s.Grid, schoolID, disease)
}

// AgeCensus returns live-agent counts by (AgeGroup, Status) for one
// cell/disease, the age-breakdown half of §2's "school/age breakdowns".
func (s *Simulation) AgeCensus(cell CellKey, disease int) map[AgeGroup]map[Status]int {
	return AgeCensus(s.Store, cell, disease)
}

// SchoolAgeCensus returns one school's enrolled live-agent counts by
// (AgeGroup, Status) for one disease.
func (s *Simulation) SchoolAgeCensus(schoolID, disease int) map[AgeGroup]map[Status]int {
	return SchoolAgeCensus(s.Store, schoolID, disease)
}

// ShelterStart begins a shelter-in-place order.
func (s *Simulation) ShelterStart() {
	s.shelterActive = true
	rngs := newTileRNGs(len(s.Store.Tiles), s.seed+int64(s.Day.Day)*7+1)
	ShelterStart(s.Store, s.Geometry, s.ShelterCompliance, rngs)
}

// ShelterStop ends a shelter-in-place order.
func (s *Simulation) ShelterStop() {
	s.shelterActive = false
	ShelterStop(s.Store)
}

// ShelterActive reports whether a shelter-in-place order is in effect.
func (s *Simulation) ShelterActive() bool {
	return s.shelterActive
}

// TotalLiveAgents returns the number of agents not yet dead, via
// AgentStore's Reduce helper.
func (s *Simulation) TotalLiveAgents() int {
	return Reduce(s.Store, 0, func(acc int, i int) int {
		if s.Store.IsDead(i) {
			return acc
		}
		return acc + 1
	}, func(a, b int) int { return a + b })
}
