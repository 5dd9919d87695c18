package epidemic

import "math/rand"

// DayLoop orchestrates one simulated day's phases in the order
// original_source/src/AgentContainer.cpp's morningCommute / interactDay /
// eveningCommute / interactNight / infectAgents / updateStatus run in,
// adapted into the tile-barrier shape of §4.4:
//
//  1. reset contact probability
//  2. send out random/air travelers (outbound only; not redistributed yet)
//  3. commute to work, interact at work/school/work-neighborhood
//  4. commute home, interact at home/home-neighborhood
//  5. turn accumulated probability into new infections
//  6. advance clinical course, treat hospitalized agents
//  7. return-travel finalization, relocate hospitalized agents, redistribute
type DayLoop struct {
	Store    *AgentStore
	Params   []DiseaseParams
	Movement *MovementEngine
	Stats    *StatsEngine

	WorkScale, SocialScale float64

	// RandomTravelProb is the per-agent daily probability of §4.2's
	// moveRandomTravel. Zero disables random travel entirely.
	RandomTravelProb float64

	// Air-travel inputs (§4.2, §6): AirNet supplies the destination CDF,
	// UnitOf/OriginOfUnit map an agent's home cell to its census unit and
	// that unit's assigned origin airport, and AirTravelProbByUnit is the
	// per-unit daily outbound-travel probability. Air travel is skipped
	// entirely if AirNet or UnitOf is nil.
	AirNet              *AirTravelNetwork
	UnitOf              func(homeI, homeJ int) int
	OriginOfUnit        func(unit int) int64
	AirTravelProbByUnit map[int]float64

	// Seed derives each day's per-tile RNGs deterministically; Day is
	// incremented by Step so repeated days don't replay the same draws.
	Seed int64
	Day  int
}

// newTileRNGs derives n independent generators from seed, stable for a
// given (seed, day, tile index) triple but uncorrelated across tiles.
func newTileRNGs(n int, seed int64) []*rand.Rand {
	out := make([]*rand.Rand, n)
	for i := 0; i < n; i++ {
		out[i] = rand.New(rand.NewSource(seed + int64(i)*2654435761))
	}
	return out
}

// Step runs one full day and advances the internal day counter, which
// folds into the RNG seed so back-to-back days don't repeat draws.
func (dl *DayLoop) Step() {
	dl.Day++
	seed := dl.Seed + int64(dl.Day)*1_000_003

	ResetProbabilities(dl.Store)

	travelRNG := rand.New(rand.NewSource(seed))
	if dl.RandomTravelProb > 0 {
		dl.Movement.MoveRandomTravel(dl.RandomTravelProb, travelRNG)
	}
	if dl.AirNet != nil && dl.UnitOf != nil && dl.OriginOfUnit != nil {
		dl.Movement.SetAirTravel(dl.AirNet, dl.OriginOfUnit, dl.UnitOf, dl.AirTravelProbByUnit, travelRNG)
		dl.Movement.MoveAirTravel(dl.UnitOf, dl.AirTravelProbByUnit, travelRNG)
	}

	dl.Movement.MoveToWork()
	dl.Store.Redistribute()
	for _, m := range []InteractionModel{InteractionModWork{}, InteractionModSchool{}, InteractionModWorkNborhood{}} {
		m.Interact(dl.Store, dl.Params, dl.workOrSocialScale(m))
	}

	dl.Movement.MoveToHome()
	dl.Store.Redistribute()
	for _, m := range []InteractionModel{InteractionModHome{}, InteractionModHomeNborhood{}} {
		m.Interact(dl.Store, dl.Params, dl.SocialScale)
	}

	Infector{}.Infect(dl.Store, dl.Params, newTileRNGs(len(dl.Store.Tiles), seed+1))

	progression := DiseaseProgression{Stats: dl.Stats}
	progression.Advance(dl.Store, dl.Params, newTileRNGs(len(dl.Store.Tiles), seed+2))

	hospital := HospitalEngine{Stats: dl.Stats}
	hospital.Treat(dl.Store, dl.Params, newTileRNGs(len(dl.Store.Tiles), seed+3))

	dl.Movement.ReturnRandomTravel()
	dl.Movement.ReturnAirTravel()

	dl.Movement.MoveHospital()
	dl.Store.Redistribute()
}

// workOrSocialScale picks the work_scale for the Work kernel and
// social_scale for School/WorkNborhood, matching how original_source scales
// each kernel's contact probability independently.
func (dl *DayLoop) workOrSocialScale(m InteractionModel) float64 {
	if m.Name() == "work" {
		return dl.WorkScale
	}
	return dl.SocialScale
}
