package epidemic

import "math/rand"

// AgentRecord is one agent's static attributes as an external loader
// produces them (§3, §6). Loader implementations translate census or
// UrbanPop source data into a slice of these before NewAgentStoreFromRecords
// packs them into the columnar AgentStore.
type AgentRecord struct {
	AgeGroup                     AgeGroup
	Family                       int
	HomeI, HomeJ, WorkI, WorkJ   int
	HomeNeighborhood             int
	WorkNeighborhood             int
	SchoolID, SchoolGrade        int
	NAICS, Workgroup             int
}

// Loader is the external-data contract (§6, Non-goals): a real
// implementation parses a census or UrbanPop population file and an
// airport/commute table; this package only depends on the interface.
type Loader interface {
	LoadAgents() ([]AgentRecord, error)
	LoadCommunities() ([]Community, error)
	LoadAirports() ([]Airport, []AirRoute, error)
}

// AirRoute is one directed, weighted edge a Loader contributes to an
// AirTravelNetwork.
type AirRoute struct {
	From, To int64
	Prob     float64
}

// SyntheticLoader is a deterministic, in-memory Loader used by tests and as
// the population source of cmd/episim and cmd/epiweb, in place of a real
// census/UrbanPop parser,
// which §6's Non-goals place out of scope for this package.
type SyntheticLoader struct {
	NumAgents      int
	GridSize       int
	FamilySize     int
	Rng            *rand.Rand
}

// NewSyntheticLoader builds a generator for a gridSize x gridSize domain of
// numAgents agents, grouped into families of familySize.
func NewSyntheticLoader(numAgents, gridSize, familySize int, rng *rand.Rand) *SyntheticLoader {
	return &SyntheticLoader{NumAgents: numAgents, GridSize: gridSize, FamilySize: familySize, Rng: rng}
}

func (l *SyntheticLoader) LoadAgents() ([]AgentRecord, error) {
	if l.FamilySize <= 0 {
		return nil, &ConfigError{Reason: "synthetic loader family size must be positive"}
	}
	recs := make([]AgentRecord, l.NumAgents)
	for i := range recs {
		family := i / l.FamilySize
		homeI := family % l.GridSize
		homeJ := (family / l.GridSize) % l.GridSize
		workI := (family + 1) % l.GridSize
		workJ := (family / l.GridSize) % l.GridSize

		age := AgeGroup(l.Rng.Intn(int(numAgeGroups)))
		schoolID := 0
		schoolGrade := 0
		if age == AgeU5 || age == Age5to17 {
			schoolID = int(SchoolElem)
			schoolGrade = 1
		}

		recs[i] = AgentRecord{
			AgeGroup:         age,
			Family:           family,
			HomeI:            homeI,
			HomeJ:            homeJ,
			WorkI:            workI,
			WorkJ:            workJ,
			HomeNeighborhood: family / FamiliesPerCluster,
			WorkNeighborhood: (family + 1) / FamiliesPerCluster,
			SchoolID:         schoolID,
			SchoolGrade:      schoolGrade,
			NAICS:            1,
			Workgroup:        family%8 + 1,
		}
	}
	return recs, nil
}

func (l *SyntheticLoader) LoadCommunities() ([]Community, error) {
	out := make([]Community, 0, l.GridSize*l.GridSize)
	for i := 0; i < l.GridSize; i++ {
		for j := 0; j < l.GridSize; j++ {
			out = append(out, Community{
				Cell:   CellKey{i, j},
				UnitID: i % 4,
				FIPS:   10000 + i*l.GridSize + j,
				Tract:  "synthetic",
			})
		}
	}
	return out, nil
}

func (l *SyntheticLoader) LoadAirports() ([]Airport, []AirRoute, error) {
	airports := []Airport{
		{ID: 0, Unit: 0, CellI: 0, CellJ: 0},
		{ID: 1, Unit: 1, CellI: l.GridSize - 1, CellJ: l.GridSize - 1},
	}
	routes := []AirRoute{
		{From: 0, To: 1, Prob: 1.0},
		{From: 1, To: 0, Prob: 1.0},
	}
	return airports, routes, nil
}

// NewAgentStoreFromRecords packs loader-produced records into a fresh
// AgentStore, all agents starting StatusNever/susceptible-eligible.
func NewAgentStoreFromRecords(recs []AgentRecord, numDiseases int) *AgentStore {
	s := NewAgentStore(len(recs), numDiseases)
	for i, r := range recs {
		s.AgeGroup[i] = r.AgeGroup
		s.Family[i] = r.Family
		s.HomeI[i], s.HomeJ[i] = r.HomeI, r.HomeJ
		s.WorkI[i], s.WorkJ[i] = r.WorkI, r.WorkJ
		s.HomeNeighborhood[i] = r.HomeNeighborhood
		s.WorkNeighborhood[i] = r.WorkNeighborhood
		s.SchoolID[i] = r.SchoolID
		s.SchoolGrade[i] = r.SchoolGrade
		s.NAICS[i] = r.NAICS
		s.Workgroup[i] = r.Workgroup
		s.CellI[i], s.CellJ[i] = r.HomeI, r.HomeJ
		for d := 0; d < numDiseases; d++ {
			s.Status[d][i] = StatusNever
		}
	}
	return s
}
