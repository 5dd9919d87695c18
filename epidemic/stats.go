package epidemic

import (
	"fmt"
	"sync"

	"github.com/starwander/goraph"
)

// CommunityTotals holds one community's one-disease counters. Hospitalization,
// ICU, and Ventilator are currently-active gauges (incremented at diagnosis,
// decremented as each phase of a hospital stay concludes); Death is a
// cumulative total that is never decremented.
type CommunityTotals struct {
	Hospitalization, ICU, Ventilator, Death float64
}

// rollupVertex adapts a plain string id to goraph's vertex contract so the
// school/neighborhood/community containment hierarchy can ride on a real
// graph library instead of a hand-rolled tree.
type rollupVertex string

func (v rollupVertex) ID() interface{} { return string(v) }

// StatsEngine accumulates the community-wise disease statistics §4.5/§4.7
// report (hospitalization, ICU, ventilator, death), and rolls them up
// through the school/neighborhood/community/unit containment hierarchy.
// Grounded on the Harrizontal dispatchserver teacher's ordermanager.go
// pattern of a mutex-guarded aggregate map updated from concurrent workers,
// generalized to per-community per-disease counters; the containment
// rollup is grounded on no single teacher file and instead adopts
// github.com/starwander/goraph, the one pack dependency that models a
// general-purpose directed graph ADT suited to an arbitrary containment
// hierarchy (a plain map would work but would leave goraph, the only graph
// library in the pack not already claimed by the air-travel network,
// unused).
type StatsEngine struct {
	mu     sync.Mutex
	totals map[CellKey]map[int]*CommunityTotals // cell -> disease index -> totals

	rollup *goraph.Graph
	built  bool
}

// NewStatsEngine creates an empty engine.
func NewStatsEngine() *StatsEngine {
	return &StatsEngine{
		totals: make(map[CellKey]map[int]*CommunityTotals),
		rollup: goraph.NewGraph(),
	}
}

// RecordEvent adds delta to one community's one-disease counter for stat.
func (s *StatsEngine) RecordEvent(cell CellKey, disease int, stat DiseaseStat, delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	perDisease, ok := s.totals[cell]
	if !ok {
		perDisease = make(map[int]*CommunityTotals)
		s.totals[cell] = perDisease
	}
	t, ok := perDisease[disease]
	if !ok {
		t = &CommunityTotals{}
		perDisease[disease] = t
	}
	switch stat {
	case StatHospitalization:
		t.Hospitalization += delta
	case StatICU:
		t.ICU += delta
	case StatVentilator:
		t.Ventilator += delta
	case StatDeath:
		t.Death += delta
	}
}

// Totals returns the current counters for one community/disease (active
// hospitalization/ICU/ventilator gauges and cumulative deaths), or a zero
// value if nothing has been recorded there yet.
func (s *StatsEngine) Totals(cell CellKey, disease int) CommunityTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	if perDisease, ok := s.totals[cell]; ok {
		if t, ok := perDisease[disease]; ok {
			return *t
		}
	}
	return CommunityTotals{}
}

// cellVertexID names a community's node in the rollup graph.
func cellVertexID(cell CellKey) string {
	return fmt.Sprintf("community:%d:%d", cell.I, cell.J)
}

func neighborhoodVertexID(n int) string { return fmt.Sprintf("neighborhood:%d", n) }
func schoolVertexID(id int) string      { return fmt.Sprintf("school:%d", id) }
func unitVertexID(u int) string         { return fmt.Sprintf("unit:%d", u) }

// BuildRollupGraph registers the containment hierarchy that
// NeighborhoodTotals and SchoolTotals walk: every community points at its
// unit and at the home neighborhood of each of its residents; residents
// with a school id point their community at that school too. Call once after the CommunityGrid and agent roster are
// final; rebuilding clears any prior graph.
func (s *StatsEngine) BuildRollupGraph(grid *CommunityGrid, store *AgentStore) {
	s.rollup = goraph.NewGraph()
	s.built = true

	addVertexOnce := func(id string) {
		if _, err := s.rollup.GetVertex(id); err != nil {
			_ = s.rollup.AddVertex(rollupVertex(id))
		}
	}

	for _, c := range grid.All() {
		cv := cellVertexID(c.Cell)
		addVertexOnce(cv)
		uv := unitVertexID(c.UnitID)
		addVertexOnce(uv)
		_ = s.rollup.AddEdge(cv, uv, 1)
	}

	for i := 0; i < store.N; i++ {
		cell := CellKey{store.HomeI[i], store.HomeJ[i]}
		cv := cellVertexID(cell)
		addVertexOnce(cv)

		nv := neighborhoodVertexID(store.HomeNeighborhood[i])
		addVertexOnce(nv)
		_ = s.rollup.AddEdge(cv, nv, 1)

		if store.SchoolID[i] > 0 {
			sv := schoolVertexID(store.SchoolID[i])
			addVertexOnce(sv)
			_ = s.rollup.AddEdge(cv, sv, 1)
		}
	}
}

// NeighborhoodTotals sums every community belonging to one home
// neighborhood, for one disease, using the rollup graph's edges rather than
// re-deriving membership from the agent roster.
func (s *StatsEngine) NeighborhoodTotals(grid *CommunityGrid, neighborhood, disease int) CommunityTotals {
	var out CommunityTotals
	if !s.built {
		return out
	}
	target := neighborhoodVertexID(neighborhood)
	for _, c := range grid.All() {
		cv := cellVertexID(c.Cell)
		if _, err := s.rollup.GetEdge(cv, target); err != nil {
			continue
		}
		t := s.Totals(c.Cell, disease)
		out.Hospitalization += t.Hospitalization
		out.ICU += t.ICU
		out.Ventilator += t.Ventilator
		out.Death += t.Death
	}
	return out
}

// SchoolTotals sums every community with at least one resident enrolled in
// one school, for one disease, via the same community->school rollup edges
// BuildRollupGraph registers, mirroring NeighborhoodTotals (§2's "school...
// breakdowns").
func (s *StatsEngine) SchoolTotals(grid *CommunityGrid, schoolID, disease int) CommunityTotals {
	var out CommunityTotals
	if !s.built {
		return out
	}
	target := schoolVertexID(schoolID)
	for _, c := range grid.All() {
		cv := cellVertexID(c.Cell)
		if _, err := s.rollup.GetEdge(cv, target); err != nil {
			continue
		}
		t := s.Totals(c.Cell, disease)
		out.Hospitalization += t.Hospitalization
		out.ICU += t.ICU
		out.Ventilator += t.Ventilator
		out.Death += t.Death
	}
	return out
}

// CellCensus returns, for one cell, the count of live agents in each
// Status for one disease — a plain snapshot read, not something the
// rollup graph is involved in.
func CellCensus(store *AgentStore, cell CellKey, disease int) map[Status]int {
	out := make(map[Status]int)
	for i := 0; i < store.N; i++ {
		if store.IsDead(i) || store.CellI[i] != cell.I || store.CellJ[i] != cell.J {
			continue
		}
		out[store.Status[disease][i]]++
	}
	return out
}

// AgeCensus buckets one cell's live-agent count by (AgeGroup, Status) for
// one disease, the age-breakdown half of §2's "school/age breakdowns" that
// CellCensus's Status-only grouping doesn't cover.
func AgeCensus(store *AgentStore, cell CellKey, disease int) map[AgeGroup]map[Status]int {
	out := make(map[AgeGroup]map[Status]int)
	for i := 0; i < store.N; i++ {
		if store.IsDead(i) || store.CellI[i] != cell.I || store.CellJ[i] != cell.J {
			continue
		}
		age := store.AgeGroup[i]
		byStatus, ok := out[age]
		if !ok {
			byStatus = make(map[Status]int)
			out[age] = byStatus
		}
		byStatus[store.Status[disease][i]]++
	}
	return out
}

// SchoolAgeCensus buckets one school's enrolled live agents by (AgeGroup,
// Status) for one disease, walking the agent roster directly rather than
// the rollup graph (school membership is a per-agent attribute, not a
// per-cell one: a cell's community may hold residents enrolled in several
// different schools via SchoolID, so a cell->school edge alone can't answer
// "who in this school is infected").
func SchoolAgeCensus(store *AgentStore, schoolID, disease int) map[AgeGroup]map[Status]int {
	out := make(map[AgeGroup]map[Status]int)
	for i := 0; i < store.N; i++ {
		if store.IsDead(i) || store.SchoolID[i] != schoolID {
			continue
		}
		age := store.AgeGroup[i]
		byStatus, ok := out[age]
		if !ok {
			byStatus = make(map[Status]int)
			out[age] = byStatus
		}
		byStatus[store.Status[disease][i]]++
	}
	return out
}
