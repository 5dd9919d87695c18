package epidemic

// Community is one grid cell, the atomic spatial unit of interaction (§3,
// GLOSSARY). Occupancy and the reporting identifiers are populated by the
// external loader (§6); the engine itself only reads them.
type Community struct {
	Cell CellKey

	Occupancy [numAgeGroups]int // number of residents by age group
	UnitID    int
	FIPS      int
	Tract     string

	// Index assigned by Geometry.RegisterCommunity; cached here for
	// convenience so callers don't need to round-trip through Geometry.
	Index int
}

// CommunityGrid is the per-cell auxiliary data the external loader (§6) is
// contracted to populate: unit, FIPS, community index, and resident counts.
type CommunityGrid struct {
	geom       *Geometry
	communities map[CellKey]*Community
}

// NewCommunityGrid creates an empty grid over the given Geometry.
func NewCommunityGrid(geom *Geometry) *CommunityGrid {
	return &CommunityGrid{geom: geom, communities: make(map[CellKey]*Community)}
}

// Set registers (or replaces) the auxiliary record for a cell, assigning it
// a dense community index via Geometry if this is the first time the cell
// is seen.
func (g *CommunityGrid) Set(c Community) {
	c.Index = g.geom.RegisterCommunity(c.Cell.I, c.Cell.J)
	g.communities[c.Cell] = &c
}

// Get returns the auxiliary record for a cell, or nil if it was never set.
func (g *CommunityGrid) Get(i, j int) *Community {
	return g.communities[CellKey{i, j}]
}

// All returns every registered community, for StatsEngine census passes.
func (g *CommunityGrid) All() []*Community {
	out := make([]*Community, 0, len(g.communities))
	for _, c := range g.communities {
		out = append(out, c)
	}
	return out
}
