package epidemic

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/quadtree"
)

// Geometry maps between grid cells (i,j) and (longitude, latitude), and
// answers community-index lookup queries. It is grounded on
// original_source/src/AgentContainer.H's LngLatToGrid/GridToLngLat pair,
// generalized from the teacher's (Harrizontal dispatchserver)
// isPointInside/orb.Polygon usage in dispatchsim/environment.go.
type Geometry struct {
	MinLng, MinLat         float64
	SpacingX, SpacingY     float64
	CellsI, CellsJ         int
	communityIndex         map[CellKey]int // dense sequential index per occupied cell
	quad                   *quadtree.Quadtree
	shelterZones           []orb.Polygon
}

// NewGeometry builds a Geometry over a CellsI x CellsJ domain anchored at
// (minLng, minLat) with the given per-cell spacing in degrees.
func NewGeometry(minLng, minLat, spacingX, spacingY float64, cellsI, cellsJ int) *Geometry {
	bound := orb.Bound{
		Min: orb.Point{minLng, minLat},
		Max: orb.Point{minLng + spacingX*float64(cellsI), minLat + spacingY*float64(cellsJ)},
	}
	return &Geometry{
		MinLng: minLng, MinLat: minLat,
		SpacingX: spacingX, SpacingY: spacingY,
		CellsI: cellsI, CellsJ: cellsJ,
		communityIndex: make(map[CellKey]int),
		quad:           quadtree.New(bound),
	}
}

// CellCenterLngLat returns the (lng,lat) of the center of cell (i,j), the
// point used for the community quadtree and shelter-zone membership tests.
func (g *Geometry) CellCenterLngLat(i, j int) orb.Point {
	lng := (float64(i)+0.5)*g.SpacingX + g.MinLng
	lat := (float64(j)+0.5)*g.SpacingY + g.MinLat
	return orb.Point{lng, lat}
}

// LngLatToCell converts a (lng,lat) point to the grid cell containing it,
// the inverse used when loaders supply UrbanPop block-group coordinates.
func (g *Geometry) LngLatToCell(p orb.Point) (int, int) {
	i := int((p[0] - g.MinLng) / g.SpacingX)
	j := int((p[1] - g.MinLat) / g.SpacingY)
	return i, j
}

// InDomain reports whether cell (i,j) lies within the partitioned grid
// (I7). MovementEngine panics when it would place an agent at a cell for
// which this is false, the fatal programming error §4.1 describes.
func (g *Geometry) InDomain(i, j int) bool {
	return i >= 0 && i < g.CellsI && j >= 0 && j < g.CellsJ
}

// RegisterCommunity assigns cell (i,j) a dense sequential community index on
// first use, and indexes its center in the quadtree for nearest-community
// lookups. Index assignment order must be deterministic for fast=false runs,
// so callers should register cells in a fixed (e.g. row-major) order at
// load time.
func (g *Geometry) RegisterCommunity(i, j int) int {
	key := CellKey{i, j}
	if idx, ok := g.communityIndex[key]; ok {
		return idx
	}
	idx := len(g.communityIndex)
	g.communityIndex[key] = idx
	g.quad.Add(keyedPoint{g.CellCenterLngLat(i, j), key})
	return idx
}

// CommunityIndex returns the dense index assigned to cell (i,j), or -1 if
// it was never registered (an empty cell with no residents).
func (g *Geometry) CommunityIndex(i, j int) int {
	if idx, ok := g.communityIndex[CellKey{i, j}]; ok {
		return idx
	}
	return -1
}

// NumCommunities returns how many distinct cells have been registered.
func (g *Geometry) NumCommunities() int {
	return len(g.communityIndex)
}

// NearestCommunity returns the cell whose registered center is nearest the
// given point, used by UrbanPop-style loaders to snap raw coordinates onto
// the community grid.
func (g *Geometry) NearestCommunity(p orb.Point) (CellKey, bool) {
	found := g.quad.Find(p)
	if found == nil {
		return CellKey{}, false
	}
	return found.(keyedPoint).key, true
}

// keyedPoint implements orb's quadtree.Pointer so CellKey can ride along
// with the point used for nearest-neighbor queries.
type keyedPoint struct {
	point orb.Point
	key   CellKey
}

func (k keyedPoint) Point() orb.Point { return k.point }

// AddShelterZone registers a polygon (lng/lat ring), e.g. a county
// boundary, inside which a shelter-in-place order applies; once any zone is
// registered, agents outside every zone are not withdrawn by ShelterStart. Membership is tested with
// planar.PolygonContains, following the teacher's isPointInside helper in
// dispatchsim/environment.go.
func (g *Geometry) AddShelterZone(zone orb.Polygon) {
	g.shelterZones = append(g.shelterZones, zone)
}

// InShelterZone reports whether (i,j)'s cell center falls in any
// registered shelter zone. With no zones registered, every cell is
// considered in-zone (shelter orders are domain-wide by default).
func (g *Geometry) InShelterZone(i, j int) bool {
	if len(g.shelterZones) == 0 {
		return true
	}
	p := g.CellCenterLngLat(i, j)
	for _, z := range g.shelterZones {
		if planar.PolygonContains(z, p) {
			return true
		}
	}
	return false
}
