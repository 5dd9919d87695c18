package epidemic

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Airport is one node of the air-travel network (§4.2, §6): a boarding
// point located at a grid cell, grouped under a reporting unit.
type Airport struct {
	ID      int64
	Unit    int
	CellI   int
	CellJ   int
}

// cdfEntry is one destination's slot in an origin airport's cumulative
// distribution: agents departing that origin land on this destination if
// their draw falls in [low, high).
type cdfEntry struct {
	destID   int64
	low, high float64
}

// AirTravelNetwork holds the directed, probability-weighted airport graph
// described in §4.2/§6, grounded on original_source/src/AgentContainer.H's
// air-travel tables and built on gonum.org/v1/gonum/graph/simple the way the
// Harrizontal dispatchserver teacher builds its road network over a graph
// library in dispatchsim/roadnetwork2.go.
type AirTravelNetwork struct {
	g         *simple.WeightedDirectedGraph
	airports  map[int64]Airport
	cdf       map[int64][]cdfEntry
	finalized bool
}

// NewAirTravelNetwork builds an empty network.
func NewAirTravelNetwork() *AirTravelNetwork {
	return &AirTravelNetwork{
		g:        simple.NewWeightedDirectedGraph(0, 0),
		airports: make(map[int64]Airport),
		cdf:      make(map[int64][]cdfEntry),
	}
}

// AddAirport registers an airport node.
func (n *AirTravelNetwork) AddAirport(a Airport) {
	n.airports[a.ID] = a
	n.g.AddNode(simple.Node(a.ID))
	n.finalized = false
}

// AddRoute adds a directed, probability-weighted edge from one airport to
// another. prob is the unnormalized likelihood mass of that destination
// relative to every other route out of from; Finalize turns it into a CDF.
func (n *AirTravelNetwork) AddRoute(from, to int64, prob float64) {
	if prob <= 0 {
		return
	}
	n.g.SetWeightedEdge(n.g.NewWeightedEdge(simple.Node(from), simple.Node(to), prob))
	n.finalized = false
}

// Finalize builds, for every origin with outbound routes, a cumulative
// distribution table ordered by destination id, so SampleDestination can
// walk it. Must be called after the last AddRoute and before any
// SampleDestination.
func (n *AirTravelNetwork) Finalize() {
	n.cdf = make(map[int64][]cdfEntry)
	nodes := n.g.Nodes()
	for nodes.Next() {
		from := nodes.Node().ID()
		out := n.g.From(from)
		var dests []int64
		var total float64
		for out.Next() {
			to := out.Node().ID()
			w, _ := n.g.Weight(from, to)
			dests = append(dests, to)
			total += w
		}
		if len(dests) == 0 {
			continue
		}
		sort.Slice(dests, func(a, b int) bool { return dests[a] < dests[b] })
		entries := make([]cdfEntry, 0, len(dests))
		cum := 0.0
		for _, to := range dests {
			w, _ := n.g.Weight(from, to)
			low := cum
			cum += w / total
			entries = append(entries, cdfEntry{destID: to, low: low, high: cum})
		}
		entries[len(entries)-1].high = 1.0 // absorb floating point drift
		n.cdf[from] = entries
	}
	n.finalized = true
}

// linearScanThreshold is the entry count above which SampleDestination
// switches from a linear scan to a binary search, per §4.2/§6.
const linearScanThreshold = 16

// SampleDestination draws a destination airport for a traveler departing
// origin, given a uniform draw u in [0,1). It returns false if origin has no
// outbound routes.
//
// Deviation from original_source/src/AgentContainer.cpp: the reference CDF
// walk advances its running lower bound with the candidate destination's
// airport id (`lowProb = dest_airports_ptr[idx]`) instead of the entry's own
// cumulative probability, so the walk's bracket test compares u against an
// airport id rather than a probability once idx > 0. That shortens effective
// range for every destination but the first to whatever is left after
// subtracting an id-sized "probability", silently skewing the distribution
// toward early destinations. This implementation instead carries the
// previous entry's cumulative probability forward as the low bound, which is
// what the CDF construction above actually produces.
func (n *AirTravelNetwork) SampleDestination(origin int64, u float64) (int64, bool) {
	entries := n.cdf[origin]
	if len(entries) == 0 {
		return 0, false
	}

	if len(entries) <= linearScanThreshold {
		for _, e := range entries {
			if u >= e.low && u < e.high {
				return e.destID, true
			}
		}
		return entries[len(entries)-1].destID, true
	}

	idx := sort.Search(len(entries), func(i int) bool { return u < entries[i].high })
	if idx == len(entries) {
		idx = len(entries) - 1
	}
	return entries[idx].destID, true
}

// Airport looks up a registered airport by id.
func (n *AirTravelNetwork) Airport(id int64) (Airport, bool) {
	a, ok := n.airports[id]
	return a, ok
}

// Graph exposes the underlying weighted directed graph for callers that
// need general graph algorithms (e.g. reachability) over the air-travel
// network.
func (n *AirTravelNetwork) Graph() graph.Weighted {
	return n.g
}
