package datastructure

import (
	"github.com/paulmach/orb"
)

type GraphSource string

const (
	GraphSourceNetwork GraphSource = "network"
	GraphSourceGrid    GraphSource = "grid"
)

// Edge is an undirected weighted edge between two graph nodes. Geometry, when
// present, stores the polyline of the underlying way; most edges carry none
// and are represented by their endpoints only.
type Edge struct {
	From     int32
	To       int32
	WeightKm float64
	Geometry []Coordinate
}

// Graph is the single contract both network backends satisfy: every node
// resolves to a coordinate, every edge to a non-negative weight. Implemented
// as tagged variants behind one interface instead of branching on runtime
// type at call sites.
type Graph interface {
	Source() GraphSource
	NodeIDs() []int32
	NodeCoordinate(id int32) (Coordinate, bool)
	Neighbors(id int32) []Edge
	Edges() []Edge
	NodeCount() int
	EdgeCount() int
}

type adjacencyGraph struct {
	source GraphSource
	coords []Coordinate
	adj    [][]Edge
	edges  []Edge
}

func (g *adjacencyGraph) Source() GraphSource { return g.source }

func (g *adjacencyGraph) NodeIDs() []int32 {
	ids := make([]int32, len(g.coords))
	for i := range g.coords {
		ids[i] = int32(i)
	}
	return ids
}

func (g *adjacencyGraph) NodeCoordinate(id int32) (Coordinate, bool) {
	if id < 0 || int(id) >= len(g.coords) {
		return Coordinate{}, false
	}
	return g.coords[id], true
}

func (g *adjacencyGraph) Neighbors(id int32) []Edge {
	if id < 0 || int(id) >= len(g.adj) {
		return nil
	}
	return g.adj[id]
}

func (g *adjacencyGraph) Edges() []Edge { return g.edges }

func (g *adjacencyGraph) NodeCount() int { return len(g.coords) }

func (g *adjacencyGraph) EdgeCount() int { return len(g.edges) }

// GraphBuilder assembles an adjacency graph node by node. Each AddEdge stores
// the undirected edge once in the edge list and twice in the adjacency lists.
type GraphBuilder struct {
	g *adjacencyGraph
}

func NewGraphBuilder(source GraphSource) *GraphBuilder {
	return &GraphBuilder{g: &adjacencyGraph{source: source}}
}

func (b *GraphBuilder) AddNode(c Coordinate) int32 {
	b.g.coords = append(b.g.coords, c)
	b.g.adj = append(b.g.adj, nil)
	return int32(len(b.g.coords) - 1)
}

func (b *GraphBuilder) AddEdge(from, to int32, weightKm float64, geometry []Coordinate) {
	if from < 0 || to < 0 || int(from) >= len(b.g.coords) || int(to) >= len(b.g.coords) {
		return
	}
	if weightKm < 0 {
		weightKm = 0
	}
	e := Edge{From: from, To: to, WeightKm: weightKm, Geometry: geometry}
	b.g.edges = append(b.g.edges, e)
	b.g.adj[from] = append(b.g.adj[from], e)
	b.g.adj[to] = append(b.g.adj[to], Edge{From: to, To: from, WeightKm: weightKm, Geometry: geometry})
}

func (b *GraphBuilder) NodeCount() int { return len(b.g.coords) }

func (b *GraphBuilder) Build() Graph { return b.g }

// HazardArea is a polygonal danger zone supplied per request, in WGS84.
// The polygon follows orb's lon/lat point order.
type HazardArea struct {
	Name     string
	Severity string
	Polygon  orb.Polygon
}

// NewHazardArea builds a hazard polygon from an explicit lat/lon ring. The
// ring is closed if the caller did not close it. Fewer than 3 distinct points
// make the geometry invalid; callers skip those.
func NewHazardArea(name, severity string, ring []Coordinate) HazardArea {
	r := make(orb.Ring, 0, len(ring)+1)
	for _, c := range ring {
		r = append(r, orb.Point{c.Lon, c.Lat})
	}
	if len(r) > 0 && r[0] != r[len(r)-1] {
		r = append(r, r[0])
	}
	return HazardArea{Name: name, Severity: severity, Polygon: orb.Polygon{r}}
}

// Valid reports whether the hazard has a usable outer ring.
func (h HazardArea) Valid() bool {
	return len(h.Polygon) > 0 && len(h.Polygon[0]) >= 4
}
