package graph

import (
	"math"

	"crowdshield/pkg/datastructure"
	"crowdshield/pkg/geo"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

var tol = 0.0001

type hazardRect struct {
	rect   rtreego.Rect
	hazard *datastructure.HazardArea
}

func (h *hazardRect) Bounds() rtreego.Rect {
	return h.rect
}

// Prune returns a copy of g with every edge removed whose representative
// point falls inside a hazard polygon, plus the removed-edge count. The input
// graph is never mutated. Any failure for a specific edge leaves that edge in
// place: a usable edge beats a silently disconnected graph.
func Prune(g datastructure.Graph, hazards []datastructure.HazardArea) (datastructure.Graph, int) {
	if g == nil {
		return g, 0
	}

	tree := indexHazards(hazards)
	if tree == nil {
		return g, 0
	}

	builder := datastructure.NewGraphBuilder(g.Source())
	for _, id := range g.NodeIDs() {
		c, ok := g.NodeCoordinate(id)
		if !ok {
			c = datastructure.Coordinate{}
		}
		builder.AddNode(c)
	}

	blocked := 0
	for _, e := range g.Edges() {
		rep, ok := representativePoint(g, e)
		if !ok {
			builder.AddEdge(e.From, e.To, e.WeightKm, e.Geometry)
			continue
		}
		if insideAnyHazard(tree, rep) {
			blocked++
			continue
		}
		builder.AddEdge(e.From, e.To, e.WeightKm, e.Geometry)
	}

	return builder.Build(), blocked
}

// indexHazards builds an R-tree over hazard bounding boxes so each edge only
// tests polygons whose bbox covers its representative point. Malformed
// hazards are skipped individually. Returns nil when nothing is indexable.
func indexHazards(hazards []datastructure.HazardArea) *rtreego.Rtree {
	tree := rtreego.NewTree(2, 25, 50)
	indexed := 0
	for i := range hazards {
		if !hazards[i].Valid() {
			continue
		}
		b := hazards[i].Polygon.Bound()
		lengths := []float64{
			math.Max(b.Max[0]-b.Min[0], tol),
			math.Max(b.Max[1]-b.Min[1], tol),
		}
		rect, err := rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, lengths)
		if err != nil {
			continue
		}
		tree.Insert(&hazardRect{rect: rect, hazard: &hazards[i]})
		indexed++
	}
	if indexed == 0 {
		return nil
	}
	return tree
}

func representativePoint(g datastructure.Graph, e datastructure.Edge) (datastructure.Coordinate, bool) {
	if len(e.Geometry) > 0 {
		return geo.Centroid(e.Geometry)
	}
	from, okFrom := g.NodeCoordinate(e.From)
	to, okTo := g.NodeCoordinate(e.To)
	if !okFrom || !okTo {
		return datastructure.Coordinate{}, false
	}
	return geo.ArithmeticMidpoint(from, to), true
}

// insideAnyHazard short-circuits on the first containing polygon; hazard
// identity is not reported.
func insideAnyHazard(tree *rtreego.Rtree, c datastructure.Coordinate) bool {
	probe := rtreego.Point{c.Lon, c.Lat}.ToRect(tol)
	pt := orb.Point{c.Lon, c.Lat}
	for _, spatial := range tree.SearchIntersect(probe) {
		hr, ok := spatial.(*hazardRect)
		if !ok {
			continue
		}
		if planar.PolygonContains(hr.hazard.Polygon, pt) {
			return true
		}
	}
	return false
}
