package routing

import (
	"math"

	"crowdshield/pkg/datastructure"
	"crowdshield/pkg/geo"
	"crowdshield/pkg/graph"
)

type Mode string

const (
	ModeShortest Mode = "shortest"
	// ModeFastest is currently identical to ModeShortest: no travel-time
	// weight model exists yet, and the simplification is deliberate.
	ModeFastest Mode = "fastest"
	ModeSafest  Mode = "safest"
)

const straightLineSteps = 30

// Planner computes a route between two coordinates over a graph. It is
// total: every failure point degrades through a named strategy chain that
// ends in straight-line interpolation, so Route always returns >= 2 points.
type Planner struct{}

func NewPlanner() *Planner {
	return &Planner{}
}

func (p *Planner) Route(g datastructure.Graph, origin, target datastructure.Coordinate,
	mode Mode, hazards []datastructure.HazardArea) datastructure.PlannedRoute {

	if g == nil || g.NodeCount() == 0 {
		return straightLineRoute(origin, target, 0)
	}

	working := g
	strategy := datastructure.StrategyGraphShortestPath
	blocked := 0

	if mode == ModeSafest {
		working, blocked = graph.Prune(g, hazards)
		strategy = datastructure.StrategyHazardPruned
	}

	route, ok := p.routeOnGraph(working, origin, target, strategy, blocked)
	if ok {
		return route
	}

	// a pruned graph may have disconnected the pair; the unpruned graph is
	// still safer than a blind straight line through the hazard set
	if mode == ModeSafest && blocked > 0 {
		route, ok = p.routeOnGraph(g, origin, target, datastructure.StrategyUnprunedRetry, blocked)
		if ok {
			return route
		}
	}

	return straightLineRoute(origin, target, blocked)
}

func (p *Planner) routeOnGraph(g datastructure.Graph, origin, target datastructure.Coordinate,
	strategy datastructure.RouteStrategy, blocked int) (datastructure.PlannedRoute, bool) {

	src, okSrc := nearestNode(g, origin)
	dst, okDst := nearestNode(g, target)
	if !okSrc || !okDst {
		return datastructure.PlannedRoute{}, false
	}

	path, distKm, found := shortestPath(g, src, dst)
	if !found || len(path) < 2 {
		return datastructure.PlannedRoute{}, false
	}

	points := make([]datastructure.Coordinate, 0, len(path))
	for _, id := range path {
		c, ok := g.NodeCoordinate(id)
		if !ok {
			return datastructure.PlannedRoute{}, false
		}
		points = append(points, c)
	}

	return datastructure.PlannedRoute{
		Points:       points,
		Strategy:     strategy,
		DistanceKm:   distKm,
		BlockedEdges: blocked,
	}, true
}

// nearestNode scans every node for the smallest haversine distance to the
// query point. O(|V|) per query; fine at demo scale, a production system
// should use a spatial index.
func nearestNode(g datastructure.Graph, query datastructure.Coordinate) (int32, bool) {
	best := int32(-1)
	bestDist := math.Inf(1)
	for _, id := range g.NodeIDs() {
		c, ok := g.NodeCoordinate(id)
		if !ok {
			continue
		}
		d := geo.HaversineDistance(query, c)
		if d < bestDist {
			bestDist = d
			best = id
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// straightLineRoute interpolates origin->target in straightLineSteps steps
// (steps+1 points). The unconditional last resort: it cannot fail for
// well-formed coordinates.
func straightLineRoute(origin, target datastructure.Coordinate, blocked int) datastructure.PlannedRoute {
	points := make([]datastructure.Coordinate, 0, straightLineSteps+1)
	for i := 0; i <= straightLineSteps; i++ {
		f := float64(i) / float64(straightLineSteps)
		points = append(points, datastructure.NewCoordinate(
			origin.Lat+(target.Lat-origin.Lat)*f,
			origin.Lon+(target.Lon-origin.Lon)*f,
		))
	}
	return datastructure.PlannedRoute{
		Points:       points,
		Strategy:     datastructure.StrategyStraightLine,
		DistanceKm:   geo.HaversineDistance(origin, target),
		BlockedEdges: blocked,
	}
}
