package datastructure

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

// IsZero reports whether c is the zero value. Callers treat a zero center as
// "use the default reference point".
func (c Coordinate) IsZero() bool {
	return c.Lat == 0 && c.Lon == 0
}

// RouteStrategy names the strategy that actually produced a route. Callers
// branch on the tag instead of catching errors.
type RouteStrategy string

const (
	StrategyGraphShortestPath RouteStrategy = "graph shortest path"
	StrategyHazardPruned      RouteStrategy = "hazard-pruned shortest path"
	StrategyUnprunedRetry     RouteStrategy = "unpruned-graph retry"
	StrategyStraightLine      RouteStrategy = "straight-line fallback"
)

// PlannedRoute is the immutable output of the path planner. Points always has
// length >= 2; the first element is the origin (or the nearest snapped node)
// and the last is the target.
type PlannedRoute struct {
	Points       []Coordinate  `json:"route"`
	Strategy     RouteStrategy `json:"strategy"`
	DistanceKm   float64       `json:"distance_km"`
	BlockedEdges int           `json:"blocked_edges"`
}
