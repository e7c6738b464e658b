package geo

import (
	"math"

	"crowdshield/pkg/datastructure"

	"github.com/golang/geo/s2"
)

// PolygonAreaM2 returns the spherical area of a simple polygon ring in square
// meters. A closing point equal to the first is ignored. Returns 0 for
// degenerate rings.
func PolygonAreaM2(ring []datastructure.Coordinate) float64 {
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	if len(ring) < 3 {
		return 0
	}

	pts := make([]s2.Point, 0, len(ring))
	for _, c := range ring {
		pts = append(pts, s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon)))
	}

	loop := s2.LoopFromPoints(pts)
	area := loop.Area()
	// a clockwise ring describes the complement of the intended region
	if area > 2*math.Pi {
		area = 4*math.Pi - area
	}
	return area * earthRadiusM * earthRadiusM
}
