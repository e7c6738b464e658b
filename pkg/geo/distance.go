package geo

import (
	"math"

	"crowdshield/pkg/datastructure"
)

const (
	earthRadiusKM = 6371.0
	earthRadiusM  = 6371000.0
)

func degToRad(d float64) float64 {
	return d * math.Pi / 180.0
}

func radToDeg(r float64) float64 {
	return 180.0 * r / math.Pi
}

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

func havFormula(one, two datastructure.Coordinate) float64 {
	latDiff := degToRad(one.Lat) - degToRad(two.Lat)
	lonDiff := degToRad(one.Lon) - degToRad(two.Lon)

	havLatitude := havFunction(latDiff)
	havLongitude := havFunction(lonDiff)

	return havLatitude + math.Cos(degToRad(one.Lat))*math.Cos(degToRad(two.Lat))*havLongitude
}

func archaversine(havAngle float64) float64 {
	return 2.0 * math.Asin(math.Sqrt(havAngle))
}

// HaversineDistance returns the great-circle distance between two points in
// kilometers.
func HaversineDistance(one, two datastructure.Coordinate) float64 {
	centralAngleRad := archaversine(havFormula(one, two))
	return earthRadiusKM * centralAngleRad
}

// HaversineDistanceM returns the great-circle distance in meters.
func HaversineDistanceM(one, two datastructure.Coordinate) float64 {
	return HaversineDistance(one, two) * 1000.0
}
