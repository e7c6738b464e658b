package geo

import (
	"math"

	"crowdshield/pkg/datastructure"
)

//	φ1,λ1 is the start point, φ2,λ2 the end point
//	 	φ is latitude, λ is longitude
//
// https://www.movable-type.co.uk/scripts/latlong.html
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	p1LatRad := degToRad(lat1)
	p2LatRad := degToRad(lat2)

	diffLon := degToRad(lon2 - lon1)

	y := math.Sin(diffLon) * math.Cos(p2LatRad)
	x := math.Cos(p1LatRad)*math.Sin(p2LatRad) - math.Sin(p1LatRad)*math.Cos(p2LatRad)*math.Cos(diffLon)
	theta := math.Atan2(y, x)

	bearing := math.Mod((theta*180/math.Pi)+360, 360)
	return bearing
}

// MidPoint returns the spherical midpoint between two coordinates.
//
// https://www.movable-type.co.uk/scripts/latlong.html
func MidPoint(lat1, lon1 float64, lat2, lon2 float64) (float64, float64) {
	p1LatRad := degToRad(lat1)
	p2LatRad := degToRad(lat2)

	diffLon := degToRad(lon2 - lon1)

	bx := math.Cos(p2LatRad) * math.Cos(diffLon)
	by := math.Cos(p2LatRad) * math.Sin(diffLon)

	newLon := degToRad(lon1) + math.Atan2(by, math.Cos(p1LatRad)+bx)
	newLat := math.Atan2(math.Sin(p1LatRad)+math.Sin(p2LatRad), math.Sqrt((math.Cos(p1LatRad)+bx)*(math.Cos(p1LatRad)+bx)+by*by))

	return radToDeg(newLat), radToDeg(newLon)
}

// ArithmeticMidpoint is the plain mean of latitudes and longitudes. Good
// enough for hazard tests at demo scale; not valid near the poles or the
// antimeridian.
func ArithmeticMidpoint(a, b datastructure.Coordinate) datastructure.Coordinate {
	return datastructure.NewCoordinate((a.Lat+b.Lat)/2.0, (a.Lon+b.Lon)/2.0)
}

// Centroid is the arithmetic mean of a polyline's points.
func Centroid(points []datastructure.Coordinate) (datastructure.Coordinate, bool) {
	if len(points) == 0 {
		return datastructure.Coordinate{}, false
	}
	var latSum, lonSum float64
	for _, p := range points {
		latSum += p.Lat
		lonSum += p.Lon
	}
	n := float64(len(points))
	return datastructure.NewCoordinate(latSum/n, lonSum/n), true
}
