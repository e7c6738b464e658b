package gps

import (
	"crowdshield/pkg/datastructure"

	"golang.org/x/exp/rand"
)

// Waypoints are the legacy demo origin points around Kochi.
var Waypoints = []datastructure.Coordinate{
	{Lat: 9.931233, Lon: 76.267304},
	{Lat: 9.932000, Lon: 76.268000},
	{Lat: 9.930500, Lon: 76.265500},
}

// StateWaypoints map supported states to an approximate central point.
var StateWaypoints = map[string]datastructure.Coordinate{
	"Kerala":        {Lat: 10.1632, Lon: 76.6413},
	"Tamil Nadu":    {Lat: 11.1271, Lon: 78.6569},
	"Karnataka":     {Lat: 15.3173, Lon: 75.7139},
	"Maharashtra":   {Lat: 19.7515, Lon: 75.7139},
	"Uttar Pradesh": {Lat: 26.8467, Lon: 80.9462},
	"Delhi":         {Lat: 28.6139, Lon: 77.2090},
	"West Bengal":   {Lat: 22.9868, Lon: 87.8550},
	"Rajasthan":     {Lat: 27.0238, Lon: 74.2179},
}

func MockLocation(index int) datastructure.Coordinate {
	if index < 0 {
		index = -index
	}
	return Waypoints[index%len(Waypoints)]
}

// MockLocationForState falls back to the first legacy waypoint for unknown
// states so the rest of the pipeline keeps working.
func MockLocationForState(state string) datastructure.Coordinate {
	if c, ok := StateWaypoints[state]; ok {
		return c
	}
	return Waypoints[0]
}

// Simulator produces jittered live locations around a state's center point.
// Deterministic per seed.
type Simulator struct {
	rng *rand.Rand
}

func NewSimulator(seed uint64) *Simulator {
	return &Simulator{rng: rand.New(rand.NewSource(seed))}
}

const metersPerDegree = 111320.0

func (s *Simulator) LiveLocation(state string, jitterMeters float64) datastructure.Coordinate {
	base := MockLocationForState(state)
	if jitterMeters <= 0 {
		return base
	}
	jitterDeg := jitterMeters / metersPerDegree
	return datastructure.NewCoordinate(
		base.Lat+(s.rng.Float64()*2-1)*jitterDeg,
		base.Lon+(s.rng.Float64()*2-1)*jitterDeg,
	)
}
