package risk

import (
	"fmt"
	"math"
)

// Weather is the disaster signal consumed from the weather collaborator.
type Weather struct {
	RainfallMM float64 `json:"rainfall_mm"`
	WindKph    float64 `json:"wind_kph"`
}

// ScoreDisaster scores the weather signal into [0,1] with a driver string per
// contributing branch. A flood override forces the severe-rainfall
// contribution regardless of the measured value. Pure: identical inputs
// always yield identical output, and nothing here can fail.
func ScoreDisaster(w Weather, floodOverride bool, t Thresholds, labels Labels) (float64, []string) {
	t = t.Normalize()

	score := 0.0
	drivers := []string{}

	if w.RainfallMM >= t.RainfallMM.High || floodOverride {
		score += 0.6
		drivers = append(drivers, fmt.Sprintf("%s: Severe rainfall (%.0f mm)",
			labels.get("risk_disaster", "Disaster risk"), w.RainfallMM))
	} else if w.RainfallMM >= t.RainfallMM.Medium {
		score += 0.3
		drivers = append(drivers, fmt.Sprintf("Moderate rainfall (%.0f mm)", w.RainfallMM))
	} else {
		drivers = append(drivers, fmt.Sprintf("Low rainfall (%.0f mm)", w.RainfallMM))
	}

	if w.WindKph >= t.WindKph.High {
		score += 0.4
		drivers = append(drivers, fmt.Sprintf("High winds (%.1f kph)", w.WindKph))
	} else if w.WindKph >= t.WindKph.Medium {
		score += 0.15
		drivers = append(drivers, fmt.Sprintf("Moderate winds (%.1f kph)", w.WindKph))
	} else {
		drivers = append(drivers, fmt.Sprintf("Low winds (%.1f kph)", w.WindKph))
	}

	return math.Min(1.0, score), drivers
}
