package risk

import (
	"fmt"
	"math"

	"github.com/uber/h3-go/v4"
)

// CrowdPoint is a single crowd telemetry reading.
type CrowdPoint struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	People int     `json:"people"`
}

// CrowdTelemetry carries either raw telemetry points or a pre-aggregated
// total with a measured area. When points are given without an area, the
// occupied H3 cells estimate one.
type CrowdTelemetry struct {
	Points      []CrowdPoint `json:"points,omitempty"`
	TotalPeople int          `json:"total_people,omitempty"`
	AreaM2      float64      `json:"area_m2,omitempty"`
}

const (
	crowdCellResolution = 9
	// average hexagon area at res 9; close enough for density bucketing
	avgHexAreaM2Res9 = 105332.5

	defaultCrowdAreaM2 = 1000.0
)

// ScoreCrowd scores crowd density into [0,1]. Missing or empty input is not
// an error: it scores 0.0 with an explicit no-data driver.
func ScoreCrowd(t CrowdTelemetry, surgeOverride bool, th Thresholds, labels Labels) (float64, []string) {
	th = th.Normalize()

	total := t.TotalPeople
	if total == 0 {
		for _, p := range t.Points {
			total += p.People
		}
	}
	if total <= 0 && len(t.Points) == 0 {
		return 0.0, []string{labels.get("no_data", "No crowd data")}
	}

	area := t.AreaM2
	if area <= 0 && len(t.Points) > 0 {
		area = estimateAreaM2(t.Points)
	}
	if area <= 0 {
		area = defaultCrowdAreaM2
	}

	density := float64(total) / area

	drivers := []string{
		fmt.Sprintf("%s: %.2f ppl/m2", labels.get("density", "Density"), density),
		fmt.Sprintf("Total people: %d", total),
	}

	score := 0.0
	if surgeOverride || density >= th.CrowdDensityPerM2.High {
		score = 0.7
		drivers = append(drivers, labels.get("high_density", "High density"))
	} else if density >= th.CrowdDensityPerM2.Medium {
		score = 0.35
		drivers = append(drivers, labels.get("medium_density", "Moderate density"))
	} else {
		drivers = append(drivers, labels.get("low_density", "Low density"))
	}

	return math.Min(1.0, score), drivers
}

// estimateAreaM2 buckets telemetry points into H3 res-9 cells and multiplies
// the occupied-cell count by the average hex area.
func estimateAreaM2(points []CrowdPoint) float64 {
	cells := make(map[h3.Cell]struct{}, len(points))
	for _, p := range points {
		ll := h3.NewLatLng(p.Lat, p.Lon)
		cells[h3.LatLngToCell(ll, crowdCellResolution)] = struct{}{}
	}
	return float64(len(cells)) * avgHexAreaM2Res9
}
