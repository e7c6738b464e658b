package risk_test

import (
	"testing"

	"crowdshield/pkg/risk"

	"github.com/stretchr/testify/assert"
)

func TestScoreCrowd(t *testing.T) {
	defaults := risk.DefaultThresholds()

	t.Run("empty telemetry scores zero with a no-data driver", func(t *testing.T) {
		score, drivers := risk.ScoreCrowd(risk.CrowdTelemetry{}, false, defaults, nil)
		assert.Equal(t, 0.0, score)
		assert.Equal(t, []string{"No crowd data"}, drivers)
	})

	t.Run("pre-aggregated high density", func(t *testing.T) {
		telemetry := risk.CrowdTelemetry{TotalPeople: 5000, AreaM2: 1000}
		score, drivers := risk.ScoreCrowd(telemetry, false, defaults, nil)
		assert.Equal(t, 0.7, score)
		assert.Contains(t, drivers, "Density: 5.00 ppl/m2")
		assert.Contains(t, drivers, "Total people: 5000")
		assert.Contains(t, drivers, "High density")
	})

	t.Run("medium density", func(t *testing.T) {
		telemetry := risk.CrowdTelemetry{TotalPeople: 2500, AreaM2: 1000}
		score, drivers := risk.ScoreCrowd(telemetry, false, defaults, nil)
		assert.Equal(t, 0.35, score)
		assert.Contains(t, drivers, "Moderate density")
	})

	t.Run("surge override trumps a low measured density", func(t *testing.T) {
		telemetry := risk.CrowdTelemetry{TotalPeople: 10, AreaM2: 1000}
		score, _ := risk.ScoreCrowd(telemetry, true, defaults, nil)
		assert.Equal(t, 0.7, score)
	})

	t.Run("area estimated from telemetry points", func(t *testing.T) {
		// three readings inside one res-9 cell: estimated area is a single
		// hexagon, far larger than the headcount needs for any density band
		telemetry := risk.CrowdTelemetry{
			Points: []risk.CrowdPoint{
				{Lat: 9.9312, Lon: 76.2673, People: 100},
				{Lat: 9.9312, Lon: 76.2673, People: 100},
				{Lat: 9.9312, Lon: 76.2673, People: 100},
			},
		}
		score, drivers := risk.ScoreCrowd(telemetry, false, defaults, nil)
		assert.Equal(t, 0.0, score)
		assert.Contains(t, drivers, "Total people: 300")
		assert.Contains(t, drivers, "Low density")
	})

	t.Run("localized no-data driver", func(t *testing.T) {
		labels := risk.Labels{"no_data": "भीड़ डेटा नहीं"}
		_, drivers := risk.ScoreCrowd(risk.CrowdTelemetry{}, false, defaults, labels)
		assert.Equal(t, []string{"भीड़ डेटा नहीं"}, drivers)
	})
}
