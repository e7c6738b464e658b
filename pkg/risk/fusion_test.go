package risk_test

import (
	"testing"
	"time"

	"crowdshield/pkg/risk"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestScoreDisaster(t *testing.T) {
	defaults := risk.DefaultThresholds()

	t.Run("severe rainfall and high winds saturate the score", func(t *testing.T) {
		score, drivers := risk.ScoreDisaster(risk.Weather{RainfallMM: 180, WindKph: 80}, false, defaults, nil)
		assert.Equal(t, 1.0, score)
		assert.Contains(t, drivers, "Disaster risk: Severe rainfall (180 mm)")
		assert.Contains(t, drivers, "High winds (80.0 kph)")
	})

	t.Run("calm weather scores zero with low drivers", func(t *testing.T) {
		score, drivers := risk.ScoreDisaster(risk.Weather{RainfallMM: 0.1, WindKph: 0.1}, false, defaults, nil)
		assert.Equal(t, 0.0, score)
		assert.Contains(t, drivers, "Low rainfall (0 mm)")
		assert.Contains(t, drivers, "Low winds (0.1 kph)")
	})

	t.Run("flood override forces the severe rainfall contribution", func(t *testing.T) {
		score, drivers := risk.ScoreDisaster(risk.Weather{RainfallMM: 0, WindKph: 0}, true, defaults, nil)
		assert.Equal(t, 0.6, score)
		assert.Contains(t, drivers, "Disaster risk: Severe rainfall (0 mm)")
	})

	t.Run("moderate bands contribute partial scores", func(t *testing.T) {
		score, _ := risk.ScoreDisaster(risk.Weather{RainfallMM: 30, WindKph: 50}, false, defaults, nil)
		assert.InDelta(t, 0.45, score, 1e-9)
	})

	t.Run("zero thresholds fall back to defaults", func(t *testing.T) {
		score, _ := risk.ScoreDisaster(risk.Weather{RainfallMM: 60, WindKph: 0}, false, risk.Thresholds{}, nil)
		assert.Equal(t, 0.6, score)
	})
}

func TestFuse(t *testing.T) {
	t.Run("tier boundaries", func(t *testing.T) {
		cases := []struct {
			disaster float64
			crowd    float64
			want     risk.SeverityTier
		}{
			{0.0, 0.0, risk.TierLow},
			{0.19, 0.0, risk.TierLow},
			{0.2, 0.0, risk.TierMedium},
			{0.49, 0.0, risk.TierMedium},
			{0.5, 0.0, risk.TierHigh},
			{0.79, 0.0, risk.TierHigh},
			{0.8, 0.0, risk.TierCritical},
			{1.0, 1.0, risk.TierCritical},
		}
		for _, c := range cases {
			tier, _ := risk.Fuse(c.disaster, c.crowd, nil)
			assert.Equal(t, c.want, tier, "disaster=%v crowd=%v", c.disaster, c.crowd)
		}
	})

	t.Run("crowd score is discounted against disaster score", func(t *testing.T) {
		// 0.9 * 0.9 = 0.81 crosses the critical boundary
		tier, recs := risk.Fuse(0.0, 0.9, nil)
		assert.Equal(t, risk.TierCritical, tier)
		assert.Contains(t, recs, "Immediate evacuation")

		// 0.85 * 0.9 = 0.765 stays high
		tier, _ = risk.Fuse(0.0, 0.85, nil)
		assert.Equal(t, risk.TierHigh, tier)
	})

	t.Run("monotonic in both inputs", func(t *testing.T) {
		for crowd := 0.0; crowd <= 1.0; crowd += 0.25 {
			prev := risk.TierLow
			for disaster := 0.0; disaster <= 1.0; disaster += 0.05 {
				tier, _ := risk.Fuse(disaster, crowd, nil)
				assert.GreaterOrEqual(t, tier, prev)
				prev = tier
			}
		}
	})

	t.Run("recommendation lists per tier", func(t *testing.T) {
		_, recs := risk.Fuse(0.1, 0.0, nil)
		assert.Equal(t, []string{"Monitor conditions", "Send updates to residents"}, recs)

		_, recs = risk.Fuse(0.3, 0.0, nil)
		assert.Equal(t, []string{"Prepare shelters", "Advise limited movement"}, recs)

		_, recs = risk.Fuse(0.6, 0.0, nil)
		assert.Equal(t, []string{"Activate evacuation protocol", "Prioritize vulnerable groups"}, recs)

		_, recs = risk.Fuse(0.9, 0.0, nil)
		assert.Equal(t, []string{"Immediate evacuation", "Deploy emergency services", "Activate emergency broadcast"}, recs)
	})

	t.Run("localized recommendations", func(t *testing.T) {
		labels := risk.Labels{"rec_monitor": "निगरानी रखें"}
		_, recs := risk.Fuse(0.0, 0.0, labels)
		assert.Equal(t, "निगरानी रखें", recs[0])
	})
}

func TestAssess(t *testing.T) {
	fixed := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	risk.SetClock(clockwork.NewFakeClockAt(fixed))
	defer risk.SetClock(nil)

	defaults := risk.DefaultThresholds()

	t.Run("combines scorer drivers and stamps the clock", func(t *testing.T) {
		snapshot := risk.Assess(risk.Weather{RainfallMM: 180, WindKph: 90}, false,
			risk.CrowdTelemetry{}, false, defaults, nil)

		assert.Equal(t, risk.TierCritical, snapshot.Tier)
		assert.Equal(t, "Critical", snapshot.TierName)
		assert.Equal(t, 1.0, snapshot.DisasterScore)
		assert.Equal(t, 0.0, snapshot.CrowdScore)
		assert.Contains(t, snapshot.Drivers, "No crowd data")
		assert.Equal(t, fixed, snapshot.AssessedAt)
	})

	t.Run("identical inputs produce identical snapshots", func(t *testing.T) {
		w := risk.Weather{RainfallMM: 30, WindKph: 45}
		crowd := risk.CrowdTelemetry{TotalPeople: 2500, AreaM2: 1000}

		first := risk.Assess(w, false, crowd, false, defaults, nil)
		second := risk.Assess(w, false, crowd, false, defaults, nil)
		assert.Equal(t, first, second)
	})
}
