package risk

import (
	"math"
	"time"
)

// crowd risk is discounted 10% relative to disaster risk: equal scores carry
// a lower fatality likelihood per incident on the crowd side
const crowdDiscount = 0.9

// Fuse combines the two independent scores into a severity tier and its
// ordered recommendation list. Monotonic in both inputs.
func Fuse(disasterScore, crowdScore float64, labels Labels) (SeverityTier, []string) {
	combined := math.Max(disasterScore, crowdScore*crowdDiscount)

	switch {
	case combined < 0.2:
		return TierLow, []string{
			labels.get("rec_monitor", "Monitor conditions"),
			labels.get("rec_updates", "Send updates to residents"),
		}
	case combined < 0.5:
		return TierMedium, []string{
			labels.get("rec_prepare", "Prepare shelters"),
			labels.get("rec_limit", "Advise limited movement"),
		}
	case combined < 0.8:
		return TierHigh, []string{
			labels.get("rec_evac", "Activate evacuation protocol"),
			labels.get("rec_vulnerable", "Prioritize vulnerable groups"),
		}
	default:
		return TierCritical, []string{
			labels.get("rec_immediate", "Immediate evacuation"),
			labels.get("rec_services", "Deploy emergency services"),
			labels.get("rec_broadcast", "Activate emergency broadcast"),
		}
	}
}

// Snapshot is one complete risk assessment. The engine keeps no history;
// retention is a presentation-layer concern.
type Snapshot struct {
	DisasterScore   float64      `json:"disaster_score"`
	CrowdScore      float64      `json:"crowd_score"`
	Tier            SeverityTier `json:"-"`
	TierName        string       `json:"tier"`
	Drivers         []string     `json:"drivers"`
	Recommendations []string     `json:"recommendations"`
	AssessedAt      time.Time    `json:"assessed_at"`
}

// Assess runs both scorers and the fusion in one pass.
func Assess(w Weather, floodOverride bool, crowd CrowdTelemetry, surgeOverride bool,
	t Thresholds, labels Labels) Snapshot {

	disasterScore, disasterDrivers := ScoreDisaster(w, floodOverride, t, labels)
	crowdScore, crowdDrivers := ScoreCrowd(crowd, surgeOverride, t, labels)
	tier, recommendations := Fuse(disasterScore, crowdScore, labels)

	drivers := make([]string, 0, len(disasterDrivers)+len(crowdDrivers))
	drivers = append(drivers, disasterDrivers...)
	drivers = append(drivers, crowdDrivers...)

	return Snapshot{
		DisasterScore:   disasterScore,
		CrowdScore:      crowdScore,
		Tier:            tier,
		TierName:        tier.LocalizedName(labels),
		Drivers:         drivers,
		Recommendations: recommendations,
		AssessedAt:      clock.Now().UTC(),
	}
}
