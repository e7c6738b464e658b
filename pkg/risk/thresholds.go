package risk

// Band holds the low/medium/high boundaries for one signal.
type Band struct {
	Low    float64 `json:"low"`
	Medium float64 `json:"medium"`
	High   float64 `json:"high"`
}

// Thresholds configures every scorer bucket boundary. Zero-valued bands are
// replaced with defaults by Normalize, so a partial override keeps the rest.
type Thresholds struct {
	RainfallMM        Band `json:"rainfall_mm"`
	WindKph           Band `json:"wind_kph"`
	CrowdDensityPerM2 Band `json:"crowd_density_per_m2"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		RainfallMM:        Band{Low: 10, Medium: 25, High: 50},
		WindKph:           Band{Low: 20, Medium: 40, High: 80},
		CrowdDensityPerM2: Band{Low: 0.5, Medium: 2, High: 4},
	}
}

func (b Band) isZero() bool {
	return b.Low == 0 && b.Medium == 0 && b.High == 0
}

// Normalize fills unset bands with defaults.
func (t Thresholds) Normalize() Thresholds {
	def := DefaultThresholds()
	if t.RainfallMM.isZero() {
		t.RainfallMM = def.RainfallMM
	}
	if t.WindKph.isZero() {
		t.WindKph = def.WindKph
	}
	if t.CrowdDensityPerM2.isZero() {
		t.CrowdDensityPerM2 = def.CrowdDensityPerM2
	}
	return t
}
