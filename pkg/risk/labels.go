package risk

// Labels is an injectable label table so advisory text can be localized
// without touching tier logic. Missing keys fall back to English defaults.
type Labels map[string]string

func (l Labels) get(key, fallback string) string {
	if l == nil {
		return fallback
	}
	if v, ok := l[key]; ok {
		return v
	}
	return fallback
}

// SeverityTier is the ordered risk classification derived from fused scores.
type SeverityTier int

const (
	TierLow SeverityTier = iota
	TierMedium
	TierHigh
	TierCritical
)

func (t SeverityTier) String() string {
	switch t {
	case TierLow:
		return "Low"
	case TierMedium:
		return "Medium"
	case TierHigh:
		return "High"
	case TierCritical:
		return "Critical"
	}
	return "Unknown"
}

// LocalizedName resolves the tier label through the label table.
func (t SeverityTier) LocalizedName(labels Labels) string {
	switch t {
	case TierLow:
		return labels.get("low", "Low")
	case TierMedium:
		return labels.get("medium", "Medium")
	case TierHigh:
		return labels.get("high", "High")
	case TierCritical:
		return labels.get("critical", "Critical")
	}
	return t.String()
}
