package domain

// Trend is the per-cycle movement label of a name.
type Trend string

const (
	TrendNew     Trend = "new"
	TrendHot     Trend = "hot"
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStale   Trend = "stale"
)

func (t Trend) String() string {
	return string(t)
}
