package report

import "planillas/app/histogram"

// AgeTable maps an age bracket label to the bracket midpoint in years
type AgeTable map[string]float64

// DefaultAgeTable covers the brackets published in the payroll datasets
var DefaultAgeTable = AgeTable{
	"18 a 30": 24,
	"30 a 50": 40,
	"50 a 65": 57.5,
	"65 a 85": 75,
}

// Thresholds parameterize cohort, anomaly and ranking rules
type Thresholds struct {
	YoungAge      float64 `yaml:"young_age"`       // young cohort: 0 < age < YoungAge
	SeniorAge     float64 `yaml:"senior_age"`      // senior cohort: age > SeniorAge
	ElitePay      float64 `yaml:"elite_pay"`       // elite cohort: pay > ElitePay
	BasePay       float64 `yaml:"base_pay"`        // base cohort: 0 < pay < BasePay
	MinAge        float64 `yaml:"min_age"`         // known ages below are anomalies
	MaxAge        float64 `yaml:"max_age"`         // known ages above are anomalies
	RaiseMinEntry float64 `yaml:"raise_min_entry"` // entry pay must exceed this for a raise
	RaiseMaxPct   float64 `yaml:"raise_max_pct"`   // raises at or above are data errors
	NetRatio      float64 `yaml:"net_ratio"`       // estimated net / gross
	MinOrgRows    int     `yaml:"min_org_rows"`    // per-capita and average rankings
	SpreadOrgRows int     `yaml:"spread_org_rows"` // dispersion and ratio rankings
	RatioMinPay   float64 `yaml:"ratio_min_pay"`
}

// DefaultThresholds returns the thresholds of the statistics dashboard
func DefaultThresholds() Thresholds {
	return Thresholds{
		YoungAge:      30,
		SeniorAge:     60,
		ElitePay:      4_000_000,
		BasePay:       700_000,
		MinAge:        18,
		MaxAge:        85,
		RaiseMinEntry: 500_000,
		RaiseMaxPct:   1000,
		NetRatio:      0.78,
		MinOrgRows:    5,
		SpreadOrgRows: 10,
		RatioMinPay:   100_000,
	}
}

// Config drives accumulation and report building
type Config struct {
	Ages           AgeTable
	Thresholds     Thresholds
	PayBreakpoints []float64
	MaxBuckets     int
}

// DefaultConfig returns the default age table, thresholds and pay bands
func DefaultConfig() Config {
	return Config{
		Ages:           DefaultAgeTable,
		Thresholds:     DefaultThresholds(),
		PayBreakpoints: histogram.PayBreakpoints,
		MaxBuckets:     histogram.DefaultMaxBuckets,
	}
}
