package histogram

// Bucket is one fixed-width interval [Start, End) and its count
type Bucket struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Count int     `json:"count"`
}

// Response is an auto-sized histogram over a set of amounts
type Response struct {
	Buckets    []Bucket `json:"buckets"`
	BucketSize float64  `json:"bucketSize"`
	Min        float64  `json:"min"`
	Max        float64  `json:"max"`
	Count      int      `json:"count"`
}

// Band is one labelled interval of a fixed-breakpoint classification.
// Upper is exclusive; the last band is unbounded (Upper 0).
type Band struct {
	Label string  `json:"label"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}
