package histogram

import "math"

// FromValues builds contiguous buckets covering every finite value. A
// bucketSize of 0 is chosen from the value span. The bucket count never
// exceeds maxBuckets: a span too wide for the size is covered by doubling
// the size.
func FromValues(values []float64, bucketSize float64, maxBuckets int) *Response {
	finite := values[:0:0]
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return &Response{Buckets: []Bucket{}}
	}
	if maxBuckets <= 0 {
		maxBuckets = DefaultMaxBuckets
	}
	// a span crossing zero needs two buckets however wide they are
	maxBuckets = max(maxBuckets, 2)

	lo, hi := finite[0], finite[0]
	for _, v := range finite[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if bucketSize <= 0 {
		bucketSize = ChooseBucketSizeForSpan(hi-lo, maxBuckets)
	}
	n := bucketCount(lo, hi, bucketSize)
	for n > maxBuckets {
		bucketSize *= 2
		n = bucketCount(lo, hi, bucketSize)
	}

	first := math.Floor(lo / bucketSize)
	buckets := make([]Bucket, n)
	for i := range buckets {
		buckets[i].Start = (first + float64(i)) * bucketSize
		buckets[i].End = buckets[i].Start + bucketSize
	}
	for _, v := range finite {
		i := int(math.Floor(v/bucketSize) - first)
		buckets[min(i, n-1)].Count++
	}

	return &Response{
		Buckets:    buckets,
		BucketSize: bucketSize,
		Min:        lo,
		Max:        hi,
		Count:      len(finite),
	}
}

func bucketCount(lo, hi, size float64) int {
	return int(math.Floor(hi/size)-math.Floor(lo/size)) + 1
}

// CountBands classifies each value into bands built from breaks
func CountBands(values []float64, breaks []float64) []Band {
	bands := NewBands(breaks)
	for _, v := range values {
		bands[Classify(v, breaks)].Count++
	}
	return bands
}
