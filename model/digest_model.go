package model

// Centroid summarizes Weight observations whose average is Mean.
type Centroid struct {
	Mean   float64 `json:"mean"`
	Weight float64 `json:"weight"`
}

// Summary carries the scalar statistics reported next to a digest.
// The mean is derived as Total / frame count.
type Summary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Total  float64 `json:"total"`
	StdDev float64 `json:"std_dev"`
}

type StatisticTag string

const (
	InterarrivalTag StatisticTag = "interarrival"
	LatencyTag      StatisticTag = "latency"
	JitterIPDVTag   StatisticTag = "jitter_ipdv"
	JitterRFCTag    StatisticTag = "jitter_rfc"
)

// AllStatisticTags lists the recognized tags in processing order.
var AllStatisticTags = []StatisticTag{InterarrivalTag, LatencyTag, JitterIPDVTag, JitterRFCTag}

var tagNames = map[StatisticTag]string{
	InterarrivalTag: "Interarrival Time",
	LatencyTag:      "Latency",
	JitterIPDVTag:   "Jitter (IPDV)",
	JitterRFCTag:    "Jitter (RFC)",
}

// Name returns the human readable name of the tag.
func (t StatisticTag) Name() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return string(t)
}

// DigestRecord is everything extracted from one result for one tag.
type DigestRecord struct {
	ResultID   string
	Tag        StatisticTag
	Units      string
	Summary    Summary
	FrameCount int64
	Centroids  []Centroid
}
