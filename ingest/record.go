package ingest

import (
	"strings"

	"github.com/Spirent/openperf-sub000/common"
	"github.com/Spirent/openperf-sub000/model"
	"github.com/hyp3rd/ewrap"
)

// Source selects which SUT endpoint results are read from.
type Source string

const (
	AnalyzerResults Source = "analyzer-results"
	RxFlows         Source = "rx-flows"
)

var AllSources = []Source{AnalyzerResults, RxFlows}

func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case AnalyzerResults, RxFlows:
		return Source(s), nil
	}
	names := make([]string, 0, len(AllSources))
	for _, source := range AllSources {
		names = append(names, string(source))
	}
	return "", ewrap.Wrapf(common.ErrorInvalidValue, "source %q, expected one of %s", s, strings.Join(names, ", "))
}

func (s Source) Path() string {
	return "/packet/" + string(s)
}

// Record is one result as returned by either endpoint.
type Record interface {
	ResultID() string
	CounterSet() *Counters
	DigestSet() *Digests
}

type SummaryBody struct {
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
	Total  *float64 `json:"total"`
	StdDev *float64 `json:"std_dev"`
}

type StatCounter struct {
	Summary *SummaryBody `json:"summary"`
	Units   *string      `json:"units"`
}

// Counters is the per flow counter subtree. Unrecognized statistics are dropped on decode.
type Counters struct {
	FrameCount   *int64       `json:"frame_count"`
	Interarrival *StatCounter `json:"interarrival"`
	Latency      *StatCounter `json:"latency"`
	JitterIPDV   *StatCounter `json:"jitter_ipdv"`
	JitterRFC    *StatCounter `json:"jitter_rfc"`
}

func (c *Counters) Stat(tag model.StatisticTag) *StatCounter {
	if c == nil {
		return nil
	}
	switch tag {
	case model.InterarrivalTag:
		return c.Interarrival
	case model.LatencyTag:
		return c.Latency
	case model.JitterIPDVTag:
		return c.JitterIPDV
	case model.JitterRFCTag:
		return c.JitterRFC
	}
	return nil
}

type DigestBody struct {
	Centroids []model.Centroid `json:"centroids"`
}

type Digests struct {
	Interarrival *DigestBody `json:"interarrival"`
	Latency      *DigestBody `json:"latency"`
	JitterIPDV   *DigestBody `json:"jitter_ipdv"`
	JitterRFC    *DigestBody `json:"jitter_rfc"`
}

func (d *Digests) Digest(tag model.StatisticTag) *DigestBody {
	if d == nil {
		return nil
	}
	switch tag {
	case model.InterarrivalTag:
		return d.Interarrival
	case model.LatencyTag:
		return d.Latency
	case model.JitterIPDVTag:
		return d.JitterIPDV
	case model.JitterRFCTag:
		return d.JitterRFC
	}
	return nil
}

// analyzerResult keeps its per flow data under flow_counters / flow_digests.
type analyzerResult struct {
	ID           string    `json:"id"`
	FlowCounters *Counters `json:"flow_counters"`
	FlowDigests  *Digests  `json:"flow_digests"`
}

func (r *analyzerResult) ResultID() string      { return r.ID }
func (r *analyzerResult) CounterSet() *Counters { return r.FlowCounters }
func (r *analyzerResult) DigestSet() *Digests   { return r.FlowDigests }

// rxFlow keeps its per flow data under counters / digests.
type rxFlow struct {
	ID       string    `json:"id"`
	Counters *Counters `json:"counters"`
	Digests  *Digests  `json:"digests"`
}

func (r *rxFlow) ResultID() string      { return r.ID }
func (r *rxFlow) CounterSet() *Counters { return r.Counters }
func (r *rxFlow) DigestSet() *Digests   { return r.Digests }

// Extract returns one DigestRecord per recognized tag that has a digest.
// Tags without a digest are skipped.
func Extract(record Record) ([]model.DigestRecord, error) {
	id := record.ResultID()
	if id == "" {
		return nil, ewrap.Wrap(common.ErrorMalformedResult, "result without id")
	}

	digests := record.DigestSet()
	counters := record.CounterSet()

	res := []model.DigestRecord{}
	for _, tag := range model.AllStatisticTags {
		digest := digests.Digest(tag)
		if digest == nil {
			continue
		}

		stat := counters.Stat(tag)
		if stat == nil {
			return nil, ewrap.Wrapf(common.ErrorMalformedResult, "result %s: %s digest without counters", id, tag)
		}
		summary, err := stat.summary()
		if err != nil {
			return nil, ewrap.Wrapf(err, "result %s: %s", id, tag)
		}
		if stat.Units == nil {
			return nil, ewrap.Wrapf(common.ErrorMalformedResult, "result %s: %s counters without units", id, tag)
		}
		if counters.FrameCount == nil {
			return nil, ewrap.Wrapf(common.ErrorMalformedResult, "result %s: no frame_count", id)
		}

		res = append(res, model.DigestRecord{
			ResultID:   id,
			Tag:        tag,
			Units:      *stat.Units,
			Summary:    summary,
			FrameCount: *counters.FrameCount,
			Centroids:  digest.Centroids,
		})
	}
	return res, nil
}

func (s *StatCounter) summary() (model.Summary, error) {
	body := s.Summary
	if body == nil {
		return model.Summary{}, ewrap.Wrap(common.ErrorMalformedResult, "counters without summary")
	}
	if body.Min == nil || body.Max == nil || body.Total == nil || body.StdDev == nil {
		return model.Summary{}, ewrap.Wrap(common.ErrorMalformedResult, "incomplete summary")
	}
	return model.Summary{
		Min:    *body.Min,
		Max:    *body.Max,
		Total:  *body.Total,
		StdDev: *body.StdDev,
	}, nil
}
