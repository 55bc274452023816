package plot

import (
	"fmt"
	"math"

	"github.com/Spirent/openperf-sub000/model"
	"github.com/Spirent/openperf-sub000/summary"
	"github.com/Spirent/openperf-sub000/tdigest"
	"gonum.org/v1/gonum/floats"
)

type Corner int

const (
	LowerRight Corner = iota
	UpperLeft
)

func (c Corner) String() string {
	if c == UpperLeft {
		return "upper-left"
	}
	return "lower-right"
}

func (c Corner) opposite() Corner {
	if c == UpperLeft {
		return LowerRight
	}
	return UpperLeft
}

// Plan is everything needed to draw the two plots of one (result, tag) pair.
type Plan struct {
	Record model.DigestRecord

	// Lower and Upper are the quantiles at GraphQuantileMin and GraphQuantileMax.
	Lower  float64
	Upper  float64
	Median float64

	Cdf       []model.Cdf
	Quantiles []model.QuantileValue

	// CdfTicks are the centroid means, QuantileTicks the cumulative weight fractions.
	CdfTicks      []float64
	QuantileTicks []float64

	Annotation     []string
	CdfCorner      Corner
	QuantileCorner Corner
}

func NewPlan(record model.DigestRecord, digest *tdigest.Digest) (*Plan, error) {
	bounds, err := digest.Quantiles([]float64{GraphQuantileMin, 0.5, GraphQuantileMax})
	if err != nil {
		return nil, err
	}
	lower, median, upper := bounds[0].Value, bounds[1].Value, bounds[2].Value

	annotation, err := summary.Lines(record.Summary, record.FrameCount)
	if err != nil {
		return nil, err
	}

	quantiles, err := digest.Quantiles(QuantileGrid())
	if err != nil {
		return nil, err
	}

	xs := floats.Span(make([]float64, CdfSampleCount), lower, upper)
	cdf := make([]model.Cdf, 0, len(xs))
	for _, x := range xs {
		cdf = append(cdf, model.Cdf{X: x, Value: digest.Cdf(x)})
	}

	centroids := digest.Centroids()
	cdfTicks := make([]float64, 0, len(centroids))
	for _, c := range centroids {
		cdfTicks = append(cdfTicks, c.Mean)
	}

	cdfCorner := UpperLeft
	midpoint := lower + (upper-lower)/2
	if median < midpoint {
		cdfCorner = LowerRight
	}

	return &Plan{
		Record:         record,
		Lower:          lower,
		Upper:          upper,
		Median:         median,
		Cdf:            cdf,
		Quantiles:      quantiles,
		CdfTicks:       cdfTicks,
		QuantileTicks:  digest.CumulativeFractions(),
		Annotation:     annotation,
		CdfCorner:      cdfCorner,
		QuantileCorner: cdfCorner.opposite(),
	}, nil
}

// QuantileGrid enumerates the quantile plot fractions on an integer grid so
// that no floating point error accumulates from step to step.
func QuantileGrid() []float64 {
	lo := int(math.Round(GraphQuantileMin * QuantileResolution))
	hi := int(math.Round(GraphQuantileMax * QuantileResolution))
	step := int(math.Round(GraphStep * QuantileResolution))

	grid := make([]float64, 0, (hi-lo)/step+1)
	for i := lo; i <= hi; i += step {
		grid = append(grid, float64(i)/QuantileResolution)
	}
	return grid
}

func CdfFileName(resultID string, tag model.StatisticTag, ext string) string {
	return fmt.Sprintf("%s-%s-cdf.%s", resultID, tag, ext)
}

// QuantileFileName keeps the historical "pdf" suffix of the quantile plot.
func QuantileFileName(resultID string, tag model.StatisticTag, ext string) string {
	return fmt.Sprintf("%s-%s-pdf.%s", resultID, tag, ext)
}
