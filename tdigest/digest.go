package tdigest

import (
	"math"
	"sort"

	"github.com/Spirent/openperf-sub000/common"
	"github.com/Spirent/openperf-sub000/model"
	"github.com/Spirent/openperf-sub000/utils"
	"github.com/hyp3rd/ewrap"
	"gonum.org/v1/gonum/floats"
)

// Digest is an immutable t-digest: centroids sorted by mean plus the exact
// extremes of the sample they summarize.
type Digest struct {
	centroids   []model.Centroid
	min         float64
	max         float64
	totalWeight float64

	// cumulative[i] is the weight of centroids[0..i]
	cumulative []float64
}

func NewDigest(centroids []model.Centroid, min, max float64) (*Digest, error) {
	if len(centroids) == 0 {
		return nil, ewrap.Wrap(common.ErrorDegenerateDigest, "no centroids")
	}
	if math.IsNaN(min) || math.IsNaN(max) || min > max {
		return nil, ewrap.Wrapf(common.ErrorDegenerateDigest, "min %v, max %v", min, max)
	}

	owned := make([]model.Centroid, len(centroids))
	copy(owned, centroids)
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].Mean < owned[j].Mean
	})

	weights := make([]float64, len(owned))
	for i, c := range owned {
		if math.IsNaN(c.Mean) || math.IsInf(c.Mean, 0) ||
			math.IsNaN(c.Weight) || math.IsInf(c.Weight, 0) || c.Weight < 0 {
			return nil, ewrap.Wrapf(common.ErrorDegenerateDigest, "centroid %d: mean %v, weight %v",
				i, c.Mean, c.Weight)
		}
		weights[i] = c.Weight
	}

	totalWeight := floats.Sum(weights)
	if totalWeight <= 0 {
		return nil, ewrap.Wrap(common.ErrorDegenerateDigest, "zero total weight")
	}

	n := len(owned)
	if owned[0].Mean < min || owned[n-1].Mean > max {
		return nil, ewrap.Wrapf(common.ErrorDegenerateDigest, "centroid means [%v, %v] outside [%v, %v]",
			owned[0].Mean, owned[n-1].Mean, min, max)
	}

	d := &Digest{
		centroids:   owned,
		min:         min,
		max:         max,
		totalWeight: totalWeight,
		cumulative:  floats.CumSum(make([]float64, n), weights),
	}

	return d, nil
}

func (d *Digest) Min() float64 {
	return d.min
}

func (d *Digest) Max() float64 {
	return d.max
}

func (d *Digest) TotalWeight() float64 {
	return d.totalWeight
}

// Centroids returns a copy of the sorted centroids.
func (d *Digest) Centroids() []model.Centroid {
	res := make([]model.Centroid, len(d.centroids))
	copy(res, d.centroids)
	return res
}

// CumulativeFractions returns the fraction of the total weight held by
// centroids[0..i] for every i. The last value is 1.
func (d *Digest) CumulativeFractions() []float64 {
	res := make([]float64, len(d.cumulative))
	copy(res, d.cumulative)
	floats.Scale(1/d.totalWeight, res)
	res[len(res)-1] = 1
	return res
}

// Cdf returns P(X <= x) the way the SUT interprets its centroids. Between two
// means each centroid contributes half its weight. At a mean the whole run of
// equal means is counted once, so the result steps down just past every mean.
func (d *Digest) Cdf(x float64) float64 {
	// a sample with a single value is a step at that value
	if d.min == d.max {
		if x < d.min {
			return 0
		}
		return 1
	}

	if x <= d.min {
		return 0
	}
	if x >= d.max {
		return 1
	}

	n := len(d.centroids)

	front := d.centroids[0]
	if x < front.Mean {
		xFrac := (x - d.min) / (front.Mean - d.min)
		leftWeight := math.Max(front.Weight/2, 1)
		return utils.Lerp(0, leftWeight, xFrac) / d.totalWeight
	}

	back := d.centroids[n-1]
	if x > back.Mean {
		xFrac := (x - back.Mean) / (d.max - back.Mean)
		leftCum := d.totalWeight - math.Max(back.Weight/2, 1)
		return utils.Lerp(leftCum, d.totalWeight, xFrac) / d.totalWeight
	}

	t := front.Weight / 2
	for i := 0; i+1 < n; i++ {
		current, next := d.centroids[i], d.centroids[i+1]
		if current.Mean == x {
			return (t + d.runWeight(i)/2) / d.totalWeight
		}

		dw := (current.Weight + next.Weight) / 2
		if current.Mean < x && x < next.Mean {
			xFrac := (x - current.Mean) / (next.Mean - current.Mean)
			return (t + utils.Lerp(0, dw, xFrac)) / d.totalWeight
		}
		t += dw
	}

	// x is the mean of the last centroid alone
	return 1.0
}

// runWeight sums the weights of the centroids starting at first that share its mean.
func (d *Digest) runWeight(first int) float64 {
	last := first
	for last+1 < len(d.centroids) && d.centroids[last+1].Mean == d.centroids[first].Mean {
		last++
	}
	return d.cumulative[last] - d.cumulative[first] + d.centroids[first].Weight
}

// Quantile returns the value below which a fraction p of the weight lies.
func (d *Digest) Quantile(p float64) (float64, error) {
	if !(p >= 0 && p <= 1) {
		return 0, ewrap.Wrapf(common.ErrorInvalidQuantile, "quantile %v not in [0, 1]", p)
	}

	q := p * d.totalWeight
	n := len(d.centroids)

	// less than one observation to the left
	if q < 1 {
		return d.min, nil
	}

	front := d.centroids[0]
	if front.Weight > 1 && q < front.Weight/2 {
		xFrac := (q - 1) / (front.Weight/2 - 1)
		return utils.Lerp(d.min, front.Mean, xFrac), nil
	}

	if q > d.totalWeight-1 {
		return d.max, nil
	}

	back := d.centroids[n-1]
	if back.Weight > 1 && d.totalWeight-q <= back.Weight/2 {
		return d.rightTail(q), nil
	}

	t := front.Weight / 2
	for i := 0; i+1 < n; i++ {
		current, next := d.centroids[i], d.centroids[i+1]
		dw := (current.Weight + next.Weight) / 2
		if q < t+dw {
			return utils.Lerp(current.Mean, next.Mean, (q-t)/dw), nil
		}
		t += dw
	}

	return d.rightTail(q), nil
}

// rightTail interpolates from max, one observation from the top, down to the
// last centroid's mean.
func (d *Digest) rightTail(q float64) float64 {
	back := d.centroids[len(d.centroids)-1]
	span := back.Weight/2 - 1
	if span <= 0 {
		return back.Mean
	}
	xFrac := (d.totalWeight - q - 1) / span
	return utils.Lerp(d.max, back.Mean, xFrac)
}

// Quantiles evaluates every fraction in ps.
func (d *Digest) Quantiles(ps []float64) ([]model.QuantileValue, error) {
	res := make([]model.QuantileValue, 0, len(ps))
	for _, p := range ps {
		value, err := d.Quantile(p)
		if err != nil {
			return nil, err
		}
		res = append(res, model.QuantileValue{
			Quantile: p,
			Value:    value,
		})
	}
	return res, nil
}
