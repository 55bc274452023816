package model

import "fmt"

// Cdf is one sampled point of a cumulative distribution: P(X <= X) == Value.
type Cdf struct {
	X     float64
	Value float64
}

type QuantileValue struct {
	Value    float64 `json:"v,omitempty"`
	Quantile float64 `json:"q,omitempty"`
}

// QuantileTable holds evaluated quantiles keyed by their fraction, e.g. "0.5".
type QuantileTable struct {
	QuantileValues map[string]*QuantileValue `json:"quantiles,omitempty"`
}

func NewQuantileTable(values []QuantileValue) *QuantileTable {
	t := &QuantileTable{QuantileValues: make(map[string]*QuantileValue, len(values))}
	for i := range values {
		t.QuantileValues[fmt.Sprintf("%v", values[i].Quantile)] = &values[i]
	}
	return t
}

func (c *QuantileTable) GetQuantileValue(value float64) (*QuantileValue, bool) {
	if c == nil || c.QuantileValues == nil {
		return nil, false
	}
	valueStr := fmt.Sprintf("%v", value)
	quantile, ok := c.QuantileValues[valueStr]
	return quantile, ok
}
