package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerpEndpoints(t *testing.T) {
	cases := []struct {
		name string
		a, b float64
	}{
		{"positive increasing", 2, 8},
		{"positive decreasing", 8, 2},
		{"negative increasing", -8, -2},
		{"negative decreasing", -2, -8},
		{"straddling", -5, 5},
		{"reverse straddling", 5, -5},
		{"zero start", 0, 3},
		{"zero end", 3, 0},
		{"equal", 7, 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.a, Lerp(tc.a, tc.b, 0))
			assert.Equal(t, tc.b, Lerp(tc.a, tc.b, 1))
		})
	}
}

func TestLerpInterior(t *testing.T) {
	assert.InDelta(t, 5.0, Lerp(2, 8, 0.5), 1e-12)
	assert.InDelta(t, 0.0, Lerp(-1, 1, 0.5), 1e-12)
	assert.InDelta(t, -5.0, Lerp(-8, -2, 0.5), 1e-12)
	assert.InDelta(t, 2.5, Lerp(0, 10, 0.25), 1e-12)
}

func TestLerpSaturates(t *testing.T) {
	assert.Equal(t, 8.0, Lerp(2, 8, 1.0000001))
	assert.Equal(t, 8.0, Lerp(2, 8, 3))
	assert.Equal(t, 2.0, Lerp(8, 2, 1.5))
	assert.Equal(t, -8.0, Lerp(-2, -8, 2))

	// nearly equal endpoints with a t that drifted past 1
	a, b := 1e9, math.Nextafter(1e9, math.Inf(1))
	assert.LessOrEqual(t, Lerp(a, b, 1+1e-9), b)
}

func TestLerpMonotone(t *testing.T) {
	for _, ends := range [][2]float64{{2, 8}, {8, 2}, {-3, 4}, {-8, -2}} {
		a, b := ends[0], ends[1]
		prev := Lerp(a, b, 0)
		for i := 1; i <= 100; i++ {
			cur := Lerp(a, b, float64(i)/100)
			if b > a {
				assert.GreaterOrEqual(t, cur, prev)
			} else {
				assert.LessOrEqual(t, cur, prev)
			}
			prev = cur
		}
	}
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, 1.235, FormatFloat(1.23456, 3))
	assert.Equal(t, 1.2, FormatFloat(1.23456, 1))
	assert.True(t, math.IsNaN(FormatFloat(math.NaN(), 3)))
	assert.True(t, math.IsInf(FormatFloat(math.Inf(1), 3), 1))
}
