package summary

import (
	"errors"
	"testing"

	"github.com/Spirent/openperf-sub000/common"
	"github.com/Spirent/openperf-sub000/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	s := model.Summary{Min: 120, Max: 9800, Total: 100001, StdDev: 12.34567}

	text, err := Format(s, 100)
	require.NoError(t, err)
	assert.Equal(t, "min: 120\nmean: 1000\nmax: 9800\nσ: 12.346", text)
}

func TestMeanFloorsTotals(t *testing.T) {
	mean, err := Mean(model.Summary{Total: 29}, 10)
	require.NoError(t, err)
	assert.Equal(t, 2.0, mean)

	mean, err = Mean(model.Summary{Total: -29}, 10)
	require.NoError(t, err)
	assert.Equal(t, -3.0, mean)
}

func TestLines(t *testing.T) {
	lines, err := Lines(model.Summary{Min: 1.5, Max: 2.5, Total: 4, StdDev: 0}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"min: 1.5", "mean: 2", "max: 2.5", "σ: 0"}, lines)
}

func TestZeroFrameCount(t *testing.T) {
	_, err := Format(model.Summary{Total: 10}, 0)
	assert.True(t, errors.Is(err, common.ErrorMalformedResult))
}
