package plot

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Spirent/openperf-sub000/common"
	"github.com/Spirent/openperf-sub000/model"
	"github.com/Spirent/openperf-sub000/tdigest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(centroids ...model.Centroid) model.DigestRecord {
	return model.DigestRecord{
		ResultID:   "result-1",
		Tag:        model.LatencyTag,
		Units:      "nanoseconds",
		Summary:    model.Summary{Min: 0, Max: 100, Total: 1000, StdDev: 21.5},
		FrameCount: 20,
		Centroids:  centroids,
	}
}

func testPlan(t *testing.T, centroids ...model.Centroid) *Plan {
	t.Helper()
	record := testRecord(centroids...)
	digest, err := tdigest.NewDigest(record.Centroids, record.Summary.Min, record.Summary.Max)
	require.NoError(t, err)
	plan, err := NewPlan(record, digest)
	require.NoError(t, err)
	return plan
}

func TestQuantileGrid(t *testing.T) {
	grid := QuantileGrid()
	require.Len(t, grid, 100)
	assert.Equal(t, GraphQuantileMin, grid[0])
	assert.Equal(t, GraphQuantileMax, grid[len(grid)-1])
	assert.Equal(t, 0.505, grid[50])
}

func TestNewPlan(t *testing.T) {
	plan := testPlan(t,
		model.Centroid{Mean: 10, Weight: 4},
		model.Centroid{Mean: 50, Weight: 12},
		model.Centroid{Mean: 90, Weight: 4})

	assert.Equal(t, 0.0, plan.Lower)
	assert.Equal(t, 100.0, plan.Upper)
	assert.InDelta(t, 50.0, plan.Median, 1e-9)

	require.Len(t, plan.Cdf, CdfSampleCount)
	assert.Equal(t, plan.Lower, plan.Cdf[0].X)
	assert.Equal(t, plan.Upper, plan.Cdf[len(plan.Cdf)-1].X)
	assert.InDelta(t, 1.0, plan.Cdf[1].X-plan.Cdf[0].X, 1e-9)
	assert.Equal(t, 1.0, plan.Cdf[len(plan.Cdf)-1].Value)

	require.Len(t, plan.Quantiles, 100)
	assert.Equal(t, GraphQuantileMin, plan.Quantiles[0].Quantile)

	assert.Equal(t, []float64{10, 50, 90}, plan.CdfTicks)
	require.Len(t, plan.QuantileTicks, 3)
	assert.InDelta(t, 0.2, plan.QuantileTicks[0], 1e-9)
	assert.InDelta(t, 0.8, plan.QuantileTicks[1], 1e-9)
	assert.Equal(t, 1.0, plan.QuantileTicks[2])

	assert.Equal(t, []string{"min: 0", "mean: 50", "max: 100", "σ: 21.5"}, plan.Annotation)

	// a centered median puts the CDF annotation top left
	assert.Equal(t, UpperLeft, plan.CdfCorner)
	assert.Equal(t, LowerRight, plan.QuantileCorner)
}

func TestAnnotationPlacementSkewed(t *testing.T) {
	plan := testPlan(t,
		model.Centroid{Mean: 10, Weight: 4},
		model.Centroid{Mean: 20, Weight: 12},
		model.Centroid{Mean: 90, Weight: 4})

	assert.InDelta(t, 20.0, plan.Median, 1e-9)
	assert.Equal(t, LowerRight, plan.CdfCorner)
	assert.Equal(t, UpperLeft, plan.QuantileCorner)
}

func TestPlanRejectsZeroFrames(t *testing.T) {
	record := testRecord(model.Centroid{Mean: 50, Weight: 2})
	record.FrameCount = 0
	digest, err := tdigest.NewDigest(record.Centroids, 0, 100)
	require.NoError(t, err)

	_, err = NewPlan(record, digest)
	assert.True(t, errors.Is(err, common.ErrorMalformedResult))
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "abc-jitter_ipdv-cdf.png", CdfFileName("abc", model.JitterIPDVTag, "png"))
	assert.Equal(t, "abc-jitter_ipdv-pdf.png", QuantileFileName("abc", model.JitterIPDVTag, "png"))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("svg")
	require.NoError(t, err)
	assert.Equal(t, SVG, f)

	_, err = ParseFormat("gif")
	assert.True(t, errors.Is(err, common.ErrorInvalidValue))
}

func TestDriverWritesArtifacts(t *testing.T) {
	for _, format := range []Format{PNG, SVG} {
		t.Run(string(format), func(t *testing.T) {
			dir := t.TempDir()
			driver := NewDriver(dir, format, 640, 480)

			record := testRecord(
				model.Centroid{Mean: 10, Weight: 4},
				model.Centroid{Mean: 50, Weight: 12},
				model.Centroid{Mean: 90, Weight: 4})
			digest, err := tdigest.NewDigest(record.Centroids, 0, 100)
			require.NoError(t, err)

			require.NoError(t, driver.Plot(context.Background(), record, digest))

			for _, name := range []string{
				CdfFileName("result-1", model.LatencyTag, string(format)),
				QuantileFileName("result-1", model.LatencyTag, string(format)),
			} {
				data, err := os.ReadFile(filepath.Join(dir, name))
				require.NoError(t, err)
				require.NotEmpty(t, data)
				if format == PNG {
					assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
				} else {
					assert.Contains(t, string(data), "<svg")
				}
			}
		})
	}
}

func TestDriverSingleValueDigest(t *testing.T) {
	dir := t.TempDir()
	driver := NewDriver(dir, PNG, 0, 0)

	record := testRecord(model.Centroid{Mean: 7, Weight: 5})
	record.Summary = model.Summary{Min: 7, Max: 7, Total: 35}
	record.FrameCount = 5
	digest, err := tdigest.NewDigest(record.Centroids, 7, 7)
	require.NoError(t, err)

	require.NoError(t, driver.Plot(context.Background(), record, digest))
	assert.FileExists(t, filepath.Join(dir, CdfFileName("result-1", model.LatencyTag, "png")))
	assert.FileExists(t, filepath.Join(dir, QuantileFileName("result-1", model.LatencyTag, "png")))
}

func TestDriverIOFailure(t *testing.T) {
	driver := NewDriver(filepath.Join(t.TempDir(), "missing"), PNG, 0, 0)

	record := testRecord(model.Centroid{Mean: 50, Weight: 2})
	digest, err := tdigest.NewDigest(record.Centroids, 0, 100)
	require.NoError(t, err)

	err = driver.Plot(context.Background(), record, digest)
	assert.True(t, errors.Is(err, common.ErrorIOFailure))
}
