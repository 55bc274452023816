package summary

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Spirent/openperf-sub000/common"
	"github.com/Spirent/openperf-sub000/model"
	"github.com/Spirent/openperf-sub000/utils"
	"github.com/hyp3rd/ewrap"
)

// Mean is total / frameCount rounded down. The digest itself is never used,
// it only carries the shape of the distribution.
func Mean(s model.Summary, frameCount int64) (float64, error) {
	if frameCount <= 0 {
		return 0, ewrap.Wrapf(common.ErrorMalformedResult, "frame count %d", frameCount)
	}
	return math.Floor(s.Total / float64(frameCount)), nil
}

// Lines returns the min, mean, max and standard deviation annotation lines.
func Lines(s model.Summary, frameCount int64) ([]string, error) {
	mean, err := Mean(s, frameCount)
	if err != nil {
		return nil, err
	}

	return []string{
		fmt.Sprintf("min: %s", formatValue(s.Min)),
		fmt.Sprintf("mean: %s", formatValue(mean)),
		fmt.Sprintf("max: %s", formatValue(s.Max)),
		fmt.Sprintf("σ: %s", formatValue(utils.FormatFloat(s.StdDev, 3))),
	}, nil
}

// Format renders the four line annotation shown on every plot.
func Format(s model.Summary, frameCount int64) (string, error) {
	lines, err := Lines(s, frameCount)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
