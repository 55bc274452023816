package plot

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/Spirent/openperf-sub000/common"
	"github.com/Spirent/openperf-sub000/model"
	"github.com/Spirent/openperf-sub000/tdigest"
	"github.com/Spirent/openperf-sub000/utils"
	"github.com/hyp3rd/ewrap"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.uber.org/zap"
)

type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case PNG, SVG:
		return Format(s), nil
	}
	return "", ewrap.Wrapf(common.ErrorInvalidValue, "image format %q", s)
}

func (f Format) provider() chart.RendererProvider {
	if f == SVG {
		return chart.SVG
	}
	return chart.PNG
}

// Driver samples a digest and writes its CDF and quantile plots to Dir.
type Driver struct {
	Dir    string
	Format Format
	Width  int
	Height int
}

func NewDriver(dir string, format Format, width, height int) *Driver {
	if dir == "" {
		dir = "."
	}
	if format == "" {
		format = PNG
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Driver{
		Dir:    dir,
		Format: format,
		Width:  width,
		Height: height,
	}
}

// Plot renders both artifacts for one (result, tag) pair.
func (d *Driver) Plot(ctx context.Context, record model.DigestRecord, digest *tdigest.Digest) error {
	logger := utils.GetLogger(ctx)

	plan, err := NewPlan(record, digest)
	if err != nil {
		return err
	}

	paths, err := d.Render(ctx, plan)
	if err != nil {
		logger.Error("render failed", zap.String("result_id", record.ResultID),
			zap.String("tag", string(record.Tag)), zap.Error(err))
		return err
	}

	logger.Info("wrote plots", zap.String("result_id", record.ResultID),
		zap.String("tag", string(record.Tag)), zap.Strings("paths", paths))
	return nil
}

// Render writes the plots of a plan and returns their paths.
func (d *Driver) Render(ctx context.Context, plan *Plan) ([]string, error) {
	ext := string(d.Format)
	cdfPath := filepath.Join(d.Dir, CdfFileName(plan.Record.ResultID, plan.Record.Tag, ext))
	quantilePath := filepath.Join(d.Dir, QuantileFileName(plan.Record.ResultID, plan.Record.Tag, ext))

	if err := d.write(ctx, cdfPath, d.cdfChart(plan)); err != nil {
		return nil, err
	}
	if err := d.write(ctx, quantilePath, d.quantileChart(plan)); err != nil {
		return nil, err
	}
	return []string{cdfPath, quantilePath}, nil
}

func (d *Driver) write(ctx context.Context, path string, graph chart.Chart) (err error) {
	logger := utils.GetLogger(ctx)

	f, err := os.Create(path)
	if err != nil {
		return ewrap.Wrapf(common.ErrorIOFailure, "create %s: %v", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = ewrap.Wrapf(common.ErrorIOFailure, "close %s: %v", path, closeErr)
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("chart render panic", zap.Any("err", r), zap.String("path", path),
				zap.String("panic info", utils.GetPanicInfo()))
			err = ewrap.Wrapf(common.ErrorIOFailure, "render %s: %v", path, r)
		}
	}()

	if err := graph.Render(d.Format.provider(), f); err != nil {
		return ewrap.Wrapf(common.ErrorIOFailure, "render %s: %v", path, err)
	}
	return nil
}

func (d *Driver) cdfChart(plan *Plan) chart.Chart {
	xr := axisRange(plan.Lower, plan.Upper)
	yr := &chart.ContinuousRange{Min: 0, Max: 1}

	xs, ys := make([]float64, len(plan.Cdf)), make([]float64, len(plan.Cdf))
	for i, point := range plan.Cdf {
		xs[i], ys[i] = point.X, point.Value
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "CDF",
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
		},
	}
	if ticks, ok := tickSeries("centroid means", plan.CdfTicks, xr, yr.Min); ok {
		series = append(series, ticks)
	}
	series = append(series, annotationSeries(plan.Annotation, plan.CdfCorner, xr, yr))

	return d.newChart(fmt.Sprintf("%s CDF, %s", plan.Record.Tag.Name(), plan.Record.ResultID),
		chart.XAxis{Name: plan.Record.Units, Range: xr},
		chart.YAxis{Name: "P(X <= x)", Range: yr},
		series)
}

func (d *Driver) quantileChart(plan *Plan) chart.Chart {
	xr := &chart.ContinuousRange{Min: GraphQuantileMin, Max: GraphQuantileMax}
	yr := axisRange(plan.Lower, plan.Upper)

	ps, vs := make([]float64, len(plan.Quantiles)), make([]float64, len(plan.Quantiles))
	for i, q := range plan.Quantiles {
		ps[i], vs[i] = q.Quantile, q.Value
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Quantile",
			XValues: ps,
			YValues: vs,
			Style:   chart.Style{StrokeColor: chart.ColorGreen, StrokeWidth: 2},
		},
	}
	if ticks, ok := tickSeries("cumulative weight", plan.QuantileTicks, xr, yr.Min); ok {
		series = append(series, ticks)
	}
	series = append(series, annotationSeries(plan.Annotation, plan.QuantileCorner, xr, yr))

	return d.newChart(fmt.Sprintf("%s quantiles, %s", plan.Record.Tag.Name(), plan.Record.ResultID),
		chart.XAxis{Name: "quantile", Range: xr},
		chart.YAxis{Name: plan.Record.Units, Range: yr},
		series)
}

func (d *Driver) newChart(title string, xAxis chart.XAxis, yAxis chart.YAxis, series []chart.Series) chart.Chart {
	graph := chart.Chart{
		Title:      title,
		Width:      d.Width,
		Height:     d.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph
}

// axisRange widens an empty range so a single valued digest still has an axis.
func axisRange(lo, hi float64) *chart.ContinuousRange {
	if hi <= lo {
		pad := math.Max(math.Abs(lo)*0.01, 0.5)
		return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

// tickSeries draws event ticks as dots along the bottom of the plot.
func tickSeries(name string, ticks []float64, xr *chart.ContinuousRange, y float64) (chart.ContinuousSeries, bool) {
	xs, ys := []float64{}, []float64{}
	for _, x := range ticks {
		if x < xr.Min || x > xr.Max {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if len(xs) == 0 {
		return chart.ContinuousSeries{}, false
	}
	return chart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: drawing.ColorTransparent,
			DotWidth:    3,
			DotColor:    chart.ColorAlternateGray,
		},
	}, true
}

// annotationSeries stacks one label per line in the requested corner.
func annotationSeries(lines []string, corner Corner, xr, yr *chart.ContinuousRange) chart.AnnotationSeries {
	xSpan, ySpan := xr.Max-xr.Min, yr.Max-yr.Min
	x, top := xr.Min+0.7*xSpan, yr.Min+0.3*ySpan
	if corner == UpperLeft {
		x, top = xr.Min+0.02*xSpan, yr.Min+0.95*ySpan
	}

	values := make([]chart.Value2, 0, len(lines))
	for i, line := range lines {
		values = append(values, chart.Value2{
			XValue: x,
			YValue: top - float64(i)*0.07*ySpan,
			Label:  line,
		})
	}
	return chart.AnnotationSeries{Annotations: values}
}
