package tdigest

var (
	// ReportQuantiles are the fractions printed by the quantile report.
	ReportQuantiles = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 0.75, 0.9, 0.95, 0.99}
)
