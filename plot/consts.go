package plot

const (
	// plots skip the extreme half percent on each side
	GraphQuantileMin = 0.005
	GraphQuantileMax = 0.995

	// GraphStep is the sampling step as a fraction of the plotted range.
	GraphStep = 0.01

	// QuantileResolution is the integer grid the quantile plot fractions are enumerated on.
	QuantileResolution = 1000

	CdfSampleCount = 101

	DefaultWidth  = 1024
	DefaultHeight = 768
)
