package common

import "errors"

var (
	ErrorInvalidValue = errors.New("invalid value")

	// ErrorInvalidQuantile is returned when a quantile fraction lies outside [0, 1].
	ErrorInvalidQuantile = errors.New("invalid quantile")

	// ErrorDegenerateDigest is returned when a digest cannot describe a distribution:
	// no centroids, no weight, or min > max.
	ErrorDegenerateDigest = errors.New("degenerate digest")

	// ErrorMalformedResult is returned when a result record lacks a field needed to plot a tag.
	ErrorMalformedResult = errors.New("malformed result")

	ErrorTransportFailure = errors.New("transport failure")
	ErrorIOFailure        = errors.New("io failure")
)
