// Package analytics provides the statistical primitives behind the
// valuation reader's derived metrics.
package analytics

import (
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation of a slice of float64 values.
func StdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// CoefficientOfVariation is the ratio of the standard deviation to the mean.
// Zero-mean series return 0 rather than dividing by zero.
func CoefficientOfVariation(data []float64) float64 {
	m := Mean(data)
	if m == 0 {
		return 0
	}
	return StdDev(data) / m
}

// Covariance calculates the covariance between two equal-length datasets.
func Covariance(x, y []float64) float64 {
	if len(x) == 0 || len(y) == 0 || len(x) != len(y) {
		return 0
	}
	return stat.Covariance(x, y, nil)
}

// Correlation calculates the Pearson correlation coefficient between two
// equal-length datasets.
func Correlation(x, y []float64) float64 {
	if len(x) == 0 || len(y) == 0 || len(x) != len(y) {
		return 0
	}
	return stat.Correlation(x, y, nil)
}

// AlignSeries truncates both series to their common most-recent length so
// pairwise statistics compare the same window.
func AlignSeries(x, y []float64) ([]float64, []float64) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	return x[len(x)-n:], y[len(y)-n:]
}
