// Package metrics implements the forecast accuracy measures used to
// evaluate the network: MSE, SMAPE, MASE and OWA.
//
// Structural problems (length mismatch, empty input, a series too short
// for the seasonal lag) are returned as errors. Zero denominators are not
// clamped: the IEEE result (NaN or ±Inf) is returned and IsFinite can be
// used to detect it.
package metrics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultPeriod is the seasonal lag used by MASE and OWA (monthly data).
const DefaultPeriod = 12

// Common errors.
var (
	ErrLengthMismatch = errors.New("series length mismatch")
	ErrEmpty          = errors.New("empty series")
	ErrPeriod         = errors.New("series too short for seasonal period")
)

// MSE returns the sum of squared differences.
func MSE(yTrue, yPred []float64) (float64, error) {
	if err := check(yTrue, yPred); err != nil {
		return 0, err
	}
	diff := make([]float64, len(yTrue))
	floats.SubTo(diff, yTrue, yPred)
	return floats.Dot(diff, diff), nil
}

// SMAPE returns mean(2·|y-ŷ| / (|y|+|ŷ|)).
//
// Points where both values are zero give NaN.
func SMAPE(yTrue, yPred []float64) (float64, error) {
	if err := check(yTrue, yPred); err != nil {
		return 0, err
	}
	terms := make([]float64, len(yTrue))
	for i := range yTrue {
		terms[i] = 2 * math.Abs(yTrue[i]-yPred[i]) / (math.Abs(yTrue[i]) + math.Abs(yPred[i]))
	}
	return mean(terms), nil
}

// MASE returns mean|y-ŷ| scaled by the in-sample seasonal naive error
// mean|y[t]-y[t-m]| for t = m..n-1.
//
// A constant-at-lag series has a zero scale and gives NaN or +Inf.
func MASE(yTrue, yPred []float64, m int) (float64, error) {
	if err := check(yTrue, yPred); err != nil {
		return 0, err
	}
	if m <= 0 || len(yTrue) <= m {
		return 0, fmt.Errorf("%w: %d points, period %d", ErrPeriod, len(yTrue), m)
	}

	errs := make([]float64, len(yTrue))
	floats.SubTo(errs, yTrue, yPred)
	absAll(errs)

	naive := make([]float64, len(yTrue)-m)
	floats.SubTo(naive, yTrue[m:], yTrue[:len(yTrue)-m])
	absAll(naive)

	return mean(errs) / mean(naive), nil
}

// OWA returns 0.5·SMAPE + 0.5·MASE.
func OWA(yTrue, yPred []float64, m int) (float64, error) {
	s, err := SMAPE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	ms, err := MASE(yTrue, yPred, m)
	if err != nil {
		return 0, err
	}
	return 0.5*s + 0.5*ms, nil
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func check(yTrue, yPred []float64) error {
	if len(yTrue) != len(yPred) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return ErrEmpty
	}
	return nil
}

func mean(v []float64) float64 {
	return floats.Sum(v) / float64(len(v))
}

func absAll(v []float64) {
	for i, x := range v {
		v[i] = math.Abs(x)
	}
}
