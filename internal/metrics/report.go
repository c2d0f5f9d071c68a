package metrics

import (
	"fmt"
)

// Report bundles every metric for one evaluation.
type Report struct {
	MSE   float64
	SMAPE float64
	MASE  float64
	OWA   float64
}

// Evaluate computes all metrics for one pair of series.
func Evaluate(yTrue, yPred []float64, m int) (Report, error) {
	var r Report
	var err error
	if r.MSE, err = MSE(yTrue, yPred); err != nil {
		return Report{}, err
	}
	if r.SMAPE, err = SMAPE(yTrue, yPred); err != nil {
		return Report{}, err
	}
	if r.MASE, err = MASE(yTrue, yPred, m); err != nil {
		return Report{}, err
	}
	r.OWA = 0.5*r.SMAPE + 0.5*r.MASE
	return r, nil
}

// Finite reports whether every metric is finite.
func (r Report) Finite() bool {
	return IsFinite(r.MSE) && IsFinite(r.SMAPE) && IsFinite(r.MASE) && IsFinite(r.OWA)
}

// Fields returns the report as structured-logging fields.
func (r Report) Fields() map[string]any {
	return map[string]any{
		"mse":   r.MSE,
		"smape": r.SMAPE,
		"mase":  r.MASE,
		"owa":   r.OWA,
	}
}

// String formats the report on one line.
func (r Report) String() string {
	return fmt.Sprintf("mse=%.6g smape=%.6g mase=%.6g owa=%.6g", r.MSE, r.SMAPE, r.MASE, r.OWA)
}
