// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nbeats

import (
	"github.com/born-ml/nbeats/internal/metrics"
	"github.com/born-ml/nbeats/internal/nbeats"
	"github.com/born-ml/nbeats/tensor"
)

// BlockType selects how a block decodes its coefficients.
type BlockType = nbeats.BlockType

// Block types.
const (
	Generic     = nbeats.Generic
	Trend       = nbeats.Trend
	Seasonality = nbeats.Seasonality
)

// Config describes a network.
type Config = nbeats.Config

// ConfigError describes an invalid Config field.
type ConfigError = nbeats.ConfigError

// Network is an N-BEATS forecaster.
type Network[B tensor.Backend] = nbeats.Network[B]

// Stack is a sequence of blocks sharing one block type.
type Stack[B tensor.Backend] = nbeats.Stack[B]

// Block is a single N-BEATS block.
type Block[B tensor.Backend] = nbeats.Block[B]

// Decomposition splits a forecast into per-stack components.
type Decomposition[B tensor.Backend] = nbeats.Decomposition[B]

// Report holds the forecast accuracy metrics for one evaluation.
type Report = metrics.Report

// Errors.
var (
	ErrInvalidConfig    = nbeats.ErrInvalidConfig
	ErrUnknownBlockType = nbeats.ErrUnknownBlockType
	ErrShapeMismatch    = nbeats.ErrShapeMismatch
	ErrLengthMismatch   = metrics.ErrLengthMismatch
	ErrEmpty            = metrics.ErrEmpty
	ErrPeriod           = metrics.ErrPeriod
)

// DefaultConfig returns three trend stacks of four blocks mapping 10 points to 5.
func DefaultConfig() Config {
	return nbeats.DefaultConfig()
}

// New builds a network after validating cfg.
func New[B tensor.Backend](cfg Config, backend B) (*Network[B], error) {
	return nbeats.New(cfg, backend)
}

// ParseBlockType parses "generic", "trend" or "seasonality".
func ParseBlockType(s string) (BlockType, error) {
	return nbeats.ParseBlockType(s)
}

// ParseBlockTypes parses one block type per stack.
func ParseBlockTypes(names []string) ([]BlockType, error) {
	return nbeats.ParseBlockTypes(names)
}

// MSE returns the sum of squared errors.
func MSE(yTrue, yPred []float64) (float64, error) {
	return metrics.MSE(yTrue, yPred)
}

// SMAPE returns the symmetric mean absolute percentage error as a fraction,
// mean(2·|y-ŷ| / (|y|+|ŷ|)), in [0, 2].
func SMAPE(yTrue, yPred []float64) (float64, error) {
	return metrics.SMAPE(yTrue, yPred)
}

// MASE returns the mean absolute scaled error against a seasonal naive
// forecast with lag m.
func MASE(yTrue, yPred []float64, m int) (float64, error) {
	return metrics.MASE(yTrue, yPred, m)
}

// OWA returns the overall weighted average of SMAPE and MASE.
func OWA(yTrue, yPred []float64, m int) (float64, error) {
	return metrics.OWA(yTrue, yPred, m)
}

// Evaluate computes every metric at once.
func Evaluate(yTrue, yPred []float64, m int) (Report, error) {
	return metrics.Evaluate(yTrue, yPred, m)
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return metrics.IsFinite(v)
}
