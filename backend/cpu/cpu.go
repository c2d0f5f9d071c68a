// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend.
//
// Matrix products go through gonum's BLAS. Element-wise kernels support
// NumPy-style broadcasting and split large tensors across goroutines.
package cpu

import (
	internalcpu "github.com/born-ml/nbeats/internal/backend/cpu"
	"github.com/born-ml/nbeats/internal/parallel"
	"github.com/born-ml/nbeats/tensor"
)

// Backend is the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// ParallelConfig controls how kernels are split across goroutines.
type ParallelConfig = parallel.Config

var _ tensor.Backend = (*Backend)(nil)

// New creates a CPU backend with the default parallel configuration.
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with an explicit parallel configuration.
// Use parallel.Sequential semantics (Enabled: false) for deterministic
// single-threaded execution.
func NewWithConfig(cfg ParallelConfig) *Backend {
	return internalcpu.NewWithConfig(cfg)
}
