// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nbeats provides the public API of the N-BEATS forecaster.
//
// # Overview
//
// A network maps a window of BackcastLength past observations to
// ForecastLength future values. It is a sequence of stacks, each a sequence
// of blocks. Every block consumes the residual left by its predecessor,
// explains part of it (the backcast) and adds a partial forecast:
//
//	residual_{k+1} = residual_k - backcast_k
//	forecast       = Σ forecast_k
//
// Trend blocks decode their coefficients through a polynomial basis and
// seasonality blocks through a Fourier basis, so per-stack forecasts can be
// read as trend and seasonal components. Generic blocks learn their basis.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/nbeats/autodiff"
//	    "github.com/born-ml/nbeats/backend/cpu"
//	    "github.com/born-ml/nbeats/nbeats"
//	)
//
//	func main() {
//	    backend := autodiff.New(cpu.New())
//	    cfg := nbeats.DefaultConfig()
//	    cfg.BlockTypes = []nbeats.BlockType{nbeats.Trend, nbeats.Seasonality}
//	    net, err := nbeats.New(cfg, backend)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    forecast, err := net.Predict(window)
//	}
//
// # Metrics
//
// MSE, SMAPE, MASE and OWA score forecasts against targets. Structural
// problems (empty or mismatched series) return errors. Zero denominators
// yield NaN or ±Inf, which IsFinite detects.
package nbeats
