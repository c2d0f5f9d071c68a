// Package synth generates synthetic forecasting windows.
//
// Every source splits a series of BackcastLength+ForecastLength points into
// an input window and the target that follows it. Sources are deterministic
// for a given seed and are not safe for concurrent use.
package synth

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInvalidWindow is returned for non-positive window lengths.
var ErrInvalidWindow = errors.New("invalid window lengths")

// Source produces batches of (input, target) windows.
type Source interface {
	Batch(size int) (x, y [][]float64)
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15)) //nolint:gosec // synthetic data, not security-critical
}

func checkWindow(backcast, forecast int) error {
	if backcast <= 0 || forecast <= 0 {
		return fmt.Errorf("%w: backcast=%d forecast=%d", ErrInvalidWindow, backcast, forecast)
	}
	return nil
}

// split cuts a full series into a copy of the input window and target.
func split(series []float64, backcast int) (x, y []float64) {
	x = append([]float64(nil), series[:backcast]...)
	y = append([]float64(nil), series[backcast:]...)
	return x, y
}

// OffsetRamp yields a unit ramp i/n for i = 0..n-1, shifted by a uniform
// offset in [0, MaxOffset). The forecast continues the ramp.
type OffsetRamp struct {
	BackcastLength int
	ForecastLength int
	MaxOffset      float64

	rng *rand.Rand
}

// NewOffsetRamp creates a ramp source with offsets in [0, 5).
func NewOffsetRamp(backcast, forecast int, seed uint64) (*OffsetRamp, error) {
	if err := checkWindow(backcast, forecast); err != nil {
		return nil, err
	}
	return &OffsetRamp{
		BackcastLength: backcast,
		ForecastLength: forecast,
		MaxOffset:      5,
		rng:            newRand(seed),
	}, nil
}

// Batch returns size windows, each with its own offset.
func (r *OffsetRamp) Batch(size int) (x, y [][]float64) {
	n := r.BackcastLength + r.ForecastLength
	x = make([][]float64, size)
	y = make([][]float64, size)
	for b := 0; b < size; b++ {
		series := make([]float64, n)
		for i := range series {
			series[i] = float64(i) / float64(n)
		}
		floats.AddConst(r.rng.Float64()*r.MaxOffset, series)
		x[b], y[b] = split(series, r.BackcastLength)
	}
	return x, y
}

// CompositeConfig parameterizes a Composite source.
type CompositeConfig struct {
	BackcastLength int
	ForecastLength int
	Period         float64 // seasonal period in steps (default 12)
	MaxSlope       float64 // slope drawn from U(-MaxSlope, MaxSlope) (default 0.1)
	Amplitude      float64 // seasonal amplitude upper bound (default 1)
	MaxLevel       float64 // level drawn from U(0, MaxLevel) (default 5)
	NoiseStd       float64 // Gaussian noise standard deviation (0 disables noise)
}

// Composite yields level + slope·t + amplitude·sin(2πt/period + phase) + noise.
//
// Each window draws its own level, slope, amplitude and phase, so trend and
// seasonality stacks both have something to explain.
type Composite struct {
	cfg   CompositeConfig
	rng   *rand.Rand
	noise distuv.Normal
}

// NewComposite creates a composite source. Zero fields take defaults.
func NewComposite(cfg CompositeConfig, seed uint64) (*Composite, error) {
	if err := checkWindow(cfg.BackcastLength, cfg.ForecastLength); err != nil {
		return nil, err
	}
	if cfg.Period == 0 {
		cfg.Period = 12
	}
	if cfg.MaxSlope == 0 {
		cfg.MaxSlope = 0.1
	}
	if cfg.Amplitude == 0 {
		cfg.Amplitude = 1
	}
	if cfg.MaxLevel == 0 {
		cfg.MaxLevel = 5
	}
	if cfg.Period < 0 || cfg.NoiseStd < 0 {
		return nil, fmt.Errorf("synth: period %g and noise %g must not be negative", cfg.Period, cfg.NoiseStd)
	}

	rng := newRand(seed)
	return &Composite{
		cfg:   cfg,
		rng:   rng,
		noise: distuv.Normal{Mu: 0, Sigma: cfg.NoiseStd, Src: rng},
	}, nil
}

// Config returns the effective configuration.
func (c *Composite) Config() CompositeConfig {
	return c.cfg
}

// Batch returns size windows.
func (c *Composite) Batch(size int) (x, y [][]float64) {
	n := c.cfg.BackcastLength + c.cfg.ForecastLength
	x = make([][]float64, size)
	y = make([][]float64, size)
	for b := 0; b < size; b++ {
		level := c.rng.Float64() * c.cfg.MaxLevel
		slope := (2*c.rng.Float64() - 1) * c.cfg.MaxSlope
		amp := c.rng.Float64() * c.cfg.Amplitude
		phase := c.rng.Float64() * 2 * math.Pi

		series := make([]float64, n)
		for t := range series {
			ft := float64(t)
			series[t] = level + slope*ft + amp*math.Sin(2*math.Pi*ft/c.cfg.Period+phase)
			if c.cfg.NoiseStd > 0 {
				series[t] += c.noise.Rand()
			}
		}
		x[b], y[b] = split(series, c.cfg.BackcastLength)
	}
	return x, y
}
