package nbeats

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/born-ml/nbeats/internal/nn"
	"github.com/born-ml/nbeats/internal/tensor"
)

// Network is an ordered sequence of stacks sharing one residual stream.
//
// Stack j receives the residual left by stack j-1 and the network forecast
// is the sum of all stack forecasts.
type Network[B tensor.Backend] struct {
	cfg     Config
	stacks  []*Stack[B]
	cache   *BasisCache
	backend B
}

// StackOutput is one stack's share of a network pass.
type StackOutput[B tensor.Backend] struct {
	Type     BlockType
	Residual *tensor.Tensor[float32, B]
	Forecast *tensor.Tensor[float32, B]
}

// Decomposition splits a network forecast into per-stack components,
// e.g. the trend and seasonality parts of an interpretable model.
type Decomposition[B tensor.Backend] struct {
	Stacks   []StackOutput[B]
	Residual *tensor.Tensor[float32, B]
	Forecast *tensor.Tensor[float32, B]
}

// New builds a network after validating cfg. Two networks built from the
// same Config have identical weights.
func New[B tensor.Backend](cfg Config, backend B) (*Network[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.BlockTypes = slices.Clone(cfg.BlockTypes)
	n := &Network[B]{
		cfg:     cfg,
		cache:   NewBasisCache(),
		backend: backend,
	}
	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), 0)) //nolint:gosec // weight init is not security-critical

	for j := 0; j < cfg.Layers(); j++ {
		stack, err := NewStack(BlockConfig{
			Type:           cfg.BlockTypes[j],
			Units:          cfg.Units,
			BackcastLength: cfg.BackcastLength,
			ForecastLength: cfg.ForecastLength,
			Name:           fmt.Sprintf("stack%d", j),
			Rand:           rng,
			Cache:          n.cache,
		}, cfg.NbBlocks, backend)
		if err != nil {
			return nil, fmt.Errorf("stack %d: %w", j, err)
		}
		n.stacks = append(n.stacks, stack)
	}
	return n, nil
}

// Forward threads x through every stack and returns the final residual and
// the total forecast, shaped [batch, BackcastLength] and [batch, ForecastLength].
//
// Panics on a shape mismatch; call Check first to get an error instead.
func (n *Network[B]) Forward(x *tensor.Tensor[float32, B]) (residual, forecast *tensor.Tensor[float32, B]) {
	d := n.Decompose(x)
	return d.Residual, d.Forecast
}

// Decompose threads x through every stack and keeps each stack's residual
// and forecast.
func (n *Network[B]) Decompose(x *tensor.Tensor[float32, B]) Decomposition[B] {
	d := Decomposition[B]{Stacks: make([]StackOutput[B], 0, len(n.stacks))}
	residual := x
	for _, stack := range n.stacks {
		var f *tensor.Tensor[float32, B]
		residual, f = stack.Forward(residual)
		d.Stacks = append(d.Stacks, StackOutput[B]{Type: stack.Type(), Residual: residual, Forecast: f})
		if d.Forecast == nil {
			d.Forecast = f
		} else {
			d.Forecast = d.Forecast.Add(f)
		}
	}
	d.Residual = residual
	return d
}

// Predict forecasts a single window.
func (n *Network[B]) Predict(window []float64) ([]float64, error) {
	if len(window) != n.cfg.BackcastLength {
		return nil, fmt.Errorf("%w: window has %d points, expected %d",
			ErrShapeMismatch, len(window), n.cfg.BackcastLength)
	}
	x, err := tensor.FromRows[float32]([][]float64{window}, n.backend)
	if err != nil {
		return nil, err
	}
	_, forecast := n.Forward(x)
	return forecast.Rows()[0], nil
}

// Check validates that x is [batch, BackcastLength] with batch > 0.
func (n *Network[B]) Check(x *tensor.Tensor[float32, B]) error {
	return checkInput(x.Shape(), n.cfg.BackcastLength)
}

// Parameters returns every trainable parameter in stack, block, layer order.
func (n *Network[B]) Parameters() []*nn.Parameter[B] {
	var params []*nn.Parameter[B]
	for _, stack := range n.stacks {
		params = append(params, stack.Parameters()...)
	}
	return params
}

// Stacks returns the network's stacks.
func (n *Network[B]) Stacks() []*Stack[B] {
	return n.stacks
}

// Config returns the configuration the network was built from.
func (n *Network[B]) Config() Config {
	return n.cfg
}

// BasisCache returns the cache shared by the network's basis blocks.
func (n *Network[B]) BasisCache() *BasisCache {
	return n.cache
}
