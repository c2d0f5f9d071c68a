package nbeats

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/nbeats/internal/nn"
	"github.com/born-ml/nbeats/internal/tensor"
)

// Stack chains blocks of one type through a running residual.
//
// Each block sees the residual left by the previous block; its backcast is
// subtracted element-wise and its forecast is added to the stack forecast.
type Stack[B tensor.Backend] struct {
	blockType BlockType
	blocks    []*Block[B]
}

// StackTrace records every intermediate value of one stack pass.
//
// Inputs[i] is what block i received, so Inputs[0] is the stack input and
// Inputs[i+1] = Inputs[i] - Backcasts[i]. For every element,
// Inputs[0] = Residual + Σ Backcasts.
type StackTrace[B tensor.Backend] struct {
	Inputs    []*tensor.Tensor[float32, B]
	Backcasts []*tensor.Tensor[float32, B]
	Forecasts []*tensor.Tensor[float32, B]
	Residual  *tensor.Tensor[float32, B]
	Forecast  *tensor.Tensor[float32, B]
}

// NewStack creates nbBlocks blocks sharing cfg. Block i is named
// "<cfg.Name>.block<i>".
func NewStack[B tensor.Backend](cfg BlockConfig, nbBlocks int, backend B) (*Stack[B], error) {
	if nbBlocks <= 0 {
		return nil, &ConfigError{Field: "NbBlocks", Reason: fmt.Sprintf("must be positive, got %d", nbBlocks)}
	}
	if cfg.Cache == nil {
		cfg.Cache = NewBasisCache()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(1, 0)) //nolint:gosec // weight init is not security-critical
	}

	s := &Stack[B]{blockType: cfg.Type}
	prefix := cfg.Name
	for i := 0; i < nbBlocks; i++ {
		bc := cfg
		bc.Name = fmt.Sprintf("block%d", i)
		if prefix != "" {
			bc.Name = prefix + "." + bc.Name
		}
		block, err := NewBlock(bc, backend)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		s.blocks = append(s.blocks, block)
	}
	return s, nil
}

// Forward returns the residual after all blocks and the summed forecast.
func (s *Stack[B]) Forward(x *tensor.Tensor[float32, B]) (residual, forecast *tensor.Tensor[float32, B]) {
	tr := s.Trace(x)
	return tr.Residual, tr.Forecast
}

// Trace chains the running residual through the blocks and keeps each
// block's input, backcast and forecast.
func (s *Stack[B]) Trace(x *tensor.Tensor[float32, B]) StackTrace[B] {
	tr := StackTrace[B]{
		Inputs:    make([]*tensor.Tensor[float32, B], 0, len(s.blocks)),
		Backcasts: make([]*tensor.Tensor[float32, B], 0, len(s.blocks)),
		Forecasts: make([]*tensor.Tensor[float32, B], 0, len(s.blocks)),
	}

	residual := x
	for _, block := range s.blocks {
		tr.Inputs = append(tr.Inputs, residual)
		backcast, f := block.Forward(residual)
		tr.Backcasts = append(tr.Backcasts, backcast)
		tr.Forecasts = append(tr.Forecasts, f)
		residual = residual.Sub(backcast)
		if tr.Forecast == nil {
			tr.Forecast = f
		} else {
			tr.Forecast = tr.Forecast.Add(f)
		}
	}
	tr.Residual = residual
	return tr
}

// Parameters returns the parameters of every block, in block order.
func (s *Stack[B]) Parameters() []*nn.Parameter[B] {
	var params []*nn.Parameter[B]
	for _, block := range s.blocks {
		params = append(params, block.Parameters()...)
	}
	return params
}

// Blocks returns the stack's blocks.
func (s *Stack[B]) Blocks() []*Block[B] {
	return s.blocks
}

// Type returns the block type shared by the stack.
func (s *Stack[B]) Type() BlockType {
	return s.blockType
}
