// Package nn implements the neural network building blocks used by the
// forecasting model.
//
// This package provides:
//   - Module interface: base interface for all components
//   - Parameter: trainable tensors with gradient slots
//   - Linear: fully connected layer with Xavier initialization
//   - ReLU: rectified linear activation
//   - Sequential: container for stacking layers
//   - MSELoss: differentiable squared-error loss
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import (
	"github.com/born-ml/nbeats/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Modules compose into larger architectures:
//
//	fc := nn.NewSequential[Backend](
//	    nn.NewLinear(10, 64, backend),
//	    nn.NewReLU[Backend](),
//	    nn.NewLinear(64, 64, backend),
//	)
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module.
	// Modules without weights return nil.
	Parameters() []*Parameter[B]
}
