package nn

import (
	"fmt"

	"github.com/born-ml/nbeats/internal/tensor"
)

// Reduction selects how MSELoss folds squared errors into a scalar.
type Reduction int

const (
	// ReductionSum adds all squared errors.
	ReductionSum Reduction = iota
	// ReductionMean averages squared errors over all elements.
	ReductionMean
)

// String returns the reduction name.
func (r Reduction) String() string {
	switch r {
	case ReductionSum:
		return "sum"
	case ReductionMean:
		return "mean"
	default:
		return fmt.Sprintf("Reduction(%d)", int(r))
	}
}

// MSELoss computes squared-error loss through backend ops, so the result
// is differentiable when the backend records a tape.
//
//	ReductionSum:  Loss = sum((predictions - targets)²)
//	ReductionMean: Loss = mean((predictions - targets)²)
//
// Example:
//
//	mse := nn.NewMSELoss(backend, nn.ReductionSum)
//	loss := mse.Forward(model.Forward(input), targets)
type MSELoss[B tensor.Backend] struct {
	backend   B
	reduction Reduction
}

// NewMSELoss creates a new squared-error loss function.
func NewMSELoss[B tensor.Backend](backend B, reduction Reduction) *MSELoss[B] {
	return &MSELoss[B]{
		backend:   backend,
		reduction: reduction,
	}
}

// Reduction returns the configured reduction.
func (m *MSELoss[B]) Reduction() Reduction {
	return m.reduction
}

// Forward computes the loss as a scalar tensor (shape []).
//
// Panics if predictions and targets differ in shape.
func (m *MSELoss[B]) Forward(predictions, targets *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic(fmt.Sprintf("MSELoss: predictions %v and targets %v must have the same shape",
			predictions.Shape(), targets.Shape()))
	}

	diff := predictions.Sub(targets)
	loss := diff.Mul(diff).Sum()

	if m.reduction == ReductionMean {
		loss = loss.MulScalar(1 / float64(predictions.NumElements()))
	}
	return loss
}

// Parameters returns nil (loss functions have no trainable parameters).
func (m *MSELoss[B]) Parameters() []*Parameter[B] {
	return nil
}
