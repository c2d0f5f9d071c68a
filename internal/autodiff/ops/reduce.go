package ops

import "github.com/born-ml/nbeats/internal/tensor"

// SumOp represents a full reduction to a scalar: output = sum(x).
type SumOp struct {
	unaryOp
}

// NewSumOp creates a new SumOp.
func NewSumOp(x, output *tensor.RawTensor) *SumOp {
	return &SumOp{newUnary(x, output)}
}

// Backward broadcasts the scalar gradient to the input shape.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{expandTo(outputGrad, op.inputs[0], backend)}
}

// SumDimOp represents a reduction along one dimension.
//
// Backward:
//
//	grad_x = broadcast(grad_y, x.shape)
//
// With keepDim=false the gradient is first reshaped to reinsert the
// reduced dimension with size 1.
type SumDimOp struct {
	unaryOp
	dim     int
	keepDim bool
}

// NewSumDimOp creates a new SumDimOp. dim may be negative.
func NewSumDimOp(x, output *tensor.RawTensor, dim int, keepDim bool) *SumDimOp {
	if dim < 0 {
		dim += len(x.Shape())
	}
	return &SumDimOp{unaryOp: newUnary(x, output), dim: dim, keepDim: keepDim}
}

// Backward broadcasts the reduced gradient along the summed dimension.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	grad := outputGrad
	if !op.keepDim {
		kept := x.Shape().Clone()
		kept[op.dim] = 1
		grad = backend.Reshape(grad, kept)
	}
	return []*tensor.RawTensor{expandTo(grad, x, backend)}
}
