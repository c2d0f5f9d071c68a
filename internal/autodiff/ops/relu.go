package ops

import (
	"fmt"

	"github.com/born-ml/nbeats/internal/tensor"
)

// ReLUOp represents the rectified linear unit: output = max(0, x).
//
// The derivative at exactly zero is taken as 0.
type ReLUOp struct {
	unaryOp
}

// NewReLUOp creates a new ReLUOp.
func NewReLUOp(x, output *tensor.RawTensor) *ReLUOp {
	return &ReLUOp{newUnary(x, output)}
}

// Backward masks the output gradient where the input was not positive.
func (op *ReLUOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	mask, err := tensor.NewRaw(x.Shape(), x.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("relu backward: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		positiveMask(mask.AsFloat32(), x.AsFloat32())
	case tensor.Float64:
		positiveMask(mask.AsFloat64(), x.AsFloat64())
	default:
		panic(fmt.Sprintf("relu backward: unsupported dtype %s", x.DType()))
	}

	return []*tensor.RawTensor{backend.Mul(outputGrad, mask)}
}

func positiveMask[T float32 | float64](dst, src []T) {
	for i, v := range src {
		if v > 0 {
			dst[i] = 1
		}
	}
}
