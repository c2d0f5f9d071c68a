package cpu

import (
	"fmt"

	"github.com/born-ml/nbeats/internal/tensor"
)

// MulScalar multiplies each element of the tensor by s.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, s float64) *tensor.RawTensor {
	result := cpu.alloc("mulScalar", x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		scale(result.AsFloat32(), x.AsFloat32(), float32(s))
	case tensor.Float64:
		scale(result.AsFloat64(), x.AsFloat64(), s)
	default:
		panic(fmt.Sprintf("mulScalar: unsupported dtype %s", x.DType()))
	}

	return result
}

func scale[T float](dst, src []T, s T) {
	for i, v := range src {
		dst[i] = v * s
	}
}
