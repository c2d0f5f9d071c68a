package cpu

import (
	"fmt"

	"github.com/born-ml/nbeats/internal/parallel"
	"github.com/born-ml/nbeats/internal/tensor"
)

// ReLU applies max(0, x) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.alloc("relu", x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		relu(result.AsFloat32(), x.AsFloat32(), cpu.parallel)
	case tensor.Float64:
		relu(result.AsFloat64(), x.AsFloat64(), cpu.parallel)
	default:
		panic(fmt.Sprintf("relu: unsupported dtype %s", x.DType()))
	}

	return result
}

func relu[T float](dst, src []T, cfg parallel.Config) {
	parallel.Chunks(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			if v := src[i]; v > 0 {
				dst[i] = v
			} else {
				dst[i] = 0
			}
		}
	}, cfg)
}
