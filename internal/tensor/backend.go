package tensor

// Backend is the set of kernels the forecasting model is built from.
//
// The surface is deliberately narrow: dense layers need MatMul, Add and
// Transpose; residual stacking needs Sub; losses need Mul, MulScalar and
// reductions. Implementations:
//   - cpu.CPUBackend: pure Go kernels with gonum BLAS matmul
//   - autodiff.AutodiffBackend: gradient-recording decorator over any Backend
type Backend interface {
	// Element-wise binary operations with broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	// MatMul multiplies 2D tensors: [M, K] @ [K, N] -> [M, N].
	MatMul(a, b *RawTensor) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// MulScalar multiplies every element by s.
	MulScalar(x *RawTensor, s float64) *RawTensor

	// Reductions.
	Sum(x *RawTensor) *RawTensor                           // scalar (shape [])
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor // along one dimension

	// Metadata.
	Name() string
	Device() Device
}

// ReLUBackend is implemented by backends that provide a rectified-linear kernel.
type ReLUBackend interface {
	ReLU(x *RawTensor) *RawTensor
}
