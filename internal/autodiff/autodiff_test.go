package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/nbeats/internal/autodiff"
	"github.com/born-ml/nbeats/internal/backend/cpu"
	"github.com/born-ml/nbeats/internal/tensor"
)

type Backend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func newBackend() Backend {
	b := autodiff.New(cpu.New())
	b.Tape().StartRecording()
	return b
}

func vec(t *testing.T, b Backend, data []float32, shape ...int) *tensor.Tensor[float32, Backend] {
	t.Helper()
	x, err := tensor.FromSlice(data, tensor.Shape(shape), b)
	require.NoError(t, err)
	return x
}

func TestAutodiffBackend_Metadata(t *testing.T) {
	b := autodiff.New(cpu.New())
	assert.Equal(t, "Autodiff(CPU)", b.Name())
	assert.Equal(t, tensor.CPU, b.Device())
	assert.NotNil(t, b.Inner())
	assert.Same(t, b.Tape(), b.GetTape())
}

func TestTape_RecordingState(t *testing.T) {
	b := autodiff.New(cpu.New())
	x := vec(t, b, []float32{1, 2}, 2)

	x.Add(x)
	assert.Equal(t, 0, b.Tape().NumOps(), "nothing recorded before StartRecording")

	b.Tape().StartRecording()
	x.Add(x).Mul(x)
	assert.Equal(t, 2, b.Tape().NumOps())

	b.Tape().Clear()
	assert.Equal(t, 0, b.Tape().NumOps())
	assert.True(t, b.Tape().IsRecording())

	b.Tape().StopRecording()
	assert.False(t, b.Tape().IsRecording())
}

func TestBackward_Square(t *testing.T) {
	b := newBackend()
	x := vec(t, b, []float32{2, -3}, 2)
	y := x.Mul(x)

	grads := autodiff.Backward(y, b)
	assert.Equal(t, []float32{4, -6}, grads[x.Raw()].AsFloat32())
	assert.True(t, b.Tape().IsRecording(), "recording state restored")
}

func TestBackward_PanicsWithoutOps(t *testing.T) {
	b := autodiff.New(cpu.New())
	x := vec(t, b, []float32{1}, 1)
	assert.Panics(t, func() { autodiff.Backward(x, b) })
}

func TestBackward_SubAndScalar(t *testing.T) {
	b := newBackend()
	x := vec(t, b, []float32{1, 2}, 2)
	y := vec(t, b, []float32{5, 7}, 2)

	loss := x.Sub(y).MulScalar(3).Sum()
	grads := autodiff.Backward(loss, b)

	assert.Equal(t, []float32{3, 3}, grads[x.Raw()].AsFloat32())
	assert.Equal(t, []float32{-3, -3}, grads[y.Raw()].AsFloat32())
}

func TestBackward_BroadcastBias(t *testing.T) {
	b := newBackend()
	x := vec(t, b, []float32{1, 2, 3, 4, 5, 6}, 2, 3)
	bias := vec(t, b, []float32{0, 0, 0}, 1, 3)

	out := x.Add(bias).Sum()
	grads := autodiff.Backward(out, b)

	g := grads[bias.Raw()]
	assert.Equal(t, tensor.Shape{1, 3}, g.Shape())
	assert.Equal(t, []float32{2, 2, 2}, g.AsFloat32())
}

func TestBackward_MatMul(t *testing.T) {
	b := newBackend()
	a := vec(t, b, []float32{1, 2, 3, 4}, 2, 2)
	w := vec(t, b, []float32{5, 6, 7, 8}, 2, 2)

	grads := autodiff.Backward(a.MatMul(w).Sum(), b)

	// dL/dA = ones @ W^T, dL/dW = A^T @ ones
	assert.Equal(t, []float32{11, 15, 11, 15}, grads[a.Raw()].AsFloat32())
	assert.Equal(t, []float32{4, 4, 6, 6}, grads[w.Raw()].AsFloat32())
}

func TestBackward_ReLU(t *testing.T) {
	b := newBackend()
	x := vec(t, b, []float32{-1, 0, 2}, 3)
	y := tensor.New[float32](b.ReLU(x.Raw()), b)

	grads := autodiff.Backward(y.Sum(), b)
	assert.Equal(t, []float32{0, 0, 1}, grads[x.Raw()].AsFloat32())
}

func TestBackward_ShapeOps(t *testing.T) {
	b := newBackend()
	x := vec(t, b, []float32{1, 2, 3, 4, 5, 6}, 2, 3)
	w := vec(t, b, []float32{1, 10, 100, 1000, 1e4, 1e5}, 3, 2)

	y := x.T().Mul(w).Reshape(6).Sum()
	grads := autodiff.Backward(y, b)

	g := grads[x.Raw()]
	assert.Equal(t, tensor.Shape{2, 3}, g.Shape())
	assert.Equal(t, []float32{1, 100, 1e4, 10, 1000, 1e5}, g.AsFloat32())
}

func TestBackward_SumDim(t *testing.T) {
	b := newBackend()
	x := vec(t, b, []float32{1, 2, 3, 4, 5, 6}, 2, 3)
	w := vec(t, b, []float32{1, 2}, 2)

	y := x.SumDim(1, false).Mul(w).Sum()
	grads := autodiff.Backward(y, b)
	assert.Equal(t, []float32{1, 1, 1, 2, 2, 2}, grads[x.Raw()].AsFloat32())
}

func TestBackward_AccumulatesReuse(t *testing.T) {
	b := newBackend()
	x := vec(t, b, []float32{3}, 1)

	// y = x*x + x -> dy/dx = 2x + 1
	y := x.Mul(x).Add(x)
	grads := autodiff.Backward(y, b)
	assert.Equal(t, []float32{7}, grads[x.Raw()].AsFloat32())
}
