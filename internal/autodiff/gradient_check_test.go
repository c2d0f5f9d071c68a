package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/nbeats/internal/autodiff"
	"github.com/born-ml/nbeats/internal/backend/cpu"
	"github.com/born-ml/nbeats/internal/tensor"
)

// twoLayer computes sum((relu(x@W1 + b1) @ W2 - y)^2) for the given
// flattened W1 and returns the loss tensor.
func twoLayer(t *testing.T, b Backend, w1 []float64) (*tensor.Tensor[float64, Backend], *tensor.Tensor[float64, Backend]) {
	t.Helper()
	x, err := tensor.FromSlice([]float64{0.5, -1.2, 2.0, 0.3, 0.7, -0.4}, tensor.Shape{2, 3}, b)
	require.NoError(t, err)
	W1, err := tensor.FromSlice(append([]float64(nil), w1...), tensor.Shape{3, 4}, b)
	require.NoError(t, err)
	b1, err := tensor.FromSlice([]float64{0.1, -0.2, 0.05, 0.3}, tensor.Shape{1, 4}, b)
	require.NoError(t, err)
	W2, err := tensor.FromSlice([]float64{0.3, -0.7, 1.1, 0.2, -0.5, 0.9, 0.4, -0.6}, tensor.Shape{4, 2}, b)
	require.NoError(t, err)
	y, err := tensor.FromSlice([]float64{1, -1, 0.5, 2}, tensor.Shape{2, 2}, b)
	require.NoError(t, err)

	h := tensor.New[float64](b.ReLU(x.MatMul(W1).Add(b1).Raw()), b)
	diff := h.MatMul(W2).Sub(y)
	return diff.Mul(diff).Sum(), W1
}

func TestGradientCheck_FiniteDifference(t *testing.T) {
	w1 := []float64{
		0.2, -0.3, 0.5, 0.1,
		-0.4, 0.6, 0.25, -0.15,
		0.35, 0.05, -0.45, 0.7,
	}

	b := autodiff.New(cpu.New())
	b.Tape().StartRecording()
	loss, W1 := twoLayer(t, b, w1)
	grads := autodiff.Backward(loss, b)
	analytic := grads[W1.Raw()].Float64s()

	eval := autodiff.New(cpu.New())
	f := func(w []float64) float64 {
		l, _ := twoLayer(t, eval, w)
		return l.Item()
	}
	numeric := fd.Gradient(nil, f, w1, &fd.Settings{Formula: fd.Central, Step: 1e-6})

	require.True(t, floats.EqualApprox(analytic, numeric, 1e-5),
		"analytic %v vs numeric %v", analytic, numeric)
}
