package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/nbeats/internal/autodiff"
	"github.com/born-ml/nbeats/internal/backend/cpu"
	"github.com/born-ml/nbeats/internal/nn"
	"github.com/born-ml/nbeats/internal/optim"
	"github.com/born-ml/nbeats/internal/tensor"
)

type Backend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func param(t *testing.T, b Backend, data ...float32) *nn.Parameter[Backend] {
	t.Helper()
	x, err := tensor.FromSlice(data, tensor.Shape{len(data)}, b)
	require.NoError(t, err)
	return nn.NewParameter("p", x)
}

func grad(t *testing.T, data ...float32) *tensor.RawTensor {
	t.Helper()
	g, err := tensor.NewRaw(tensor.Shape{len(data)}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(g.AsFloat32(), data)
	return g
}

func TestSGD_Defaults(t *testing.T) {
	sgd := optim.NewSGD[Backend](nil, optim.SGDConfig{})
	assert.InDelta(t, 0.01, sgd.GetLR(), 1e-9)
	sgd.SetLR(0.5)
	assert.InDelta(t, 0.5, sgd.GetLR(), 1e-9)
}

func TestSGD_Step(t *testing.T) {
	b := autodiff.New(cpu.New())
	p := param(t, b, 1, 2)
	skipped := param(t, b, 5)

	sgd := optim.NewSGD([]*nn.Parameter[Backend]{p, skipped}, optim.SGDConfig{LR: 0.1})
	sgd.Step(map[*tensor.RawTensor]*tensor.RawTensor{p.Tensor().Raw(): grad(t, 1, -2)})

	assert.InDeltaSlice(t, []float32{0.9, 2.2}, p.Tensor().Data(), 1e-6)
	assert.Equal(t, []float32{5}, skipped.Tensor().Data())
}

func TestSGD_Momentum(t *testing.T) {
	b := autodiff.New(cpu.New())
	p := param(t, b, 0)
	sgd := optim.NewSGD([]*nn.Parameter[Backend]{p}, optim.SGDConfig{LR: 1, Momentum: 0.5})

	g := map[*tensor.RawTensor]*tensor.RawTensor{p.Tensor().Raw(): grad(t, 1)}
	sgd.Step(g) // v=1, p=-1
	sgd.Step(g) // v=1.5, p=-2.5
	assert.InDelta(t, -2.5, p.Tensor().Data()[0], 1e-6)
}

func TestAdam_Defaults(t *testing.T) {
	adam := optim.NewAdam[Backend](nil, optim.AdamConfig{})
	assert.InDelta(t, 0.001, adam.GetLR(), 1e-9)
}

func TestAdam_FirstStepMovesByLR(t *testing.T) {
	b := autodiff.New(cpu.New())
	p := param(t, b, 1, 1)
	adam := optim.NewAdam([]*nn.Parameter[Backend]{p}, optim.AdamConfig{LR: 0.1})

	// After bias correction the first update is lr * sign(grad).
	adam.Step(map[*tensor.RawTensor]*tensor.RawTensor{p.Tensor().Raw(): grad(t, 3, -0.2)})

	assert.InDeltaSlice(t, []float32{0.9, 1.1}, p.Tensor().Data(), 1e-5)
	assert.Equal(t, 1, adam.Steps())
}

func TestAdam_MinimizesQuadratic(t *testing.T) {
	b := autodiff.New(cpu.New())
	b.Tape().StartRecording()
	p := param(t, b, 4, -3)
	target, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, b)
	require.NoError(t, err)

	adam := optim.NewAdam([]*nn.Parameter[Backend]{p}, optim.AdamConfig{LR: 0.1})
	mse := nn.NewMSELoss(b, nn.ReductionSum)

	var first, last float32
	for i := 0; i < 300; i++ {
		adam.ZeroGrad()
		loss := mse.Forward(p.Tensor(), target)
		if i == 0 {
			first = loss.Item()
		}
		last = loss.Item()
		adam.Step(autodiff.Backward(loss, b))
		b.Tape().Clear()
	}

	assert.Less(t, last, first/100)
	assert.InDeltaSlice(t, []float32{1, 2}, p.Tensor().Data(), 0.1)
}

func TestZeroGrad(t *testing.T) {
	b := autodiff.New(cpu.New())
	p := param(t, b, 1)
	p.SetGrad(tensor.Ones[float32](tensor.Shape{1}, b))

	var opt optim.Optimizer = optim.NewAdam([]*nn.Parameter[Backend]{p}, optim.AdamConfig{})
	opt.ZeroGrad()
	assert.Nil(t, p.Grad())
}
