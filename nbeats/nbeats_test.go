package nbeats_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/nbeats/autodiff"
	"github.com/born-ml/nbeats/backend/cpu"
	"github.com/born-ml/nbeats/nbeats"
	"github.com/born-ml/nbeats/tensor"
)

func TestPublicNetwork(t *testing.T) {
	backend := autodiff.New(cpu.New())

	cfg := nbeats.DefaultConfig()
	cfg.BlockTypes = []nbeats.BlockType{nbeats.Trend, nbeats.Seasonality, nbeats.Generic}
	cfg.NbLayers = 0
	net, err := nbeats.New(cfg, backend)
	require.NoError(t, err)

	x, err := tensor.FromRows[float32]([][]float64{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
	}, backend)
	require.NoError(t, err)

	residual, forecast := net.Forward(x)
	assert.Equal(t, tensor.Shape{2, 10}, residual.Shape())
	assert.Equal(t, tensor.Shape{2, 5}, forecast.Shape())

	d := net.Decompose(x)
	require.Len(t, d.Stacks, 3)
	assert.Equal(t, nbeats.Seasonality, d.Stacks[1].Type)

	window := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	pred, err := net.Predict(window)
	require.NoError(t, err)
	assert.InDeltaSlice(t, forecast.Rows()[0], pred, 1e-6)

	_, err = net.Predict(window[:3])
	assert.ErrorIs(t, err, nbeats.ErrShapeMismatch)
}

func TestPublicConfigErrors(t *testing.T) {
	cfg := nbeats.DefaultConfig()
	cfg.Units = 0
	_, err := nbeats.New(cfg, cpu.New())
	require.ErrorIs(t, err, nbeats.ErrInvalidConfig)

	var cerr *nbeats.ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "Units", cerr.Field)

	_, err = nbeats.ParseBlockTypes([]string{"trend", "wavelet"})
	assert.ErrorIs(t, err, nbeats.ErrUnknownBlockType)

	bt, err := nbeats.ParseBlockType(" Seasonality ")
	require.NoError(t, err)
	assert.Equal(t, nbeats.Seasonality, bt)
}

func TestPublicMetrics(t *testing.T) {
	yTrue := []float64{1, 2, 3, 4, 5}
	yPred := []float64{1.5, 2, 2.5, 4, 5.5}

	mse, err := nbeats.MSE(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, mse, 1e-12)

	// A fraction, not a percentage.
	smape, err := nbeats.SMAPE(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, (0.4+1/5.5+1/10.5)/5, smape, 1e-12)

	r, err := nbeats.Evaluate(yTrue, yPred, 1)
	require.NoError(t, err)
	assert.True(t, r.Finite())
	assert.InDelta(t, 0.3, r.MASE, 1e-12)

	_, err = nbeats.SMAPE(yTrue, yPred[:2])
	assert.ErrorIs(t, err, nbeats.ErrLengthMismatch)
	_, err = nbeats.MASE(yTrue, yPred, 5)
	assert.ErrorIs(t, err, nbeats.ErrPeriod)

	flat, err := nbeats.MASE([]float64{2, 2, 2}, []float64{1, 2, 3}, 1)
	require.NoError(t, err)
	assert.False(t, nbeats.IsFinite(flat))
	assert.True(t, math.IsInf(flat, 1))
}

func TestPublicAutodiff(t *testing.T) {
	backend := autodiff.New(cpu.New())
	x, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	backend.Tape().StartRecording()
	y := x.Mul(x).Sum()
	grads := autodiff.Backward(y, backend)
	backend.Tape().StopRecording()

	assert.Equal(t, []float32{2, 4, 6}, grads[x.Raw()].AsFloat32())
}
