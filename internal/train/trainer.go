// Package train runs the optimization loop for an N-BEATS network.
//
// A Trainer pulls windows from a BatchSource, applies one gradient step per
// batch and reports progress every ReportEvery steps:
//
//	backend := autodiff.New(cpu.New())
//	net, _ := nbeats.New(nbeats.DefaultConfig(), backend)
//	src, _ := synth.NewOffsetRamp(10, 5, 1)
//	tr, _ := train.New(train.DefaultConfig(), net, backend, src, train.NewLogReporter(nil, train.ModeTrain))
//	summary, err := tr.Run(ctx)
package train

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/born-ml/nbeats/internal/autodiff"
	"github.com/born-ml/nbeats/internal/metrics"
	"github.com/born-ml/nbeats/internal/nbeats"
	"github.com/born-ml/nbeats/internal/nn"
	"github.com/born-ml/nbeats/internal/optim"
	"github.com/born-ml/nbeats/internal/tensor"
)

// BatchSource supplies (input, target) windows. synth.Source satisfies it.
type BatchSource interface {
	Batch(size int) (x, y [][]float64)
}

// Summary describes a finished Run.
type Summary struct {
	Steps     int // steps completed
	FirstLoss float32
	FinalLoss float32
	Duration  time.Duration
	Mode      Mode
}

// Trainer owns the optimizer state for one network.
type Trainer[B autodiff.BackwardCapable] struct {
	cfg      Config
	net      *nbeats.Network[B]
	backend  B
	source   BatchSource
	reporter Reporter
	opt      optim.Optimizer
	loss     *nn.MSELoss[B]
}

// New creates a trainer. Zero config fields take DefaultConfig values.
// A nil reporter discards progress.
func New[B autodiff.BackwardCapable](
	cfg Config,
	net *nbeats.Network[B],
	backend B,
	source BatchSource,
	reporter Reporter,
) (*Trainer[B], error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if net == nil || source == nil {
		return nil, fmt.Errorf("%w: network and batch source are required", ErrInvalidConfig)
	}
	if reporter == nil {
		reporter = ReporterFunc(func(int, float32) {})
	}

	var opt optim.Optimizer
	switch cfg.Optimizer {
	case OptimizerSGD:
		opt = optim.NewSGD(net.Parameters(), optim.SGDConfig{LR: cfg.LearningRate, Momentum: cfg.Momentum})
	default:
		opt = optim.NewAdam(net.Parameters(), optim.AdamConfig{LR: cfg.LearningRate})
	}

	return &Trainer[B]{
		cfg:      cfg,
		net:      net,
		backend:  backend,
		source:   source,
		reporter: reporter,
		opt:      opt,
		loss:     nn.NewMSELoss(backend, cfg.Reduction),
	}, nil
}

// Config returns the effective configuration.
func (t *Trainer[B]) Config() Config {
	return t.cfg
}

// Optimizer returns the optimizer driving parameter updates.
func (t *Trainer[B]) Optimizer() optim.Optimizer {
	return t.opt
}

// Step runs one step on a batch and returns its loss.
//
// In ModeTrain the sequence is: zero grads, clear tape, forward, loss,
// backward, optimizer update. In ModeEval only forward and loss run.
// A non-finite loss aborts the step before any parameter is changed.
func (t *Trainer[B]) Step(x, y [][]float64) (float32, error) {
	xt, yt, err := t.tensors(x, y)
	if err != nil {
		return 0, err
	}

	tape := t.backend.GetTape()
	tape.Clear()
	if t.cfg.Mode == ModeEval {
		tape.StopRecording()
		_, forecast := t.net.Forward(xt)
		return t.checkLoss(t.loss.Forward(forecast, yt).Item())
	}

	t.opt.ZeroGrad()
	tape.StartRecording()
	defer func() {
		tape.StopRecording()
		tape.Clear()
	}()

	_, forecast := t.net.Forward(xt)
	lossTensor := t.loss.Forward(forecast, yt)
	loss, err := t.checkLoss(lossTensor.Item())
	if err != nil {
		return loss, err
	}

	grads := autodiff.Backward(lossTensor, t.backend)
	nn.CollectGrads(t.net.Parameters(), grads)
	t.opt.Step(grads)
	return loss, nil
}

// Run executes cfg.Steps steps, reporting at step 0 and every ReportEvery
// steps. It stops early when ctx is cancelled and returns the partial summary
// together with ctx.Err().
func (t *Trainer[B]) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	s := Summary{Mode: t.cfg.Mode}

	for step := 0; step < t.cfg.Steps; step++ {
		if err := ctx.Err(); err != nil {
			s.Duration = time.Since(start)
			return s, err
		}

		x, y := t.source.Batch(t.cfg.BatchSize)
		loss, err := t.Step(x, y)
		if err != nil {
			s.Duration = time.Since(start)
			return s, fmt.Errorf("step %d: %w", step, err)
		}

		if step == 0 {
			s.FirstLoss = loss
		}
		s.FinalLoss = loss
		s.Steps = step + 1

		if step%t.cfg.ReportEvery == 0 {
			t.reporter.Report(step, loss)
		}
	}

	s.Duration = time.Since(start)
	return s, nil
}

// Evaluate forecasts EvalBatches fresh batches without recording and scores
// the concatenated targets against the concatenated forecasts.
func (t *Trainer[B]) Evaluate() (metrics.Report, error) {
	tape := t.backend.GetTape()
	tape.StopRecording()
	tape.Clear()

	var yTrue, yPred []float64
	for i := 0; i < t.cfg.EvalBatches; i++ {
		x, y := t.source.Batch(t.cfg.BatchSize)
		xt, _, err := t.tensors(x, y)
		if err != nil {
			return metrics.Report{}, fmt.Errorf("eval batch %d: %w", i, err)
		}
		_, forecast := t.net.Forward(xt)
		for b, row := range forecast.Rows() {
			yTrue = append(yTrue, y[b]...)
			yPred = append(yPred, row...)
		}
	}

	report, err := metrics.Evaluate(yTrue, yPred, t.cfg.Period)
	if err != nil {
		return metrics.Report{}, fmt.Errorf("evaluate: %w", err)
	}
	return report, nil
}

func (t *Trainer[B]) checkLoss(loss float32) (float32, error) {
	if math.IsNaN(float64(loss)) || math.IsInf(float64(loss), 0) {
		return loss, fmt.Errorf("%w: %v", ErrNonFiniteLoss, loss)
	}
	return loss, nil
}

// tensors converts a batch to [batch, backcast] and [batch, forecast] tensors.
func (t *Trainer[B]) tensors(x, y [][]float64) (xt, yt *tensor.Tensor[float32, B], err error) {
	cfg := t.net.Config()
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("%w: %d inputs but %d targets", ErrShapeMismatch, len(x), len(y))
	}
	if xt, err = tensor.FromRows[float32](x, t.backend); err != nil {
		return nil, nil, fmt.Errorf("%w: inputs: %v", ErrShapeMismatch, err)
	}
	if err = t.net.Check(xt); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrShapeMismatch, err)
	}
	if yt, err = tensor.FromRows[float32](y, t.backend); err != nil {
		return nil, nil, fmt.Errorf("%w: targets: %v", ErrShapeMismatch, err)
	}
	if yt.Shape()[1] != cfg.ForecastLength {
		return nil, nil, fmt.Errorf("%w: targets have %d points, expected %d",
			ErrShapeMismatch, yt.Shape()[1], cfg.ForecastLength)
	}
	return xt, yt, nil
}
