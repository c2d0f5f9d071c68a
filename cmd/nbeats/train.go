package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/cpuid/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/born-ml/nbeats/internal/autodiff"
	"github.com/born-ml/nbeats/internal/backend/cpu"
	"github.com/born-ml/nbeats/internal/metrics"
	"github.com/born-ml/nbeats/internal/nbeats"
	"github.com/born-ml/nbeats/internal/nn"
	"github.com/born-ml/nbeats/internal/parallel"
	"github.com/born-ml/nbeats/internal/synth"
	"github.com/born-ml/nbeats/internal/tensor"
	"github.com/born-ml/nbeats/internal/train"
)

type trainOptions struct {
	backcast    int
	forecast    int
	blocks      int
	thetas      int
	stacks      []string
	steps       int
	batch       int
	lr          float32
	optimizer   string
	momentum    float32
	reportEvery int
	data        string
	noise       float64
	period      int
	seed        int64
	mode        string
	evalBatches int
	meanLoss    bool
	logLevel    string
	logFormat   string
}

func newTrainCmd() *cobra.Command {
	o := trainOptions{}
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a network on synthetic data",
		Long: `Train a network on a synthetic series and report the loss.

Data sources:
  ramp       a unit ramp shifted by a random offset in [0, 5)
  composite  level + trend + seasonal sine + Gaussian noise

With --mode eval the loop runs forward passes only and never updates weights.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), o.logLevel, o.logFormat)
			if err != nil {
				return err
			}
			return runTrain(cmd, o, logger)
		},
	}

	d := train.DefaultConfig()
	m := nbeats.DefaultConfig()
	f := cmd.Flags()
	f.IntVar(&o.backcast, "backcast", m.BackcastLength, "input window length")
	f.IntVar(&o.forecast, "forecast", m.ForecastLength, "forecast horizon")
	f.IntVar(&o.blocks, "blocks", m.NbBlocks, "blocks per stack")
	f.IntVar(&o.thetas, "thetas", m.Units, "hidden width and theta dimensionality")
	f.StringSliceVar(&o.stacks, "stacks", []string{"trend", "trend", "trend"}, "block type per stack (generic, trend, seasonality)")
	f.IntVar(&o.steps, "steps", d.Steps, "optimization steps")
	f.IntVar(&o.batch, "batch", d.BatchSize, "windows per step")
	f.Float32Var(&o.lr, "lr", d.LearningRate, "learning rate")
	f.StringVar(&o.optimizer, "optimizer", d.Optimizer, "optimizer (adam, sgd)")
	f.Float32Var(&o.momentum, "momentum", 0, "SGD momentum")
	f.IntVar(&o.reportEvery, "report-every", d.ReportEvery, "steps between progress reports")
	f.StringVar(&o.data, "data", "ramp", "synthetic data source (ramp, composite)")
	f.Float64Var(&o.noise, "noise", 0.1, "noise standard deviation for composite data")
	f.IntVar(&o.period, "period", d.Period, "seasonal period for data and MASE")
	f.Int64Var(&o.seed, "seed", m.Seed, "random seed for weights and data")
	f.StringVar(&o.mode, "mode", "train", "execution mode (train, eval)")
	f.IntVar(&o.evalBatches, "eval-batches", d.EvalBatches, "batches scored after the run")
	f.BoolVar(&o.meanLoss, "mean-loss", false, "average squared errors instead of summing them")
	f.StringVar(&o.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	f.StringVar(&o.logFormat, "log-format", "text", "log format (text, json)")
	return cmd
}

func newLogger(w io.Writer, level, format string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid --log-format %q (want text or json)", format)
	}
	return logger, nil
}

func newSource(o trainOptions) (synth.Source, error) {
	switch o.data {
	case "ramp":
		return synth.NewOffsetRamp(o.backcast, o.forecast, uint64(o.seed))
	case "composite":
		return synth.NewComposite(synth.CompositeConfig{
			BackcastLength: o.backcast,
			ForecastLength: o.forecast,
			Period:         float64(o.period),
			NoiseStd:       o.noise,
		}, uint64(o.seed))
	default:
		return nil, fmt.Errorf("unknown --data %q (want ramp or composite)", o.data)
	}
}

func runTrain(cmd *cobra.Command, o trainOptions, base *logrus.Logger) error {
	logger := base.WithField("run_id", uuid.NewString())

	blockTypes, err := nbeats.ParseBlockTypes(o.stacks)
	if err != nil {
		return fmt.Errorf("invalid --stacks: %w", err)
	}
	mode, err := train.ParseMode(o.mode)
	if err != nil {
		return fmt.Errorf("invalid --mode: %w", err)
	}

	backend := autodiff.New(cpu.New())
	net, err := nbeats.New(nbeats.Config{
		BackcastLength: o.backcast,
		ForecastLength: o.forecast,
		NbBlocks:       o.blocks,
		Units:          o.thetas,
		BlockTypes:     blockTypes,
		Seed:           o.seed,
	}, backend)
	if err != nil {
		return fmt.Errorf("build network: %w", err)
	}

	source, err := newSource(o)
	if err != nil {
		return err
	}

	reduction := nn.ReductionSum
	if o.meanLoss {
		reduction = nn.ReductionMean
	}
	reporter := train.NewLogReporter(logger, mode)
	trainer, err := train.New(train.Config{
		Steps:        o.steps,
		BatchSize:    o.batch,
		LearningRate: o.lr,
		ReportEvery:  o.reportEvery,
		Optimizer:    o.optimizer,
		Momentum:     o.momentum,
		Mode:         mode,
		EvalBatches:  o.evalBatches,
		Period:       o.period,
		Reduction:    reduction,
	}, net, backend, source, reporter)
	if err != nil {
		return fmt.Errorf("configure training: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"stacks":     strings.Join(o.stacks, ","),
		"blocks":     o.blocks,
		"thetas":     o.thetas,
		"backcast":   o.backcast,
		"forecast":   o.forecast,
		"parameters": len(net.Parameters()),
		"backend":    backend.Name(),
		"cpu":        cpuid.CPU.BrandName,
		"workers":    parallel.Workers(),
		"data":       o.data,
		"mode":       mode.String(),
	}).Info("Starting training")

	summary, err := trainer.Run(cmd.Context())
	reporter.ReportSummary(summary)
	if err != nil {
		return fmt.Errorf("training: %w", err)
	}

	report, err := trainer.Evaluate()
	switch {
	case errors.Is(err, metrics.ErrPeriod):
		logger.WithError(err).Warn("Skipping evaluation: increase --eval-batches or lower --period")
	case err != nil:
		return err
	default:
		reporter.ReportEval(report)
	}

	x, _ := source.Batch(1)
	xt, err := tensor.FromRows[float32](x, backend)
	if err != nil {
		return err
	}
	d := net.Decompose(xt)
	for j, s := range d.Stacks {
		logger.WithFields(logrus.Fields{
			"stack":    j,
			"type":     s.Type.String(),
			"forecast": s.Forecast.Rows()[0],
		}).Debug("Stack forecast")
	}
	logger.WithFields(logrus.Fields{
		"input":    x[0],
		"forecast": d.Forecast.Rows()[0],
	}).Info("Sample forecast")
	return nil
}
