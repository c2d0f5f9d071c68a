package train

import (
	"errors"
	"fmt"
	"strings"

	"github.com/born-ml/nbeats/internal/metrics"
	"github.com/born-ml/nbeats/internal/nn"
)

// Common errors.
var (
	ErrInvalidConfig    = errors.New("invalid training configuration")
	ErrShapeMismatch    = errors.New("batch shape mismatch")
	ErrNonFiniteLoss    = errors.New("loss is not finite")
	ErrUnknownMode      = errors.New("unknown execution mode")
	ErrUnknownOptimizer = errors.New("unknown optimizer")
)

// Mode selects what a training step does.
type Mode int

const (
	// ModeTrain records the tape and updates parameters.
	ModeTrain Mode = iota
	// ModeEval runs forward passes only; parameters are never touched.
	ModeEval
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeTrain:
		return "train"
	case ModeEval:
		return "eval"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "train" or "eval".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "train":
		return ModeTrain, nil
	case "eval":
		return ModeEval, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Optimizer names accepted by Config.Optimizer.
const (
	OptimizerAdam = "adam"
	OptimizerSGD  = "sgd"
)

// Config holds the training loop settings.
type Config struct {
	Steps        int          // optimization steps (default 100000)
	BatchSize    int          // windows per step (default 1)
	LearningRate float32      // default 1e-4
	ReportEvery  int          // report interval in steps (default 1000)
	Optimizer    string       // "adam" (default) or "sgd"
	Momentum     float32      // SGD momentum
	Mode         Mode         // ModeTrain or ModeEval
	EvalBatches  int          // batches used by Evaluate (default 10)
	Period       int          // seasonal lag for MASE (default metrics.DefaultPeriod)
	Reduction    nn.Reduction // loss reduction (default sum)
}

// DefaultConfig returns the reference training settings.
func DefaultConfig() Config {
	return Config{
		Steps:        100000,
		BatchSize:    1,
		LearningRate: 1e-4,
		ReportEvery:  1000,
		Optimizer:    OptimizerAdam,
		Mode:         ModeTrain,
		EvalBatches:  10,
		Period:       metrics.DefaultPeriod,
		Reduction:    nn.ReductionSum,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Steps == 0 {
		c.Steps = d.Steps
	}
	if c.BatchSize == 0 {
		c.BatchSize = d.BatchSize
	}
	if c.LearningRate == 0 {
		c.LearningRate = d.LearningRate
	}
	if c.ReportEvery == 0 {
		c.ReportEvery = d.ReportEvery
	}
	if c.Optimizer == "" {
		c.Optimizer = d.Optimizer
	}
	if c.EvalBatches == 0 {
		c.EvalBatches = d.EvalBatches
	}
	if c.Period == 0 {
		c.Period = d.Period
	}
	return c
}

// Validate checks a configuration after defaults are applied.
func (c Config) Validate() error {
	switch {
	case c.Steps < 0:
		return fmt.Errorf("%w: steps must not be negative, got %d", ErrInvalidConfig, c.Steps)
	case c.BatchSize <= 0:
		return fmt.Errorf("%w: batch size must be positive, got %d", ErrInvalidConfig, c.BatchSize)
	case c.LearningRate <= 0:
		return fmt.Errorf("%w: learning rate must be positive, got %g", ErrInvalidConfig, c.LearningRate)
	case c.ReportEvery <= 0:
		return fmt.Errorf("%w: report interval must be positive, got %d", ErrInvalidConfig, c.ReportEvery)
	case c.EvalBatches <= 0:
		return fmt.Errorf("%w: eval batches must be positive, got %d", ErrInvalidConfig, c.EvalBatches)
	case c.Period <= 0:
		return fmt.Errorf("%w: period must be positive, got %d", ErrInvalidConfig, c.Period)
	case c.Momentum < 0 || c.Momentum >= 1:
		return fmt.Errorf("%w: momentum must be in [0, 1), got %g", ErrInvalidConfig, c.Momentum)
	}
	if c.Mode != ModeTrain && c.Mode != ModeEval {
		return fmt.Errorf("%w: %d", ErrUnknownMode, int(c.Mode))
	}
	if c.Optimizer != OptimizerAdam && c.Optimizer != OptimizerSGD {
		return fmt.Errorf("%w: %q (want adam or sgd)", ErrUnknownOptimizer, c.Optimizer)
	}
	return nil
}
