package train

import (
	"github.com/sirupsen/logrus"

	"github.com/born-ml/nbeats/internal/metrics"
)

// Reporter receives periodic training progress.
type Reporter interface {
	Report(step int, loss float32)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(step int, loss float32)

// Report calls f(step, loss).
func (f ReporterFunc) Report(step int, loss float32) {
	f(step, loss)
}

// LogReporter writes progress to a logrus logger.
type LogReporter struct {
	logger logrus.FieldLogger
	mode   Mode
}

// NewLogReporter creates a reporter. A nil logger uses logrus.New().
func NewLogReporter(logger logrus.FieldLogger, mode Mode) *LogReporter {
	if logger == nil {
		logger = logrus.New()
	}
	return &LogReporter{logger: logger, mode: mode}
}

// Report logs the step and loss.
func (r *LogReporter) Report(step int, loss float32) {
	r.logger.WithFields(logrus.Fields{
		"step": step,
		"loss": loss,
		"mode": r.mode.String(),
	}).Info("Training progress")
}

// ReportEval logs an evaluation report.
func (r *LogReporter) ReportEval(report metrics.Report) {
	entry := r.logger.WithFields(logrus.Fields(report.Fields()))
	if !report.Finite() {
		entry.Warn("Evaluation produced non-finite metrics")
		return
	}
	entry.Info("Evaluation complete")
}

// ReportSummary logs the outcome of a run.
func (r *LogReporter) ReportSummary(s Summary) {
	r.logger.WithFields(logrus.Fields{
		"steps":      s.Steps,
		"first_loss": s.FirstLoss,
		"final_loss": s.FinalLoss,
		"duration":   s.Duration.String(),
		"mode":       s.Mode.String(),
	}).Info("Training finished")
}
