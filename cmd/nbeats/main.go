// Package main provides the nbeats command line tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "v0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nbeats",
		Short: "N-BEATS univariate forecasting",
		Long: `nbeats trains an N-BEATS style forecaster on synthetic series.

The network is a sequence of stacks of fully connected blocks. Each block
explains part of its input window (the backcast), passes the residual on and
contributes a partial forecast. Trend and seasonality blocks decode their
coefficients through fixed polynomial and Fourier bases, so the per-stack
forecasts are interpretable.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newTrainCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nbeats %s\n", version)
		},
	}
}
