// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/katalvlaran/blochlab/config"
	"github.com/katalvlaran/blochlab/model"
	"github.com/katalvlaran/blochlab/presets"
	"github.com/katalvlaran/blochlab/session"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	out, errOut io.Writer

	// persistent flags
	configPath string
	logLevel   string
	metrics    bool
	trace      bool

	// resolved in PersistentPreRunE
	cfg      *config.Config
	log      *slog.Logger
	reg      *presets.Registry
	promReg  *prometheus.Registry
	sessMet  *session.Metrics
	provider *sdktrace.TracerProvider
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "blochctl",
		Short: "Single-qubit state algebra on the Bloch sphere",
		Long: `blochctl evolves a single-qubit density matrix through gates and noise
channels, keeps an undo/redo history, and validates matrices.

Examples:
  blochctl presets
  blochctl evolve --state ket0 --gate h --gate 'rx:theta=\pi/4' --undo 1
  blochctl channel --state ket+ --channel depolarizing --set p=0.1 --times 3
  blochctl check --kind density --rows '1,0;0,0'`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.Context())
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Path to a YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"Override the log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.metrics, "metrics", false,
		"Print Prometheus metrics in text format after the command")
	root.PersistentFlags().BoolVar(&a.trace, "trace", false,
		"Print OpenTelemetry spans to stderr")

	root.AddCommand(
		newPresetsCmd(a),
		newEvolveCmd(a),
		newChannelCmd(a),
		newCheckCmd(a),
	)

	return root
}

// setup loads the configuration and builds the shared collaborators.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	// Stage 1: configuration.
	cfg := config.Default()
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath); err != nil {
			return err
		}
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if a.metrics {
		cfg.Metrics.Enabled = true
	}
	a.cfg = cfg
	a.log = cfg.Logger(a.errOut)

	// Stage 2: presets built with the numeric policy.
	a.reg = presets.Default().WithOptions(cfg.ModelOptions(a.log)...)

	// Stage 3: optional metrics and tracing.
	if cfg.Metrics.Enabled {
		a.promReg = prometheus.NewRegistry()
		a.sessMet = session.NewMetrics(a.promReg, cfg.Metrics.Namespace)
	}
	if a.trace {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(a.errOut), stdouttrace.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("trace exporter: %w", err)
		}
		a.provider = sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	}
	a.log.Debug("configuration loaded", "command", cmd.Name(), "convention", cfg.Numeric.Convention)

	return nil
}

func (a *app) teardown(ctx context.Context) error {
	if a.provider != nil {
		if ctx == nil {
			ctx = context.Background()
		}
		if err := a.provider.Shutdown(ctx); err != nil {
			return fmt.Errorf("trace shutdown: %w", err)
		}
	}
	if a.promReg == nil {
		return nil
	}
	mfs, err := a.promReg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(a.out, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	return nil
}

// newSession starts a session on the named preset state.
func (a *app) newSession(state string) (*session.Session, error) {
	if state == "" {
		state = a.cfg.Session.InitialState
	}
	initial, err := a.reg.State(state)
	if err != nil {
		return nil, err
	}
	opts := []session.Option{session.WithLogger(a.log), session.WithMetrics(a.sessMet)}
	if a.provider != nil {
		opts = append(opts, session.WithTracer(a.provider.Tracer("blochctl")))
	}

	return session.New(initial, opts...)
}

// modelOptions returns the numeric policy for ad-hoc matrices.
func (a *app) modelOptions() []model.Option { return a.cfg.ModelOptions(a.log) }
