// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/blochlab/model"
)

func newEvolveCmd(a *app) *cobra.Command {
	var (
		state string
		gates []string
		undo  int
		redo  int
	)
	cmd := &cobra.Command{
		Use:   "evolve",
		Short: "Apply gates to a state and walk the history",
		Long: `Apply gates in order, then undo and redo steps.

Gate values take the form name[:param=expr,...], for example
'rx:theta=\pi/4' or 'u3:theta=1,phi=0,lambda=\pi'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			// Stage 1: build every gate before touching the session.
			built := make([]*model.GateMatrix, 0, len(gates))
			for _, raw := range gates {
				g, err := a.buildGate(raw)
				if err != nil {
					return err
				}
				built = append(built, g)
			}

			s, err := a.newSession(state)
			if err != nil {
				return err
			}
			a.printState(w, "start", s.Snapshot())

			// Stage 2: apply.
			for _, g := range built {
				if err := s.ApplyGate(ctx, g); err != nil {
					return fmt.Errorf("apply %s: %w", g.Label(), err)
				}
				a.printState(w, g.Label(), s.Snapshot())
			}

			// Stage 3: navigate.
			for k := 0; k < undo; k++ {
				if err := s.Undo(ctx); err != nil {
					return err
				}
				a.printState(w, "undo", s.Snapshot())
			}
			for k := 0; k < redo; k++ {
				if err := s.Redo(ctx); err != nil {
					return err
				}
				a.printState(w, "redo", s.Snapshot())
			}

			a.printHistory(w, s.Snapshot())

			return nil
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "Initial preset state (default from config)")
	cmd.Flags().StringArrayVar(&gates, "gate", nil, "Gate to apply, repeatable")
	cmd.Flags().IntVar(&undo, "undo", 0, "Number of undo steps after the gates")
	cmd.Flags().IntVar(&redo, "redo", 0, "Number of redo steps after the undos")

	return cmd
}

// buildGate resolves a gate spec against the registry.
func (a *app) buildGate(raw string) (*model.GateMatrix, error) {
	spec, err := parseGateSpec(raw)
	if err != nil {
		return nil, err
	}
	g, err := a.reg.Gate(spec.name)
	if err != nil {
		return nil, err
	}
	for _, p := range spec.params {
		if err := g.SetParameter(p.name, p.expr); err != nil {
			return nil, fmt.Errorf("gate %s: %s: %w", spec.name, model.ValidityOf(err).Message, err)
		}
	}

	return g, nil
}
