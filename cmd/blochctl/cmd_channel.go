// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newChannelCmd(a *app) *cobra.Command {
	var (
		state   string
		channel string
		sets    []string
		times   int
	)
	cmd := &cobra.Command{
		Use:   "channel",
		Short: "Apply a noise channel to a state repeatedly",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			op, err := a.reg.Channel(channel)
			if err != nil {
				return err
			}
			for _, raw := range sets {
				as, err := parseAssignment(raw)
				if err != nil {
					return err
				}
				if err := op.SetParameter(as.name, as.expr); err != nil {
					return fmt.Errorf("channel %s: %s: %w", channel, op.Message(), err)
				}
			}

			s, err := a.newSession(state)
			if err != nil {
				return err
			}
			a.printState(w, "start", s.Snapshot())
			for k := 1; k <= times; k++ {
				if err := s.ApplyOperation(ctx, op); err != nil {
					return fmt.Errorf("apply %s: %w", op.Name(), err)
				}
				a.printState(w, fmt.Sprintf("#%d", k), s.Snapshot())
			}
			a.printHistory(w, s.Snapshot())

			return nil
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "Initial preset state (default from config)")
	cmd.Flags().StringVar(&channel, "channel", "depolarizing", "Preset noise channel")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Parameter assignment name=expr, repeatable")
	cmd.Flags().IntVar(&times, "times", 1, "Number of applications")

	return cmd
}
