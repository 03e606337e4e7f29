// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPresetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in gates, states and noise channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()

			fmt.Fprintln(w, "gates:")
			for i, g := range a.reg.Gates() {
				fmt.Fprintf(w, "  %-8s %s\n", a.reg.GateNames()[i], g.LabelWithParams())
			}
			fmt.Fprintln(w, "states:")
			for i, s := range a.reg.States() {
				fmt.Fprintf(w, "  %-8s %-14s bloch %s\n", a.reg.StateNames()[i], s.Label(), a.vec(s.BlochVector()))
			}
			fmt.Fprintln(w, "channels:")
			for i, c := range a.reg.Channels() {
				var params []string
				for _, p := range c.Params() {
					params = append(params, p.Name+"="+p.Expr)
				}
				fmt.Fprintf(w, "  %-18s %s %v\n", a.reg.ChannelNames()[i], c.Name(), params)
			}

			return nil
		},
	}
}
