// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/blochlab/model"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		rows string
		mult string
		kind string
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a matrix as a gate, density matrix or state vector",
		Long: `Evaluate a grid of LaTeX expressions and validate it.

Rows are separated by ';' and cells by ','. A state vector is a column:
--kind state --rows '\frac{1}{\sqrt{2}};\frac{1}{\sqrt{2}}'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			grid, err := parseRows(rows)
			if err != nil {
				return err
			}
			set, err := a.checker(kind)
			if err != nil {
				return err
			}

			v := model.ValidityOf(set(grid, mult))
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "valid: %t\n", v.IsValid)
			if !v.IsValid {
				fmt.Fprintf(w, "message: %s\n", v.Message)
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&rows, "rows", "", "Grid, rows separated by ';', cells by ','")
	cmd.Flags().StringVar(&mult, "mult", "1", "Multiplier expression")
	cmd.Flags().StringVar(&kind, "kind", "density", "One of density, gate, state, matrix")
	_ = cmd.MarkFlagRequired("rows")

	return cmd
}

// checker returns the SetFromExpressions of a fresh matrix of the kind.
func (a *app) checker(kind string) (func([][]string, string) error, error) {
	opts := a.modelOptions()
	switch kind {
	case "density":
		return model.NewDensityMatrix([][]string{{"1", "0"}, {"0", "0"}}, "1", "", nil, opts...).SetFromExpressions, nil
	case "gate":
		return model.NewGateMatrix([][]string{{"1", "0"}, {"0", "1"}}, "1", "", nil, opts...).SetFromExpressions, nil
	case "state":
		return model.NewStateVector([][]string{{"1"}, {"0"}}, "1", "", nil, opts...).SetFromExpressions, nil
	case "matrix":
		return func(g [][]string, m string) error {
			zeros := make([][]string, len(g))
			for i, row := range g {
				zeros[i] = make([]string, len(row))
				for j := range row {
					zeros[i][j] = "0"
				}
			}

			return model.NewMatrix(zeros, "1", "", nil, opts...).SetFromExpressions(g, m)
		}, nil
	default:
		return nil, fmt.Errorf("kind %q: %w", kind, errBadFlag)
	}
}
