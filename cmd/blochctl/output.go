// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/blochlab/cmatrix"
	"github.com/katalvlaran/blochlab/model"
	"github.com/katalvlaran/blochlab/session"
)

func (a *app) num(x float64) string {
	return cmatrix.Format(complex(x, 0), a.cfg.Numeric.Decimals)
}

func (a *app) vec(v [3]float64) string {
	return "[" + a.num(v[0]) + " " + a.num(v[1]) + " " + a.num(v[2]) + "]"
}

func (a *app) grid(rows [][]complex128) string {
	cells := make([]string, 0, len(rows))
	for _, row := range rows {
		parts := make([]string, len(row))
		for j, z := range row {
			parts[j] = cmatrix.Format(z, a.cfg.Numeric.Decimals)
		}
		cells = append(cells, strings.Join(parts, ", "))
	}

	return "[" + strings.Join(cells, "; ") + "]"
}

// printState writes one line per step: label, Bloch vector, purity.
func (a *app) printState(w io.Writer, step string, snap session.Snapshot) {
	fmt.Fprintf(w, "%-10s bloch %s  purity %s  rho %s\n",
		step, a.vec(snap.Bloch), a.num(snap.Purity), a.grid(snap.Values))
}

// printHistory writes the name list and the visible arcs.
func (a *app) printHistory(w io.Writer, snap session.Snapshot) {
	fmt.Fprintf(w, "history (%d/%d):\n", snap.Current+1, snap.Len)
	for _, name := range snap.Names {
		fmt.Fprintf(w, "  %s\n", name)
	}
	if len(snap.Paths) == 0 {
		return
	}
	fmt.Fprintln(w, "paths:")
	for _, p := range snap.Paths {
		a.printPath(w, p)
	}
}

func (a *app) printPath(w io.Writer, p model.GatePath) {
	fmt.Fprintf(w, "  %s -> %s  axis %s  angle %s\n",
		a.vec(p.Start), a.vec(p.End()), a.vec(p.Axis), a.num(p.Angle))
}
