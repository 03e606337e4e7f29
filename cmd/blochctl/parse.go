// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"strings"
)

var errBadFlag = errors.New("malformed flag value")

// gateSpec is a preset gate name with parameter overrides,
// written "rx:theta=\pi/4" or "u3:theta=1,phi=0,lambda=\pi".
type gateSpec struct {
	name   string
	params []assignment
}

type assignment struct {
	name, expr string
}

func parseGateSpec(s string) (gateSpec, error) {
	name, rest, hasParams := strings.Cut(strings.TrimSpace(s), ":")
	if name == "" {
		return gateSpec{}, fmt.Errorf("gate %q: %w", s, errBadFlag)
	}
	g := gateSpec{name: name}
	if !hasParams {
		return g, nil
	}
	for _, part := range strings.Split(rest, ",") {
		as, err := parseAssignment(part)
		if err != nil {
			return gateSpec{}, fmt.Errorf("gate %q: %w", s, err)
		}
		g.params = append(g.params, as)
	}

	return g, nil
}

// parseAssignment reads "name=expr".
func parseAssignment(s string) (assignment, error) {
	name, expr, ok := strings.Cut(s, "=")
	name, expr = strings.TrimSpace(name), strings.TrimSpace(expr)
	if !ok || name == "" || expr == "" {
		return assignment{}, fmt.Errorf("assignment %q: %w", s, errBadFlag)
	}

	return assignment{name: name, expr: expr}, nil
}

// parseRows reads a grid written row by row: "a,b;c,d". Cells are
// LaTeX expressions and must not contain ',' or ';'.
func parseRows(s string) ([][]string, error) {
	var rows [][]string
	for _, line := range strings.Split(s, ";") {
		var row []string
		for _, cell := range strings.Split(line, ",") {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				return nil, fmt.Errorf("rows %q: empty cell: %w", s, errBadFlag)
			}
			row = append(row, cell)
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("rows %q: ragged grid: %w", s, errBadFlag)
		}
		rows = append(rows, row)
	}

	return rows, nil
}
