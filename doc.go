// SPDX-License-Identifier: MIT

// Package blochlab is a single-qubit state algebra core: density matrices,
// unitary gates and Kraus channels as constrained complex matrices that are
// validated on every edit, with Bloch-sphere geometry and a linear
// undo/redo history.
//
// Layout:
//
//	cmatrix/  complex dense matrices, predicates, Pauli operators, eigen
//	latex/    evaluator for the LaTeX subset used in matrix cells
//	model/    Matrix engine, GateMatrix, DensityMatrix, StateVector,
//	          QuantumOperation, GatePath
//	history/  undo/redo list with path checkpoints
//	presets/  built-in gates, states and noise channels (embedded YAML)
//	session/  live state + history under one lock, metrics and tracing
//	config/   YAML configuration
//	cmd/blochctl  command-line front end
//
// A typical edit:
//
//	reg := presets.Default()
//	rho, _ := reg.State("ket0")
//	h, _ := reg.Gate("h")
//	if err := rho.ApplyGate(h); err != nil {
//		v := model.ValidityOf(err) // {IsValid: false, Message: ...}
//	}
//	rho.BlochVector() // [1 0 0]
package blochlab
