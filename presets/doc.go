// SPDX-License-Identifier: MIT

// Package presets provides the built-in gates, states and noise channels.
//
// The catalog is an embedded YAML file (presets.yaml) parsed once into a
// Registry. A Registry is a factory: every Gate, State or Channel call
// builds a fresh instance, so callers may mutate what they get without
// touching the catalog or each other.
//
//	reg := presets.Default()
//	h, _ := reg.Gate("h")
//	rho, _ := reg.State("ket0")
//	_ = rho.ApplyGate(h)
//
// Parse accepts a catalog in the same format for custom sets. Every entry
// is checked for shape and physical validity when parsed.
package presets
