// SPDX-License-Identifier: MIT

// Package session owns one live DensityMatrix and its History behind a
// single mutex.
//
// Model types are not safe for concurrent use and their operations do not
// interleave safely at a finer grain, so every Session method holds the
// lock for the whole edit: mutate the live state, then record it.
//
// Each mutation is traced with OpenTelemetry (tracer "blochlab.session")
// and counted on optional Prometheus collectors (see Metrics).
package session
