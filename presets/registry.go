// SPDX-License-Identifier: MIT

package presets

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/katalvlaran/blochlab/model"
)

//go:embed presets.yaml
var builtin []byte

// Registry builds preset instances by name. Names are case-insensitive.
// A Registry is immutable after Parse and safe for concurrent use.
type Registry struct {
	gates    []MatrixSpec
	states   []MatrixSpec
	channels []ChannelSpec
	opts     []model.Option
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the registry of the built-in catalog. It panics if the
// embedded catalog is invalid, which the package tests rule out.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := Parse(builtin)
		if err != nil {
			panic(err)
		}
		defaultReg = r
	})

	return defaultReg
}

// Parse decodes a catalog and checks every entry by building it once with
// opts. The same opts are applied to every instance the registry builds.
// Errors: ErrInvalidCatalog, ErrInvalidPreset.
func Parse(data []byte, opts ...model.Option) (*Registry, error) {
	c, err := decode(data)
	if err != nil {
		return nil, err
	}
	r := &Registry{
		gates:    c.Gates,
		states:   c.States,
		channels: c.Channels,
		opts:     opts,
	}

	// Stage 1: gates and states evaluate to valid matrices.
	for _, s := range r.gates {
		if err := check(s.gate(opts).Matrix, "gate", s.Name, s.Rows, s.mult()); err != nil {
			return nil, err
		}
	}
	for _, s := range r.states {
		if err := check(s.state(opts).Matrix, "state", s.Name, s.Rows, s.mult()); err != nil {
			return nil, err
		}
	}

	// Stage 2: channel elements evaluate and the set is complete.
	for _, c := range r.channels {
		op := c.channel(opts)
		for i, el := range op.Elements() {
			spec := c.Elements[i]
			if err := check(el, "channel", c.Name, spec.Rows, spec.mult()); err != nil {
				return nil, err
			}
		}
		if !op.IsComplete() {
			return nil, fmt.Errorf("%w: channel %q: %w", ErrInvalidPreset, c.Name, model.ErrIncomplete)
		}
	}

	return r, nil
}

// WithOptions returns a registry over the same catalog that builds with
// opts instead.
func (r *Registry) WithOptions(opts ...model.Option) *Registry {
	cp := *r
	cp.opts = opts

	return &cp
}

// Gate builds the named gate.
// Errors: ErrUnknownPreset.
func (r *Registry) Gate(name string) (*model.GateMatrix, error) {
	s, ok := findSpec(r.gates, name)
	if !ok {
		return nil, fmt.Errorf("Registry.Gate %q: %w", name, ErrUnknownPreset)
	}

	return s.gate(r.opts), nil
}

// State builds the named state.
// Errors: ErrUnknownPreset.
func (r *Registry) State(name string) (*model.DensityMatrix, error) {
	s, ok := findSpec(r.states, name)
	if !ok {
		return nil, fmt.Errorf("Registry.State %q: %w", name, ErrUnknownPreset)
	}

	return s.state(r.opts), nil
}

// Channel builds the named noise channel.
// Errors: ErrUnknownPreset.
func (r *Registry) Channel(name string) (*model.QuantumOperation, error) {
	for _, c := range r.channels {
		if strings.EqualFold(c.Name, name) {
			return c.channel(r.opts), nil
		}
	}

	return nil, fmt.Errorf("Registry.Channel %q: %w", name, ErrUnknownPreset)
}

// Gates builds every gate in catalog order.
func (r *Registry) Gates() []*model.GateMatrix {
	out := make([]*model.GateMatrix, len(r.gates))
	for i, s := range r.gates {
		out[i] = s.gate(r.opts)
	}

	return out
}

// States builds every state in catalog order.
func (r *Registry) States() []*model.DensityMatrix {
	out := make([]*model.DensityMatrix, len(r.states))
	for i, s := range r.states {
		out[i] = s.state(r.opts)
	}

	return out
}

// Channels builds every channel in catalog order.
func (r *Registry) Channels() []*model.QuantumOperation {
	out := make([]*model.QuantumOperation, len(r.channels))
	for i, c := range r.channels {
		out[i] = c.channel(r.opts)
	}

	return out
}

// GateNames lists the gate names in catalog order.
func (r *Registry) GateNames() []string { return specNames(r.gates) }

// StateNames lists the state names in catalog order.
func (r *Registry) StateNames() []string { return specNames(r.states) }

// ChannelNames lists the channel names in catalog order.
func (r *Registry) ChannelNames() []string {
	out := make([]string, len(r.channels))
	for i, c := range r.channels {
		out[i] = c.Name
	}

	return out
}

func findSpec(specs []MatrixSpec, name string) (MatrixSpec, bool) {
	for _, s := range specs {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}

	return MatrixSpec{}, false
}

func specNames(specs []MatrixSpec) []string {
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.Name
	}

	return out
}
