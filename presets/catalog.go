// SPDX-License-Identifier: MIT

package presets

import (
	"bytes"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/blochlab/cmatrix"
	"github.com/katalvlaran/blochlab/model"
)

// catalog is the decoded YAML document.
type catalog struct {
	Gates    []MatrixSpec  `yaml:"gates" validate:"dive"`
	States   []MatrixSpec  `yaml:"states" validate:"dive"`
	Channels []ChannelSpec `yaml:"channels" validate:"dive"`
}

// ParamSpec describes one parameter. Range, when set, is the closed real
// interval the parameter must stay in.
type ParamSpec struct {
	Name     string    `yaml:"name" validate:"required"`
	Expr     string    `yaml:"expr" validate:"required"`
	Label    string    `yaml:"label"`
	Editable bool      `yaml:"editable"`
	Range    []float64 `yaml:"range,omitempty" validate:"omitempty,len=2"`
}

// MatrixSpec describes a gate, a state, or one Kraus operator.
type MatrixSpec struct {
	Name   string      `yaml:"name,omitempty"`
	Label  string      `yaml:"label"`
	Mult   string      `yaml:"mult,omitempty"`
	Rows   [][]string  `yaml:"rows" validate:"required,min=1,dive,min=1,dive,required"`
	Params []ParamSpec `yaml:"params,omitempty" validate:"dive"`
}

// ChannelSpec describes a noise channel.
type ChannelSpec struct {
	Name     string       `yaml:"name" validate:"required"`
	Title    string       `yaml:"title" validate:"required"`
	Label    string       `yaml:"label,omitempty"`
	Params   []ParamSpec  `yaml:"params,omitempty" validate:"dive"`
	Elements []MatrixSpec `yaml:"elements" validate:"required,min=1,dive"`
}

var validate = validator.New()

// decode parses and structurally validates a catalog.
func decode(data []byte) (*catalog, error) {
	var c catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	for _, g := range c.Gates {
		if g.Name == "" {
			return nil, fmt.Errorf("%w: gate without a name", ErrInvalidCatalog)
		}
	}
	for _, s := range c.States {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: state without a name", ErrInvalidCatalog)
		}
	}

	return &c, nil
}

func (s MatrixSpec) mult() string {
	if s.Mult == "" {
		return "1"
	}

	return s.Mult
}

// buildParams builds fresh parameters; a Range becomes a real-range constraint.
func buildParams(specs []ParamSpec) []*model.Param {
	if len(specs) == 0 {
		return nil
	}
	out := make([]*model.Param, len(specs))
	for i, ps := range specs {
		p := model.NewParam(ps.Name, ps.Expr, ps.Label, ps.Editable)
		if len(ps.Range) == 2 {
			p.Constrain(model.RealRange(ps.Range[0], ps.Range[1], cmatrix.DefaultAbsTol))
		}
		out[i] = p
	}

	return out
}

func (s MatrixSpec) gate(opts []model.Option) *model.GateMatrix {
	return model.NewGateMatrix(s.Rows, s.mult(), s.Label, buildParams(s.Params), opts...)
}

func (s MatrixSpec) state(opts []model.Option) *model.DensityMatrix {
	return model.NewDensityMatrix(s.Rows, s.mult(), s.Label, buildParams(s.Params), opts...)
}

func (c ChannelSpec) channel(opts []model.Option) *model.QuantumOperation {
	els := make([]model.ElementSpec, len(c.Elements))
	for i, e := range c.Elements {
		els[i] = model.ElementSpec{Exprs: e.Rows, Mult: e.mult(), Label: e.Label}
	}

	return model.NewQuantumOperation(c.Title, c.Label, els, buildParams(c.Params), opts...)
}

// check evaluates m's own expressions under its kind; construction would
// otherwise hide a bad entry behind the fallback grid.
func check(m *model.Matrix, kind, name string, rows [][]string, mult string) error {
	values, err := m.Regenerate(rows, mult)
	if err == nil {
		err = m.Validate(values)
	}
	if err != nil {
		return fmt.Errorf("%w: %s %q: %w", ErrInvalidPreset, kind, name, err)
	}

	return nil
}
