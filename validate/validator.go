package validate

import (
	"github.com/syssam/relcheck/diag"
	"github.com/syssam/relcheck/model"
)

// Validator runs the relational consistency checks. It keeps no state
// between runs; one instance can serve any number of concurrent
// Validate calls on distinct models.
type Validator struct{}

// New returns a Validator.
func New() *Validator { return &Validator{} }

// Validate runs base structural validation and then every relational
// rule group in a fixed sequence over the model. It returns nil when
// the model is accepted, possibly after emitting warnings through sink,
// or the first fatal *Error found. An error returned by the sink
// itself propagates unwrapped. A nil sink discards warnings.
func (v *Validator) Validate(m *model.Model, sink diag.Sink) error {
	if sink == nil {
		sink = diag.Discard{}
	}
	if err := m.Check(); err != nil {
		return newError(CodeStructural, "model %s: %v", m.Name(), err)
	}
	r := &run{m: m, sink: sink}
	steps := []func() error{
		r.validateMappingStrategies,
		r.validateSQLQueries,
		r.validateFunctions,
		r.validateSplitting,
		r.validateSharedTables,
		r.validateSharedViews,
		r.validateOverrides,
		r.validateTriggers,
		r.validateDefaults,
		r.validateForeignKeyMappings,
		r.validateIndexCoverage,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// run holds the working state of a single Validate call: the grouping
// maps and memo tables built fresh per run and discarded at its end.
type run struct {
	m    *model.Model
	sink diag.Sink
}
