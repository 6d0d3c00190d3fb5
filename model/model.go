package model

import (
	"fmt"
)

// Model is a finished, read-only mapping model: the forest of entity
// types plus the functions and type mappings registered alongside them.
type Model struct {
	name         string
	entities     map[string]*EntityType
	order        []*EntityType
	functions    map[string]*Function
	funcOrder    []*Function
	typeMappings map[string]string
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// EntityTypes returns all entity types in registration order.
func (m *Model) EntityTypes() []*EntityType { return m.order }

// EntityType returns the entity type with the given name, or nil.
func (m *Model) EntityType(name string) *EntityType { return m.entities[name] }

// Functions returns all registered functions in registration order.
func (m *Model) Functions() []*Function { return m.funcOrder }

// Function returns the registered function with the given name, or nil.
func (m *Model) Function(name string) *Function { return m.functions[name] }

// TypeMapping resolves the store type registered for a logical type
// name. Scalar function validation requires every parameter and return
// type to resolve.
func (m *Model) TypeMapping(typ string) (string, bool) {
	st, ok := m.typeMappings[typ]
	return st, ok
}

// TypeMappings returns a copy of the whole logical-to-store type table,
// or nil when none were registered.
func (m *Model) TypeMappings() map[string]string {
	if len(m.typeMappings) == 0 {
		return nil
	}
	out := make(map[string]string, len(m.typeMappings))
	for typ, st := range m.typeMappings {
		out[typ] = st
	}
	return out
}

// Roots returns the hierarchy roots of the model in registration order.
func (m *Model) Roots() []*EntityType {
	var out []*EntityType
	for _, et := range m.order {
		if et.base == nil {
			out = append(out, et)
		}
	}
	return out
}

// Check runs base structural validation over the model: the shape
// invariants every relational rule assumes. It reports the first
// violation found.
func (m *Model) Check() error {
	for _, et := range m.order {
		// Key declarations live on hierarchy roots.
		if et.base != nil && len(et.keys) > 0 {
			return fmt.Errorf("derived type %s cannot declare a key; keys belong to the hierarchy root %s",
				et.name, et.Root().name)
		}
		// Property shadowing along the base chain is not allowed.
		for _, p := range et.properties {
			for base := et.base; base != nil; base = base.base {
				if _, ok := base.propIndex[p.name]; ok {
					return fmt.Errorf("property %s.%s shadows a property declared on base type %s",
						et.name, p.name, base.name)
				}
			}
		}
		if dp := et.discriminatorProp; dp != nil {
			if et.base != nil {
				return fmt.Errorf("discriminator for %s must be configured on the hierarchy root %s",
					et.name, et.Root().name)
			}
			if dp.entity != et {
				return fmt.Errorf("discriminator property %s does not belong to %s", dp, et.name)
			}
		}
		for _, k := range et.keys {
			for _, p := range k.properties {
				if et.FindProperty(p.name) != p {
					return fmt.Errorf("key on %s uses property %s not declared in its hierarchy", et.name, p)
				}
			}
		}
		for _, fk := range et.foreignKeys {
			for _, p := range fk.properties {
				if et.FindProperty(p.name) != p {
					return fmt.Errorf("foreign key on %s uses property %s not declared in its hierarchy", et.name, p)
				}
			}
			if fk.principalKey == nil {
				return fmt.Errorf("foreign key on %s has no principal key on %s", et.name, fk.principal.name)
			}
			if fk.principalKey.entity.Root() != fk.principal.Root() {
				return fmt.Errorf("foreign key on %s targets a key of %s outside principal %s",
					et.name, fk.principalKey.entity.name, fk.principal.name)
			}
			if len(fk.properties) != len(fk.principalKey.properties) {
				return fmt.Errorf("foreign key on %s maps %d properties to a key of %d on %s",
					et.name, len(fk.properties), len(fk.principalKey.properties), fk.principal.name)
			}
		}
	}
	return nil
}
