package model

import "strings"

// EntityType is a node in the logical model: a named type with declared
// properties, keys, relationships and physical bindings, arranged in a
// single-inheritance forest.
type EntityType struct {
	model    *Model
	name     string
	abstract bool
	owned    bool
	base     *EntityType
	derived  []*EntityType

	properties []*Property
	propIndex  map[string]*Property
	keys       []*Key
	primaryKey *Key

	foreignKeys []*ForeignKey
	indexes     []*Index
	checks      []*CheckConstraint
	triggers    []*Trigger
	fragments   []*MappingFragment

	strategy           MappingStrategy
	discriminatorProp  *Property
	discriminatorValue any

	tableName, tableSchema string
	tableSet               bool
	viewName, viewSchema   string
	viewSet                bool
	sqlQuery               string
	functionName           string
	function               *Function

	comment                string
	excludedFromMigrations bool
}

// Model returns the model the entity type belongs to.
func (et *EntityType) Model() *Model { return et.model }

// Name returns the full entity type name.
func (et *EntityType) Name() string { return et.name }

// ShortName returns the entity type name without any qualifier prefix.
func (et *EntityType) ShortName() string {
	if i := strings.LastIndex(et.name, "."); i != -1 {
		return et.name[i+1:]
	}
	return et.name
}

// IsAbstract reports whether the entity type cannot be instantiated.
func (et *EntityType) IsAbstract() bool { return et.abstract }

// IsOwned reports whether the entity type is owned by another entity type
// rather than registered as an aggregate of its own.
func (et *EntityType) IsOwned() bool { return et.owned }

// BaseType returns the direct base type, or nil for a hierarchy root.
func (et *EntityType) BaseType() *EntityType { return et.base }

// Root returns the root of the inheritance tree the entity type belongs
// to. A type without a base is its own root.
func (et *EntityType) Root() *EntityType {
	r := et
	for r.base != nil {
		r = r.base
	}
	return r
}

// DirectlyDerived returns the entity types whose base is exactly this type.
func (et *EntityType) DirectlyDerived() []*EntityType { return et.derived }

// DerivedTypes returns all entity types transitively derived from this
// type, in depth-first declaration order, excluding the type itself.
func (et *EntityType) DerivedTypes() []*EntityType {
	var out []*EntityType
	var walk func(*EntityType)
	walk = func(t *EntityType) {
		for _, d := range t.derived {
			out = append(out, d)
			walk(d)
		}
	}
	walk(et)
	return out
}

// IsAssignableFrom reports whether other is this type or derived from it.
func (et *EntityType) IsAssignableFrom(other *EntityType) bool {
	for t := other; t != nil; t = t.base {
		if t == et {
			return true
		}
	}
	return false
}

// Properties returns the properties declared directly on this type.
func (et *EntityType) Properties() []*Property { return et.properties }

// AllProperties returns the declared and inherited properties,
// base-first, in declaration order.
func (et *EntityType) AllProperties() []*Property {
	if et.base == nil {
		return et.properties
	}
	inherited := et.base.AllProperties()
	out := make([]*Property, 0, len(inherited)+len(et.properties))
	out = append(out, inherited...)
	return append(out, et.properties...)
}

// FindProperty returns the property with the given name declared on this
// type or any of its ancestors.
func (et *EntityType) FindProperty(name string) *Property {
	for t := et; t != nil; t = t.base {
		if p, ok := t.propIndex[name]; ok {
			return p
		}
	}
	return nil
}

// Keys returns the keys declared directly on this type.
func (et *EntityType) Keys() []*Key { return et.keys }

// PrimaryKey returns the primary key of the hierarchy this type belongs
// to, or nil for keyless types. Keys are declared on hierarchy roots.
func (et *EntityType) PrimaryKey() *Key {
	return et.Root().primaryKey
}

// ForeignKeys returns the foreign keys declared directly on this type.
func (et *EntityType) ForeignKeys() []*ForeignKey { return et.foreignKeys }

// ReferencingForeignKeys returns every foreign key in the model whose
// principal side is this entity type.
func (et *EntityType) ReferencingForeignKeys() []*ForeignKey {
	var out []*ForeignKey
	for _, t := range et.model.order {
		for _, fk := range t.foreignKeys {
			if fk.principal == et {
				out = append(out, fk)
			}
		}
	}
	return out
}

// Indexes returns the indexes declared directly on this type.
func (et *EntityType) Indexes() []*Index { return et.indexes }

// CheckConstraints returns the check constraints declared on this type.
func (et *EntityType) CheckConstraints() []*CheckConstraint { return et.checks }

// Triggers returns the triggers declared on this type.
func (et *EntityType) Triggers() []*Trigger { return et.triggers }

// Fragments returns the mapping fragments configured for entity
// splitting, beyond the main store object of each kind.
func (et *EntityType) Fragments() []*MappingFragment { return et.fragments }

// Strategy returns the mapping strategy explicitly annotated on this
// type, or StrategyUnset.
func (et *EntityType) Strategy() MappingStrategy { return et.strategy }

// EffectiveStrategy returns the first explicit strategy found walking
// from this type to its root, or StrategyUnset if none is annotated.
func (et *EntityType) EffectiveStrategy() MappingStrategy {
	for t := et; t != nil; t = t.base {
		if t.strategy != StrategyUnset {
			return t.strategy
		}
	}
	return StrategyUnset
}

// DiscriminatorProperty returns the property distinguishing concrete
// types of a single-table hierarchy, or nil.
func (et *EntityType) DiscriminatorProperty() *Property {
	for t := et; t != nil; t = t.base {
		if t.discriminatorProp != nil {
			return t.discriminatorProp
		}
	}
	return nil
}

// DiscriminatorValue returns the value stored in the discriminator
// column for rows of this concrete type, or nil if none was configured.
func (et *EntityType) DiscriminatorValue() any { return et.discriminatorValue }

// Table returns the table binding of the entity type. Bindings are
// resolved at build time, so derived types of a single-table hierarchy
// report their root's table.
func (et *EntityType) Table() (name, schema string, ok bool) {
	return et.tableName, et.tableSchema, et.tableSet
}

// View returns the view binding of the entity type.
func (et *EntityType) View() (name, schema string, ok bool) {
	return et.viewName, et.viewSchema, et.viewSet
}

// SQLQuery returns the ad-hoc SQL query the entity type maps to, or "".
func (et *EntityType) SQLQuery() string { return et.sqlQuery }

// FunctionName returns the name of the function the entity type is
// configured to map to, or "". The name may be dangling; Function
// returns nil in that case.
func (et *EntityType) FunctionName() string { return et.functionName }

// Function returns the registered function the entity type maps to, or
// nil when unmapped or when FunctionName does not resolve.
func (et *EntityType) Function() *Function { return et.function }

// Comment returns the comment configured for the entity type's table or
// view, or "".
func (et *EntityType) Comment() string { return et.comment }

// ExcludedFromMigrations reports whether the entity type's store object
// is excluded from migrations.
func (et *EntityType) ExcludedFromMigrations() bool { return et.excludedFromMigrations }

// String returns the entity type name.
func (et *EntityType) String() string { return et.name }
