package model

import (
	"sort"

	"github.com/syssam/relcheck/internal/names"
)

// Property is a scalar member of an entity type, projected onto one
// column per store object it is mapped to.
type Property struct {
	entity *EntityType
	name   string
	typ    string

	nullable         bool
	maxLength        *int
	precision        *int
	scale            *int
	unicode          *bool
	fixedLength      *bool
	concurrencyToken bool
	storeType        string
	computedSQL      string
	stored           *bool

	defaultValue  any
	defaultSet    bool
	defaultSource ConfigSource
	defaultSQL    string

	comment   string
	collation string
	order     *int
	generated ValueGenerated

	column    string
	overrides map[StoreObject]string

	converter    func(any) any
	providerType string
}

// Entity returns the entity type declaring the property.
func (p *Property) Entity() *EntityType { return p.entity }

// Name returns the property name.
func (p *Property) Name() string { return p.name }

// Type returns the logical (CLR-like) type name of the property.
func (p *Property) Type() string { return p.typ }

// IsNullable reports whether the mapped column admits NULL.
func (p *Property) IsNullable() bool { return p.nullable }

// MaxLength returns the configured maximum length, if any.
func (p *Property) MaxLength() (int, bool) {
	if p.maxLength == nil {
		return 0, false
	}
	return *p.maxLength, true
}

// Precision returns the configured precision, if any.
func (p *Property) Precision() (int, bool) {
	if p.precision == nil {
		return 0, false
	}
	return *p.precision, true
}

// Scale returns the configured scale, if any.
func (p *Property) Scale() (int, bool) {
	if p.scale == nil {
		return 0, false
	}
	return *p.scale, true
}

// IsUnicode returns the configured unicode flag, if any.
func (p *Property) IsUnicode() (bool, bool) {
	if p.unicode == nil {
		return false, false
	}
	return *p.unicode, true
}

// IsFixedLength returns the configured fixed-length flag, if any.
func (p *Property) IsFixedLength() (bool, bool) {
	if p.fixedLength == nil {
		return false, false
	}
	return *p.fixedLength, true
}

// IsConcurrencyToken reports whether the property is an optimistic
// concurrency token.
func (p *Property) IsConcurrencyToken() bool { return p.concurrencyToken }

// StoreType returns the explicitly configured store type, or "".
func (p *Property) StoreType() string { return p.storeType }

// ComputedSQL returns the computed column SQL expression, or "".
func (p *Property) ComputedSQL() string { return p.computedSQL }

// IsStored returns whether a computed column is stored rather than
// virtual, if configured.
func (p *Property) IsStored() (bool, bool) {
	if p.stored == nil {
		return false, false
	}
	return *p.stored, true
}

// DefaultValue returns the configured default value, if any.
func (p *Property) DefaultValue() (any, bool) {
	return p.defaultValue, p.defaultSet
}

// DefaultValueSource returns how strongly the default value was stated.
func (p *Property) DefaultValueSource() ConfigSource { return p.defaultSource }

// DefaultSQL returns the default value SQL expression, or "".
func (p *Property) DefaultSQL() string { return p.defaultSQL }

// Comment returns the column comment, or "".
func (p *Property) Comment() string { return p.comment }

// Collation returns the column collation, or "".
func (p *Property) Collation() string { return p.collation }

// ColumnOrder returns the explicit column order, if configured.
func (p *Property) ColumnOrder() (int, bool) {
	if p.order == nil {
		return 0, false
	}
	return *p.order, true
}

// ValueGenerated returns when the store generates the property value.
func (p *Property) ValueGenerated() ValueGenerated { return p.generated }

// ColumnName returns the base column name of the property: the explicit
// name if configured, snake_case of the property name otherwise.
func (p *Property) ColumnName() string {
	if p.column != "" {
		return p.column
	}
	return names.Snake(p.name)
}

// ColumnNameIn returns the column name the property uses on the given
// store object, honoring per-store-object overrides.
func (p *Property) ColumnNameIn(so StoreObject) string {
	if name, ok := p.overrides[so]; ok {
		return name
	}
	return p.ColumnName()
}

// HasOverrideFor reports whether the property carries an explicit
// column override for the given store object.
func (p *Property) HasOverrideFor(so StoreObject) bool {
	_, ok := p.overrides[so]
	return ok
}

// Overrides returns the store objects the property carries explicit
// column overrides for, in a stable order.
func (p *Property) Overrides() []StoreObject {
	out := make([]StoreObject, 0, len(p.overrides))
	for so := range p.overrides {
		out = append(out, so)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		if out[i].Schema != out[j].Schema {
			return out[i].Schema < out[j].Schema
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// ProviderType returns the provider-side type the property maps to
// after value conversion. Without a converter it equals Type.
func (p *Property) ProviderType() string {
	if p.providerType != "" {
		return p.providerType
	}
	return p.typ
}

// ConvertedDefault applies the value converter to the default value.
// ok is false when no default is configured; without a converter the
// raw default is returned unchanged.
func (p *Property) ConvertedDefault() (any, bool) {
	if !p.defaultSet {
		return nil, false
	}
	if p.converter == nil {
		return p.defaultValue, true
	}
	return p.converter(p.defaultValue), true
}

// IsPrimaryKey reports whether the property is part of its hierarchy's
// primary key.
func (p *Property) IsPrimaryKey() bool {
	pk := p.entity.PrimaryKey()
	if pk == nil {
		return false
	}
	for _, kp := range pk.properties {
		if kp == p {
			return true
		}
	}
	return false
}

// String returns "EntityType.Property".
func (p *Property) String() string {
	return p.entity.name + "." + p.name
}
