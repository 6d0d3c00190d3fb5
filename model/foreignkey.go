package model

import (
	"fmt"
	"strings"
)

// ForeignKey is a relationship declared on a dependent entity type,
// pointing at a key of a principal entity type.
type ForeignKey struct {
	declaring    *EntityType
	properties   []*Property
	principal    *EntityType
	principalKey *Key

	unique            bool
	required          bool
	requiredDependent bool
	name              string
}

// DeclaringEntity returns the dependent entity type.
func (fk *ForeignKey) DeclaringEntity() *EntityType { return fk.declaring }

// Properties returns the dependent-side properties in declared order.
func (fk *ForeignKey) Properties() []*Property { return fk.properties }

// PrincipalEntity returns the principal entity type.
func (fk *ForeignKey) PrincipalEntity() *EntityType { return fk.principal }

// PrincipalKey returns the key of the principal the foreign key targets.
func (fk *ForeignKey) PrincipalKey() *Key { return fk.principalKey }

// IsUnique reports whether the relationship is one-to-one.
func (fk *ForeignKey) IsUnique() bool { return fk.unique }

// IsRequired reports whether the dependent side must reference a
// principal (non-nullable foreign key columns).
func (fk *ForeignKey) IsRequired() bool { return fk.required }

// ExplicitName returns the configured constraint name, or "" when the
// foreign key falls back to conventional naming.
func (fk *ForeignKey) ExplicitName() string { return fk.name }

// IsRequiredDependent reports whether the principal requires the
// dependent row to exist. Optional dependents sharing a table need a
// column of their own to mark row existence.
func (fk *ForeignKey) IsRequiredDependent() bool { return fk.requiredDependent }

// PropertyNames returns the names of the dependent-side properties.
func (fk *ForeignKey) PropertyNames() []string {
	out := make([]string, len(fk.properties))
	for i, p := range fk.properties {
		out[i] = p.Name()
	}
	return out
}

// ColumnNames returns the dependent-side column names on the given
// store object.
func (fk *ForeignKey) ColumnNames(so StoreObject) []string {
	out := make([]string, len(fk.properties))
	for i, p := range fk.properties {
		out[i] = p.ColumnNameIn(so)
	}
	return out
}

// ConstraintName returns the constraint name the foreign key resolves
// to on the given store object: the explicit name if configured, the
// conventional "FK_<table>_<principal>_<columns>" name otherwise.
func (fk *ForeignKey) ConstraintName(so StoreObject) string {
	if fk.name != "" {
		return fk.name
	}
	principal := fk.principal.Name()
	if pso, ok := StoreObjectOf(fk.principal, KindTable); ok {
		principal = pso.Name
	}
	return "FK_" + so.Name + "_" + principal + "_" + strings.Join(fk.ColumnNames(so), "_")
}

// IsPrimaryKeyFK reports whether the dependent-side properties are
// exactly the declaring hierarchy's primary key properties.
func (fk *ForeignKey) IsPrimaryKeyFK() bool {
	pk := fk.declaring.PrimaryKey()
	if pk == nil || len(pk.properties) != len(fk.properties) {
		return false
	}
	for i, p := range fk.properties {
		if pk.properties[i] != p {
			return false
		}
	}
	return true
}

// IsIdentifying reports whether the foreign key expresses an
// identifying relationship: dependent primary key properties pointing
// at the principal's primary key. Such relationships allow two entity
// types to share one table row.
func (fk *ForeignKey) IsIdentifying() bool {
	return fk.IsPrimaryKeyFK() && fk.principalKey != nil && fk.principalKey.primary
}

// IsRowInternal reports whether the foreign key links two entity types
// that share a single row of the given store object: an identifying,
// unique relationship whose two sides both map there.
func (fk *ForeignKey) IsRowInternal(so StoreObject) bool {
	if !fk.unique || !fk.IsIdentifying() || fk.declaring == fk.principal {
		return false
	}
	dso, ok1 := StoreObjectOf(fk.declaring, so.Kind)
	pso, ok2 := StoreObjectOf(fk.principal, so.Kind)
	return ok1 && ok2 && dso == so && pso == so
}

// AreCompatible reports whether this foreign key and another one mapped
// to the same constraint name on the given store object can share it:
// both must reference the same principal table through the same columns
// with the same uniqueness. A non-nil error describes the mismatch.
func (fk *ForeignKey) AreCompatible(other *ForeignKey, so StoreObject) error {
	name := fk.ConstraintName(so)
	pso, ok1 := StoreObjectOf(fk.principal, KindTable)
	oso, ok2 := StoreObjectOf(other.principal, KindTable)
	if !ok1 || !ok2 || pso != oso {
		return fmt.Errorf("foreign key %q on %s references table %q from %s but %q from %s",
			name, so, principalTable(fk), fk.declaring.Name(), principalTable(other), other.declaring.Name())
	}
	if mine, theirs := fk.ColumnNames(so), other.ColumnNames(so); !equalStrings(mine, theirs) {
		return fmt.Errorf("foreign key %q on %s maps to columns (%s) from %s but (%s) from %s",
			name, so, strings.Join(mine, ", "), fk.declaring.Name(),
			strings.Join(theirs, ", "), other.declaring.Name())
	}
	if mine, theirs := fk.principalKey.ColumnNames(pso), other.principalKey.ColumnNames(oso); !equalStrings(mine, theirs) {
		return fmt.Errorf("foreign key %q on %s references columns (%s) from %s but (%s) from %s",
			name, so, strings.Join(mine, ", "), fk.declaring.Name(),
			strings.Join(theirs, ", "), other.declaring.Name())
	}
	if fk.unique != other.unique {
		return fmt.Errorf("foreign key %q on %s is unique for %s but not for %s",
			name, so, uniqueDeclarer(fk, other).declaring.Name(), nonUniqueDeclarer(fk, other).declaring.Name())
	}
	return nil
}

func principalTable(fk *ForeignKey) string {
	if pso, ok := StoreObjectOf(fk.principal, KindTable); ok {
		return pso.String()
	}
	return ""
}

func uniqueDeclarer(a, b *ForeignKey) *ForeignKey {
	if a.unique {
		return a
	}
	return b
}

func nonUniqueDeclarer(a, b *ForeignKey) *ForeignKey {
	if !a.unique {
		return a
	}
	return b
}
