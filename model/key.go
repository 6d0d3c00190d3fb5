package model

import (
	"fmt"
	"strings"
)

// Key is a primary or alternate key declared on a hierarchy root.
type Key struct {
	entity     *EntityType
	properties []*Property
	primary    bool
	name       string
}

// DeclaringEntity returns the entity type the key is declared on.
func (k *Key) DeclaringEntity() *EntityType { return k.entity }

// Properties returns the key properties in declared order.
func (k *Key) Properties() []*Property { return k.properties }

// IsPrimary reports whether this is the primary key.
func (k *Key) IsPrimary() bool { return k.primary }

// ExplicitName returns the configured constraint name, or "" when the
// key falls back to conventional naming.
func (k *Key) ExplicitName() string { return k.name }

// Name returns the constraint name the key resolves to on the given
// store object: the explicit name if configured, the conventional
// "PK_<table>" / "AK_<table>_<columns>" name otherwise.
func (k *Key) Name(so StoreObject) string {
	if k.name != "" {
		return k.name
	}
	if k.primary {
		return "PK_" + so.Name
	}
	return "AK_" + so.Name + "_" + strings.Join(k.ColumnNames(so), "_")
}

// PropertyNames returns the names of the key properties.
func (k *Key) PropertyNames() []string {
	out := make([]string, len(k.properties))
	for i, p := range k.properties {
		out[i] = p.Name()
	}
	return out
}

// ColumnNames returns the column names of the key properties on the
// given store object.
func (k *Key) ColumnNames(so StoreObject) []string {
	out := make([]string, len(k.properties))
	for i, p := range k.properties {
		out[i] = p.ColumnNameIn(so)
	}
	return out
}

// AreCompatible reports whether this key and another one mapped to the
// same constraint name on the given store object can share it: both
// must cover the same columns in the same order and agree on
// primary-ness. A non-nil error describes the first mismatch.
func (k *Key) AreCompatible(other *Key, so StoreObject) error {
	if k.primary != other.primary {
		return fmt.Errorf("key %q on %s is declared primary by %s but not by %s",
			k.Name(so), so, primaryDeclarer(k, other).entity.Name(), nonPrimaryDeclarer(k, other).entity.Name())
	}
	mine, theirs := k.ColumnNames(so), other.ColumnNames(so)
	if !equalStrings(mine, theirs) {
		return fmt.Errorf("key %q on %s maps to columns (%s) from %s but (%s) from %s",
			k.Name(so), so,
			strings.Join(mine, ", "), k.entity.Name(),
			strings.Join(theirs, ", "), other.entity.Name())
	}
	return nil
}

func primaryDeclarer(a, b *Key) *Key {
	if a.primary {
		return a
	}
	return b
}

func nonPrimaryDeclarer(a, b *Key) *Key {
	if !a.primary {
		return a
	}
	return b
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
