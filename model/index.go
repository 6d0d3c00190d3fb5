package model

import (
	"fmt"
	"strings"
)

// Index is an index declared on an entity type.
type Index struct {
	entity     *EntityType
	properties []*Property
	unique     bool
	name       string
}

// DeclaringEntity returns the entity type the index is declared on.
func (ix *Index) DeclaringEntity() *EntityType { return ix.entity }

// Properties returns the indexed properties in declared order.
func (ix *Index) Properties() []*Property { return ix.properties }

// IsUnique reports whether the index is unique.
func (ix *Index) IsUnique() bool { return ix.unique }

// ExplicitName returns the configured index name, or "" when the index
// falls back to conventional naming.
func (ix *Index) ExplicitName() string { return ix.name }

// PropertyNames returns the names of the indexed properties.
func (ix *Index) PropertyNames() []string {
	out := make([]string, len(ix.properties))
	for i, p := range ix.properties {
		out[i] = p.Name()
	}
	return out
}

// ColumnNames returns the indexed column names on the given store object.
func (ix *Index) ColumnNames(so StoreObject) []string {
	out := make([]string, len(ix.properties))
	for i, p := range ix.properties {
		out[i] = p.ColumnNameIn(so)
	}
	return out
}

// Name returns the index name on the given store object: the explicit
// name if configured, the conventional "IX_<table>_<columns>" name
// otherwise.
func (ix *Index) Name(so StoreObject) string {
	if ix.name != "" {
		return ix.name
	}
	return "IX_" + so.Name + "_" + strings.Join(ix.ColumnNames(so), "_")
}

// AreCompatible reports whether this index and another one mapped to
// the same name on the given store object can share it: both must
// cover the same columns with the same uniqueness. A non-nil error
// describes the mismatch.
func (ix *Index) AreCompatible(other *Index, so StoreObject) error {
	name := ix.Name(so)
	if mine, theirs := ix.ColumnNames(so), other.ColumnNames(so); !equalStrings(mine, theirs) {
		return fmt.Errorf("index %q on %s covers columns (%s) from %s but (%s) from %s",
			name, so, strings.Join(mine, ", "), ix.entity.Name(),
			strings.Join(theirs, ", "), other.entity.Name())
	}
	if ix.unique != other.unique {
		return fmt.Errorf("index %q on %s is unique for %s but not for %s",
			name, so, uniqueIndexDeclarer(ix, other).entity.Name(), nonUniqueIndexDeclarer(ix, other).entity.Name())
	}
	return nil
}

func uniqueIndexDeclarer(a, b *Index) *Index {
	if a.unique {
		return a
	}
	return b
}

func nonUniqueIndexDeclarer(a, b *Index) *Index {
	if !a.unique {
		return a
	}
	return b
}
