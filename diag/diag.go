// Package diag defines the diagnostics sink the validator reports
// non-fatal findings through: one operation per warning kind. A sink
// may return an error from any operation to escalate that warning into
// the failure of the validation run; the validator propagates such
// errors unwrapped.
package diag

import "github.com/syssam/relcheck/model"

// Kind identifies one warning kind.
type Kind string

// The warning kinds emitted by the validator.
const (
	KindBoolWithDefault                Kind = "bool_with_default"
	KindKeyDefaultValue                Kind = "key_default_value"
	KindDuplicateColumnOrders          Kind = "duplicate_column_orders"
	KindOptionalDependentNoIdentifier  Kind = "optional_dependent_without_identifier"
	KindForeignKeyTPCPrincipal         Kind = "foreign_key_tpc_principal"
	KindForeignKeyUnrelatedTables      Kind = "foreign_key_unrelated_tables"
	KindTPCStoreGeneratedIdentity      Kind = "tpc_store_generated_identity"
	KindIndexPropertiesNoneMapped      Kind = "index_properties_none_mapped"
	KindIndexPropertiesSplitMapped     Kind = "index_properties_split_mapped"
	KindIndexPropertiesUnrelatedTables Kind = "index_properties_unrelated_tables"
)

// Sink receives the validator's warnings. Implementations must be safe
// for use from a single validation run; the validator never calls a
// sink concurrently within one run.
type Sink interface {
	// BoolWithDefault reports a non-identity boolean property with a
	// truthy default value or default SQL.
	BoolWithDefault(p *model.Property) error
	// KeyDefaultValue reports a key property carrying an explicit
	// default value.
	KeyDefaultValue(p *model.Property) error
	// DuplicateColumnOrders reports columns of one store object
	// declaring the same explicit column order.
	DuplicateColumnOrders(so model.StoreObject, columns []string) error
	// OptionalDependentWithoutIdentifier reports an optional dependent
	// sharing a table without a column of its own to mark row
	// existence.
	OptionalDependentWithoutIdentifier(et *model.EntityType) error
	// ForeignKeyTPCPrincipal reports a foreign key pointing at a
	// non-leaf principal of a TPC hierarchy.
	ForeignKeyTPCPrincipal(fk *model.ForeignKey) error
	// ForeignKeyUnrelatedTables reports a foreign key whose property
	// columns land on no table shared with the principal key columns.
	ForeignKeyUnrelatedTables(fk *model.ForeignKey) error
	// TPCStoreGeneratedIdentity reports a store-generated primary key
	// property of a table-mapped TPC hierarchy.
	TPCStoreGeneratedIdentity(p *model.Property) error
	// IndexPropertiesNoneMapped reports an index none of whose
	// properties map to any table.
	IndexPropertiesNoneMapped(ix *model.Index) error
	// IndexPropertiesSplitMapped reports an index where some
	// properties map to tables and the named one does not.
	IndexPropertiesSplitMapped(ix *model.Index, unmapped string) error
	// IndexPropertiesUnrelatedTables reports an index whose properties
	// map to disjoint table sets, naming the first and last differing
	// properties and their tables.
	IndexPropertiesUnrelatedTables(ix *model.Index, first, last string, firstTables, lastTables []string) error
}
