package diag

import "github.com/syssam/relcheck/model"

// Discard is a Sink that ignores every warning.
type Discard struct{}

// BoolWithDefault implements Sink.
func (Discard) BoolWithDefault(*model.Property) error { return nil }

// KeyDefaultValue implements Sink.
func (Discard) KeyDefaultValue(*model.Property) error { return nil }

// DuplicateColumnOrders implements Sink.
func (Discard) DuplicateColumnOrders(model.StoreObject, []string) error { return nil }

// OptionalDependentWithoutIdentifier implements Sink.
func (Discard) OptionalDependentWithoutIdentifier(*model.EntityType) error { return nil }

// ForeignKeyTPCPrincipal implements Sink.
func (Discard) ForeignKeyTPCPrincipal(*model.ForeignKey) error { return nil }

// ForeignKeyUnrelatedTables implements Sink.
func (Discard) ForeignKeyUnrelatedTables(*model.ForeignKey) error { return nil }

// TPCStoreGeneratedIdentity implements Sink.
func (Discard) TPCStoreGeneratedIdentity(*model.Property) error { return nil }

// IndexPropertiesNoneMapped implements Sink.
func (Discard) IndexPropertiesNoneMapped(*model.Index) error { return nil }

// IndexPropertiesSplitMapped implements Sink.
func (Discard) IndexPropertiesSplitMapped(*model.Index, string) error { return nil }

// IndexPropertiesUnrelatedTables implements Sink.
func (Discard) IndexPropertiesUnrelatedTables(*model.Index, string, string, []string, []string) error {
	return nil
}
