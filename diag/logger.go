package diag

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/syssam/relcheck/model"
)

// Logger is a Sink that writes every warning to a slog.Logger at warn
// level. It never escalates.
type Logger struct {
	log *slog.Logger
}

// NewLogger returns a Logger sink. A nil logger uses slog.Default.
func NewLogger(log *slog.Logger) *Logger {
	if log == nil {
		log = slog.Default()
	}
	return &Logger{log: log}
}

// BoolWithDefault implements Sink.
func (l *Logger) BoolWithDefault(p *model.Property) error {
	l.log.Warn("boolean property with a non-false default; rows will read as true",
		"kind", string(KindBoolWithDefault), "property", p.String())
	return nil
}

// KeyDefaultValue implements Sink.
func (l *Logger) KeyDefaultValue(p *model.Property) error {
	l.log.Warn("key property has a default value configured",
		"kind", string(KindKeyDefaultValue), "property", p.String())
	return nil
}

// DuplicateColumnOrders implements Sink.
func (l *Logger) DuplicateColumnOrders(so model.StoreObject, columns []string) error {
	l.log.Warn("columns share an explicit column order",
		"kind", string(KindDuplicateColumnOrders), "table", so.String(),
		"columns", strings.Join(columns, ", "))
	return nil
}

// OptionalDependentWithoutIdentifier implements Sink.
func (l *Logger) OptionalDependentWithoutIdentifier(et *model.EntityType) error {
	l.log.Warn("optional dependent has no required non-shared column to identify row existence",
		"kind", string(KindOptionalDependentNoIdentifier), "entity", et.Name())
	return nil
}

// ForeignKeyTPCPrincipal implements Sink.
func (l *Logger) ForeignKeyTPCPrincipal(fk *model.ForeignKey) error {
	l.log.Warn("foreign key references a non-leaf TPC principal; rows may match no table",
		"kind", string(KindForeignKeyTPCPrincipal),
		"entity", fk.DeclaringEntity().Name(),
		"principal", fk.PrincipalEntity().Name(),
		"properties", strings.Join(fk.PropertyNames(), ", "))
	return nil
}

// ForeignKeyUnrelatedTables implements Sink.
func (l *Logger) ForeignKeyUnrelatedTables(fk *model.ForeignKey) error {
	l.log.Warn("foreign key properties map to no table shared with the principal key",
		"kind", string(KindForeignKeyUnrelatedTables),
		"entity", fk.DeclaringEntity().Name(),
		"principal", fk.PrincipalEntity().Name(),
		"properties", strings.Join(fk.PropertyNames(), ", "))
	return nil
}

// TPCStoreGeneratedIdentity implements Sink.
func (l *Logger) TPCStoreGeneratedIdentity(p *model.Property) error {
	l.log.Warn("store-generated key in a TPC hierarchy risks colliding IDs across tables",
		"kind", string(KindTPCStoreGeneratedIdentity), "property", p.String())
	return nil
}

// IndexPropertiesNoneMapped implements Sink.
func (l *Logger) IndexPropertiesNoneMapped(ix *model.Index) error {
	l.log.Warn("no property of the index maps to any table",
		"kind", string(KindIndexPropertiesNoneMapped),
		"entity", ix.DeclaringEntity().Name(),
		"properties", strings.Join(ix.PropertyNames(), ", "))
	return nil
}

// IndexPropertiesSplitMapped implements Sink.
func (l *Logger) IndexPropertiesSplitMapped(ix *model.Index, unmapped string) error {
	l.log.Warn("index mixes mapped and unmapped properties",
		"kind", string(KindIndexPropertiesSplitMapped),
		"entity", ix.DeclaringEntity().Name(),
		"properties", strings.Join(ix.PropertyNames(), ", "),
		"unmapped", unmapped)
	return nil
}

// IndexPropertiesUnrelatedTables implements Sink.
func (l *Logger) IndexPropertiesUnrelatedTables(ix *model.Index, first, last string, firstTables, lastTables []string) error {
	l.log.Warn("index properties map to tables with no table in common",
		"kind", string(KindIndexPropertiesUnrelatedTables),
		"entity", ix.DeclaringEntity().Name(),
		"first", fmt.Sprintf("%s (%s)", first, strings.Join(firstTables, ", ")),
		"last", fmt.Sprintf("%s (%s)", last, strings.Join(lastTables, ", ")))
	return nil
}
