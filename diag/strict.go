package diag

import (
	"fmt"
	"strings"

	"github.com/syssam/relcheck/model"
)

// EscalatedError is returned by a Strict sink when a warning kind is
// configured to fail the validation run.
type EscalatedError struct {
	Kind   Kind
	Detail string
}

// Error implements the error interface.
func (e *EscalatedError) Error() string {
	return fmt.Sprintf("relcheck: warning %s escalated to an error: %s", e.Kind, e.Detail)
}

// Strict wraps another Sink and escalates warnings of the configured
// kinds into errors, failing the validation run that emitted them.
// With no kinds configured every warning escalates.
type Strict struct {
	next  Sink
	kinds map[Kind]struct{}
}

// NewStrict returns a Strict sink forwarding to next. Warnings of the
// given kinds escalate; with none given, all do.
func NewStrict(next Sink, kinds ...Kind) *Strict {
	s := &Strict{next: next}
	if len(kinds) > 0 {
		s.kinds = make(map[Kind]struct{}, len(kinds))
		for _, k := range kinds {
			s.kinds[k] = struct{}{}
		}
	}
	return s
}

func (s *Strict) escalate(k Kind, format string, args ...any) error {
	if s.kinds != nil {
		if _, ok := s.kinds[k]; !ok {
			return nil
		}
	}
	return &EscalatedError{Kind: k, Detail: fmt.Sprintf(format, args...)}
}

// BoolWithDefault implements Sink.
func (s *Strict) BoolWithDefault(p *model.Property) error {
	if err := s.next.BoolWithDefault(p); err != nil {
		return err
	}
	return s.escalate(KindBoolWithDefault, "property %s", p)
}

// KeyDefaultValue implements Sink.
func (s *Strict) KeyDefaultValue(p *model.Property) error {
	if err := s.next.KeyDefaultValue(p); err != nil {
		return err
	}
	return s.escalate(KindKeyDefaultValue, "property %s", p)
}

// DuplicateColumnOrders implements Sink.
func (s *Strict) DuplicateColumnOrders(so model.StoreObject, columns []string) error {
	if err := s.next.DuplicateColumnOrders(so, columns); err != nil {
		return err
	}
	return s.escalate(KindDuplicateColumnOrders, "table %s columns %s", so, strings.Join(columns, ", "))
}

// OptionalDependentWithoutIdentifier implements Sink.
func (s *Strict) OptionalDependentWithoutIdentifier(et *model.EntityType) error {
	if err := s.next.OptionalDependentWithoutIdentifier(et); err != nil {
		return err
	}
	return s.escalate(KindOptionalDependentNoIdentifier, "entity %s", et.Name())
}

// ForeignKeyTPCPrincipal implements Sink.
func (s *Strict) ForeignKeyTPCPrincipal(fk *model.ForeignKey) error {
	if err := s.next.ForeignKeyTPCPrincipal(fk); err != nil {
		return err
	}
	return s.escalate(KindForeignKeyTPCPrincipal, "entity %s principal %s",
		fk.DeclaringEntity().Name(), fk.PrincipalEntity().Name())
}

// ForeignKeyUnrelatedTables implements Sink.
func (s *Strict) ForeignKeyUnrelatedTables(fk *model.ForeignKey) error {
	if err := s.next.ForeignKeyUnrelatedTables(fk); err != nil {
		return err
	}
	return s.escalate(KindForeignKeyUnrelatedTables, "entity %s properties %s",
		fk.DeclaringEntity().Name(), strings.Join(fk.PropertyNames(), ", "))
}

// TPCStoreGeneratedIdentity implements Sink.
func (s *Strict) TPCStoreGeneratedIdentity(p *model.Property) error {
	if err := s.next.TPCStoreGeneratedIdentity(p); err != nil {
		return err
	}
	return s.escalate(KindTPCStoreGeneratedIdentity, "property %s", p)
}

// IndexPropertiesNoneMapped implements Sink.
func (s *Strict) IndexPropertiesNoneMapped(ix *model.Index) error {
	if err := s.next.IndexPropertiesNoneMapped(ix); err != nil {
		return err
	}
	return s.escalate(KindIndexPropertiesNoneMapped, "entity %s", ix.DeclaringEntity().Name())
}

// IndexPropertiesSplitMapped implements Sink.
func (s *Strict) IndexPropertiesSplitMapped(ix *model.Index, unmapped string) error {
	if err := s.next.IndexPropertiesSplitMapped(ix, unmapped); err != nil {
		return err
	}
	return s.escalate(KindIndexPropertiesSplitMapped, "entity %s unmapped %s",
		ix.DeclaringEntity().Name(), unmapped)
}

// IndexPropertiesUnrelatedTables implements Sink.
func (s *Strict) IndexPropertiesUnrelatedTables(ix *model.Index, first, last string, firstTables, lastTables []string) error {
	if err := s.next.IndexPropertiesUnrelatedTables(ix, first, last, firstTables, lastTables); err != nil {
		return err
	}
	return s.escalate(KindIndexPropertiesUnrelatedTables, "entity %s %s vs %s",
		ix.DeclaringEntity().Name(), first, last)
}
