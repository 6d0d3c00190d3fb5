package diag

import (
	"fmt"
	"strings"
	"sync"

	"github.com/syssam/relcheck/model"
)

// Event is one recorded warning.
type Event struct {
	Kind   Kind
	Detail string
}

// Collector is a Sink that records every warning. Primarily for tests
// and for CLI summaries. Safe for concurrent use.
type Collector struct {
	mu     sync.Mutex
	events []Event
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector { return &Collector{} }

// Events returns the recorded warnings in emission order.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

// Kinds returns the kinds of the recorded warnings in emission order.
func (c *Collector) Kinds() []Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Kind, len(c.events))
	for i, e := range c.events {
		out[i] = e.Kind
	}
	return out
}

// Reset discards all recorded warnings.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}

func (c *Collector) record(k Kind, format string, args ...any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, Event{Kind: k, Detail: fmt.Sprintf(format, args...)})
	return nil
}

// BoolWithDefault implements Sink.
func (c *Collector) BoolWithDefault(p *model.Property) error {
	return c.record(KindBoolWithDefault, "property %s", p)
}

// KeyDefaultValue implements Sink.
func (c *Collector) KeyDefaultValue(p *model.Property) error {
	return c.record(KindKeyDefaultValue, "property %s", p)
}

// DuplicateColumnOrders implements Sink.
func (c *Collector) DuplicateColumnOrders(so model.StoreObject, columns []string) error {
	return c.record(KindDuplicateColumnOrders, "table %s columns %s", so, strings.Join(columns, ", "))
}

// OptionalDependentWithoutIdentifier implements Sink.
func (c *Collector) OptionalDependentWithoutIdentifier(et *model.EntityType) error {
	return c.record(KindOptionalDependentNoIdentifier, "entity %s", et.Name())
}

// ForeignKeyTPCPrincipal implements Sink.
func (c *Collector) ForeignKeyTPCPrincipal(fk *model.ForeignKey) error {
	return c.record(KindForeignKeyTPCPrincipal, "entity %s principal %s",
		fk.DeclaringEntity().Name(), fk.PrincipalEntity().Name())
}

// ForeignKeyUnrelatedTables implements Sink.
func (c *Collector) ForeignKeyUnrelatedTables(fk *model.ForeignKey) error {
	return c.record(KindForeignKeyUnrelatedTables, "entity %s properties %s",
		fk.DeclaringEntity().Name(), strings.Join(fk.PropertyNames(), ", "))
}

// TPCStoreGeneratedIdentity implements Sink.
func (c *Collector) TPCStoreGeneratedIdentity(p *model.Property) error {
	return c.record(KindTPCStoreGeneratedIdentity, "property %s", p)
}

// IndexPropertiesNoneMapped implements Sink.
func (c *Collector) IndexPropertiesNoneMapped(ix *model.Index) error {
	return c.record(KindIndexPropertiesNoneMapped, "entity %s properties %s",
		ix.DeclaringEntity().Name(), strings.Join(ix.PropertyNames(), ", "))
}

// IndexPropertiesSplitMapped implements Sink.
func (c *Collector) IndexPropertiesSplitMapped(ix *model.Index, unmapped string) error {
	return c.record(KindIndexPropertiesSplitMapped, "entity %s unmapped %s",
		ix.DeclaringEntity().Name(), unmapped)
}

// IndexPropertiesUnrelatedTables implements Sink.
func (c *Collector) IndexPropertiesUnrelatedTables(ix *model.Index, first, last string, firstTables, lastTables []string) error {
	return c.record(KindIndexPropertiesUnrelatedTables, "entity %s %s (%s) vs %s (%s)",
		ix.DeclaringEntity().Name(),
		first, strings.Join(firstTables, ", "),
		last, strings.Join(lastTables, ", "))
}
