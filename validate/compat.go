package validate

import (
	"reflect"
	"strings"

	"github.com/syssam/relcheck/model"
)

// mappedProperties returns the declared properties of et that land on
// the given store object: all of them (minus those moved to fragments)
// for the entity's main object of that kind, and only the explicitly
// overridden ones for a fragment.
func mappedProperties(et *model.EntityType, so model.StoreObject) []*model.Property {
	main, ok := model.StoreObjectOf(et, so.Kind)
	var out []*model.Property
	if ok && main == so {
		for _, p := range et.Properties() {
			if !movedToFragment(et, p, so.Kind) {
				out = append(out, p)
			}
		}
		return out
	}
	for _, p := range et.Properties() {
		if p.HasOverrideFor(so) {
			out = append(out, p)
		}
	}
	return out
}

// checkColumns detects duplicate column names on one store object and
// verifies that every pair of properties sharing a column agrees on
// every attribute that shapes the physical column. It also reports
// columns declaring colliding explicit orders.
func (r *run) checkColumns(so model.StoreObject, group []*model.EntityType) error {
	seen := make(map[string]*model.Property)
	orders := make(map[int][]string)
	orderKeys := []int{}
	for _, et := range group {
		for _, p := range mappedProperties(et, so) {
			col := p.ColumnNameIn(so)
			if existing, dup := seen[col]; dup {
				if err := compareColumns(so, col, existing, p); err != nil {
					return err
				}
			} else {
				seen[col] = p
			}
			if o, ok := p.ColumnOrder(); ok {
				if _, known := orders[o]; !known {
					orderKeys = append(orderKeys, o)
				}
				orders[o] = append(orders[o], col)
			}
		}
	}
	for _, o := range orderKeys {
		cols := uniqueStrings(orders[o])
		if len(cols) > 1 {
			if err := r.sink.DuplicateColumnOrders(so, cols); err != nil {
				return err
			}
		}
	}
	return nil
}

// compareColumns checks two properties mapped to the same column name
// on the same store object attribute by attribute. For default values
// either representation matching suffices: the raw values or the
// provider-converted values.
func compareColumns(so model.StoreObject, col string, a, b *model.Property) error {
	mismatch := func(attribute string, av, bv any) *Error {
		return newError(CodeDuplicateColumn,
			"properties %s and %s are both mapped to column %q of %s %q but disagree on %s: %v and %v",
			a, b, col, so.Kind, so.String(), attribute, av, bv)
	}
	if a.ProviderType() != b.ProviderType() {
		return mismatch("provider type", a.ProviderType(), b.ProviderType())
	}
	if a.IsNullable() != b.IsNullable() {
		return mismatch("nullability", a.IsNullable(), b.IsNullable())
	}
	if av, aok := a.MaxLength(); true {
		if bv, bok := b.MaxLength(); aok != bok || av != bv {
			return mismatch("max length", lengthOrNone(av, aok), lengthOrNone(bv, bok))
		}
	}
	if av, aok := a.IsUnicode(); true {
		if bv, bok := b.IsUnicode(); aok != bok || av != bv {
			return mismatch("unicode", flagOrNone(av, aok), flagOrNone(bv, bok))
		}
	}
	if av, aok := a.IsFixedLength(); true {
		if bv, bok := b.IsFixedLength(); aok != bok || av != bv {
			return mismatch("fixed length", flagOrNone(av, aok), flagOrNone(bv, bok))
		}
	}
	if av, aok := a.Precision(); true {
		if bv, bok := b.Precision(); aok != bok || av != bv {
			return mismatch("precision", lengthOrNone(av, aok), lengthOrNone(bv, bok))
		}
	}
	if av, aok := a.Scale(); true {
		if bv, bok := b.Scale(); aok != bok || av != bv {
			return mismatch("scale", lengthOrNone(av, aok), lengthOrNone(bv, bok))
		}
	}
	if a.IsConcurrencyToken() != b.IsConcurrencyToken() {
		return mismatch("concurrency token", a.IsConcurrencyToken(), b.IsConcurrencyToken())
	}
	if !strings.EqualFold(a.StoreType(), b.StoreType()) {
		return mismatch("store type", a.StoreType(), b.StoreType())
	}
	if !strings.EqualFold(a.ComputedSQL(), b.ComputedSQL()) {
		return mismatch("computed SQL", a.ComputedSQL(), b.ComputedSQL())
	}
	if av, aok := a.IsStored(); true {
		if bv, bok := b.IsStored(); aok != bok || av != bv {
			return mismatch("stored", flagOrNone(av, aok), flagOrNone(bv, bok))
		}
	}
	if err := compareDefaults(mismatch, a, b); err != nil {
		return err
	}
	if !strings.EqualFold(a.DefaultSQL(), b.DefaultSQL()) {
		return mismatch("default SQL", a.DefaultSQL(), b.DefaultSQL())
	}
	if a.Comment() != b.Comment() {
		return mismatch("comment", a.Comment(), b.Comment())
	}
	if a.Collation() != b.Collation() {
		return mismatch("collation", a.Collation(), b.Collation())
	}
	if av, aok := a.ColumnOrder(); true {
		if bv, bok := b.ColumnOrder(); aok && bok && av != bv {
			return mismatch("column order", av, bv)
		}
	}
	return nil
}

// compareDefaults accepts two defaults when the raw values match or,
// failing that, when the provider-converted values match: equal raw
// values can diverge after conversion and vice versa, and either
// representation agreeing is sufficient.
func compareDefaults(mismatch func(string, any, any) *Error, a, b *model.Property) error {
	av, aok := a.DefaultValue()
	bv, bok := b.DefaultValue()
	if aok != bok {
		return mismatch("default value", valueOrNone(av, aok), valueOrNone(bv, bok))
	}
	if !aok {
		return nil
	}
	if reflect.DeepEqual(av, bv) {
		return nil
	}
	ac, _ := a.ConvertedDefault()
	bc, _ := b.ConvertedDefault()
	if reflect.DeepEqual(ac, bc) {
		return nil
	}
	return mismatch("default value", av, bv)
}

// checkKeys detects primary and alternate keys colliding on one
// constraint name and delegates their comparison to the keys
// themselves.
func (r *run) checkKeys(so model.StoreObject, group []*model.EntityType) error {
	seen := make(map[string]*model.Key)
	visited := make(map[*model.Key]struct{})
	for _, et := range group {
		for _, k := range et.Root().Keys() {
			if _, done := visited[k]; done {
				continue
			}
			visited[k] = struct{}{}
			name := k.Name(so)
			if existing, dup := seen[name]; dup {
				if err := existing.AreCompatible(k, so); err != nil {
					return newError(CodeDuplicateKey, "%v", err)
				}
				continue
			}
			seen[name] = k
		}
	}
	return nil
}

// checkForeignKeys detects foreign keys colliding on one constraint
// name. Row-internal foreign keys produce no constraint and are
// skipped.
func (r *run) checkForeignKeys(so model.StoreObject, group []*model.EntityType) error {
	seen := make(map[string]*model.ForeignKey)
	for _, et := range group {
		for _, fk := range et.ForeignKeys() {
			if fk.IsRowInternal(so) {
				continue
			}
			name := fk.ConstraintName(so)
			if existing, dup := seen[name]; dup {
				if err := existing.AreCompatible(fk, so); err != nil {
					return newError(CodeDuplicateForeignKey, "%v", err)
				}
				continue
			}
			seen[name] = fk
		}
	}
	return nil
}

// checkIndexes detects indexes colliding on one name.
func (r *run) checkIndexes(so model.StoreObject, group []*model.EntityType) error {
	seen := make(map[string]*model.Index)
	for _, et := range group {
		for _, ix := range et.Indexes() {
			name := ix.Name(so)
			if existing, dup := seen[name]; dup {
				if err := existing.AreCompatible(ix, so); err != nil {
					return newError(CodeDuplicateIndex, "%v", err)
				}
				continue
			}
			seen[name] = ix
		}
	}
	return nil
}

// checkCheckConstraints detects check constraints colliding on one name.
func (r *run) checkCheckConstraints(so model.StoreObject, group []*model.EntityType) error {
	seen := make(map[string]*model.CheckConstraint)
	for _, et := range group {
		for _, cc := range et.CheckConstraints() {
			if existing, dup := seen[cc.Name()]; dup {
				if err := existing.AreCompatible(cc, so); err != nil {
					return newError(CodeDuplicateCheckConstraint, "%v", err)
				}
				continue
			}
			seen[cc.Name()] = cc
		}
	}
	return nil
}

// checkTriggerNames walks triggers colliding on one name. Triggers
// carry no comparable shape yet, so colliding names are accepted
// unconditionally.
func (r *run) checkTriggerNames(so model.StoreObject, group []*model.EntityType) {
	seen := make(map[string]*model.Trigger)
	for _, et := range group {
		for _, tg := range et.Triggers() {
			if _, dup := seen[tg.Name()]; dup {
				continue
			}
			seen[tg.Name()] = tg
		}
	}
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func lengthOrNone(v int, ok bool) any {
	if !ok {
		return "none"
	}
	return v
}

func flagOrNone(v, ok bool) any {
	if !ok {
		return "none"
	}
	return v
}

func valueOrNone(v any, ok bool) any {
	if !ok {
		return "none"
	}
	return v
}
