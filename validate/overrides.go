package validate

import "github.com/syssam/relcheck/model"

// validateOverrides checks that every per-store-object column override
// names a store object the property is actually reachable from through
// the normal mapped-store-object enumeration.
func (r *run) validateOverrides() error {
	for _, et := range r.m.EntityTypes() {
		for _, p := range et.Properties() {
			for _, so := range p.Overrides() {
				if storeObjectSetContains(allMappedStoreObjects(p, so.Kind), so) {
					continue
				}
				switch so.Kind {
				case model.KindTable:
					return newError(CodeTableOverrideMismatch,
						"property %s has a column override for table %q it is not mapped to", p, so.String())
				case model.KindView:
					return newError(CodeViewOverrideMismatch,
						"property %s has a column override for view %q it is not mapped to", p, so.String())
				case model.KindSQLQuery:
					return newError(CodeSQLQueryOverrideMismatch,
						"property %s has a column override for SQL query %q it is not mapped to", p, so.String())
				case model.KindFunction:
					return newError(CodeFunctionOverrideMismatch,
						"property %s has a column override for function %q it is not mapped to", p, so.String())
				}
			}
		}
	}
	return nil
}

// allMappedStoreObjects enumerates the store objects of one kind a
// property is projected onto. Primary key properties reach every
// mapped type of their hierarchy: one shared object under single-table
// mapping, one per type under TPT and one per concrete type under TPC.
// Regular properties stop at the first mapped self-or-ancestor, except
// under TPC where the walk continues down the derived types, each of
// which repeats the column in its own table. A property moved entirely
// to entity splitting fragments leaves the main object and lands on
// exactly the fragments it carries overrides for.
func allMappedStoreObjects(p *model.Property, kind model.StoreObjectKind) []model.StoreObject {
	et := p.Entity()
	var out []model.StoreObject
	add := func(so model.StoreObject) {
		if !storeObjectSetContains(out, so) {
			out = append(out, so)
		}
	}
	switch {
	case p.IsPrimaryKey():
		// The whole primary key repeats on every object of the
		// hierarchy, fragments included.
		root := et.Root()
		for _, t := range append([]*model.EntityType{root}, root.DerivedTypes()...) {
			if so, ok := model.StoreObjectOf(t, kind); ok {
				add(so)
			}
			for _, f := range t.Fragments() {
				if f.StoreObject().Kind == kind {
					add(f.StoreObject())
				}
			}
		}
		return out
	case et.EffectiveStrategy() == model.StrategyTPC:
		if !movedToFragment(et, p, kind) {
			for _, t := range append([]*model.EntityType{et}, et.DerivedTypes()...) {
				if so, ok := model.StoreObjectOf(t, kind); ok {
					add(so)
				}
			}
		}
	default:
		if !movedToFragment(et, p, kind) {
			for t := et; t != nil; t = t.BaseType() {
				if so, ok := model.StoreObjectOf(t, kind); ok {
					add(so)
					break
				}
			}
		}
	}
	for _, f := range et.Fragments() {
		if f.StoreObject().Kind == kind && p.HasOverrideFor(f.StoreObject()) {
			add(f.StoreObject())
		}
	}
	return out
}

func storeObjectSetContains(set []model.StoreObject, so model.StoreObject) bool {
	for _, s := range set {
		if s == so {
			return true
		}
	}
	return false
}
