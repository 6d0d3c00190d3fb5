package validate

import "github.com/syssam/relcheck/model"

// validateForeignKeyMappings runs the foreign key placement heuristics:
// a foreign key pointing at a non-leaf TPC principal cannot be enforced
// by a single constraint because the principal rows spread over one
// table per concrete type, and a foreign key whose columns land on no
// common table with the principal key columns produces no constraint
// at all.
func (r *run) validateForeignKeyMappings() error {
	for _, et := range r.m.EntityTypes() {
		for _, fk := range et.ForeignKeys() {
			principal := fk.PrincipalEntity()
			if len(principal.DerivedTypes()) > 0 && principal.EffectiveStrategy() == model.StrategyTPC {
				if err := r.sink.ForeignKeyTPCPrincipal(fk); err != nil {
					return err
				}
				continue
			}
			if unrelated, skip := foreignKeyOnUnrelatedTables(fk); skip {
				continue
			} else if unrelated {
				if err := r.sink.ForeignKeyUnrelatedTables(fk); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// foreignKeyOnUnrelatedTables reports whether the declaring columns of
// the foreign key fail to land together on any single table, as
// happens when entity splitting moves some of them to a fragment. No
// constraint can be declared then. Foreign keys with a column mapped
// to no table at all are skipped; the index coverage warnings already
// describe those gaps.
func foreignKeyOnUnrelatedTables(fk *model.ForeignKey) (unrelated, skip bool) {
	declaring, ok := commonTables(fk.Properties())
	if !ok {
		return false, true
	}
	return len(declaring) == 0, false
}

// commonTables intersects the mapped tables of the given properties.
// The second result is false when some property is mapped to no table
// at all; an empty intersection of mapped properties reports true.
func commonTables(props []*model.Property) ([]model.StoreObject, bool) {
	var common []model.StoreObject
	for i, p := range props {
		tables := allMappedStoreObjects(p, model.KindTable)
		if len(tables) == 0 {
			return nil, false
		}
		if i == 0 {
			common = tables
			continue
		}
		common = intersectStoreObjects(common, tables)
	}
	return common, true
}
