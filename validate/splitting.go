package validate

import "github.com/syssam/relcheck/model"

// validateSplitting checks entity splitting: fragments are only
// allowed outside inheritance, every fragment must hang off a main
// mapping of the same kind, carry the whole primary key plus at least
// one regular property, and splitting must leave at least one regular
// property on the main store object.
func (r *run) validateSplitting() error {
	for _, et := range r.m.EntityTypes() {
		fragments := et.Fragments()
		if len(fragments) == 0 {
			continue
		}
		if et.BaseType() != nil || len(et.DirectlyDerived()) > 0 {
			return newError(CodeSplittingHierarchy,
				"entity type %s uses entity splitting but participates in inheritance", et.Name())
		}
		kinds := make(map[model.StoreObjectKind]struct{})
		for _, f := range fragments {
			so := f.StoreObject()
			main, ok := model.StoreObjectOf(et, so.Kind)
			if !ok {
				return newError(CodeUnmappedMainFragment,
					"entity type %s has a fragment on %s %q but no main %s mapping",
					et.Name(), so.Kind, so.String(), so.Kind)
			}
			if so == main {
				return newError(CodeConflictingMainFragment,
					"entity type %s has a fragment on its main %s %q",
					et.Name(), so.Kind, so.String())
			}
			kinds[so.Kind] = struct{}{}

			pk := et.PrimaryKey()
			regular := 0
			for _, p := range f.Properties() {
				if !p.IsPrimaryKey() {
					regular++
				}
			}
			if regular == 0 {
				return newError(CodeFragmentMissingProperties,
					"fragment %q of entity type %s maps no non-key properties",
					so.String(), et.Name())
			}
			if pk != nil {
				for _, p := range pk.Properties() {
					if !p.HasOverrideFor(so) {
						return newError(CodeFragmentMissingPrimaryKey,
							"fragment %q of entity type %s is missing primary key property %s",
							so.String(), et.Name(), p.Name())
					}
				}
			}
		}
		for kind := range kinds {
			if err := r.checkMainRetainsProperties(et, kind); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkMainRetainsProperties verifies that after splitting, the main
// store object of the given kind still carries at least one non-key
// property of its own; splitting must not move everything out of the
// main row.
func (r *run) checkMainRetainsProperties(et *model.EntityType, kind model.StoreObjectKind) error {
	main, _ := model.StoreObjectOf(et, kind)
	for _, p := range et.AllProperties() {
		if p.IsPrimaryKey() {
			continue
		}
		if !movedToFragment(et, p, kind) {
			return nil
		}
	}
	return newError(CodeMainMissingProperties,
		"entity splitting moved every non-key property of %s off its main %s %q",
		et.Name(), kind, main.String())
}

// movedToFragment reports whether the property lives only on fragments
// of the given kind: it carries an override for some fragment and none
// for the main store object.
func movedToFragment(et *model.EntityType, p *model.Property, kind model.StoreObjectKind) bool {
	main, _ := model.StoreObjectOf(et, kind)
	if p.HasOverrideFor(main) {
		return false
	}
	for _, f := range et.Fragments() {
		if f.StoreObject().Kind == kind && p.HasOverrideFor(f.StoreObject()) {
			return true
		}
	}
	return false
}
