package validate

import "github.com/syssam/relcheck/model"

// validateMappingStrategies checks that the inheritance mapping
// strategy of every hierarchy is recognized, consistent across the
// hierarchy and structurally satisfiable: discriminators for
// single-table mapping, keys for strategies that need them, distinct
// tables for table-per-type, and no row sharing under
// table-per-concrete-type.
func (r *run) validateMappingStrategies() error {
	for _, et := range r.m.EntityTypes() {
		s := et.Strategy()
		if s == model.StrategyUnset {
			continue
		}
		if !s.Valid() {
			return newError(CodeInvalidMappingStrategy,
				"entity type %s uses an invalid mapping strategy", et.Name())
		}
		if base := et.BaseType(); base != nil {
			if bs := base.EffectiveStrategy(); s != bs {
				return newError(CodeDerivedStrategy,
					"derived type %s sets mapping strategy %s but its base %s uses %s",
					et.Name(), s, base.Name(), orUnset(bs))
			}
		}
		if s == model.StrategyTPC && et.IsAbstract() {
			if so, ok := model.StoreObjectOf(et, model.KindTable); ok {
				return newError(CodeAbstractTPCMapped,
					"abstract type %s in a TPC hierarchy is mapped to table %q", et.Name(), so.String())
			}
			if so, ok := model.StoreObjectOf(et, model.KindView); ok {
				return newError(CodeAbstractTPCMapped,
					"abstract type %s in a TPC hierarchy is mapped to view %q", et.Name(), so.String())
			}
		}
	}
	for _, root := range r.m.Roots() {
		if len(root.DerivedTypes()) == 0 {
			continue
		}
		if root.DiscriminatorProperty() != nil {
			if err := r.validateDiscriminatedHierarchy(root); err != nil {
				return err
			}
			continue
		}
		if err := r.validateNonTPHHierarchy(root); err != nil {
			return err
		}
	}
	return nil
}

// validateDiscriminatedHierarchy checks a hierarchy mapped by
// discriminator: the strategy must be single-table, all members must
// agree on the table and the view, and concrete discriminator values
// must be distinct strings.
func (r *run) validateDiscriminatedHierarchy(root *model.EntityType) error {
	if s := root.EffectiveStrategy(); s != model.StrategyUnset && s != model.StrategyTPH {
		return newError(CodeNonTPHStrategyWithDiscriminator,
			"entity type %s has a discriminator but uses mapping strategy %s", root.Name(), s)
	}
	members := append([]*model.EntityType{root}, root.DerivedTypes()...)
	var (
		table, view           model.StoreObject
		tableOwner, viewOwner *model.EntityType
	)
	for _, et := range members {
		if so, ok := model.StoreObjectOf(et, model.KindTable); ok {
			if tableOwner == nil {
				table, tableOwner = so, et
			} else if so != table {
				return newError(CodeTPHTableMismatch,
					"entity type %s is mapped to table %q but %s in the same hierarchy is mapped to %q",
					et.Name(), so.String(), tableOwner.Name(), table.String())
			}
		}
		if so, ok := model.StoreObjectOf(et, model.KindView); ok {
			if viewOwner == nil {
				view, viewOwner = so, et
			} else if so != view {
				return newError(CodeTPHViewMismatch,
					"entity type %s is mapped to view %q but %s in the same hierarchy is mapped to %q",
					et.Name(), so.String(), viewOwner.Name(), view.String())
			}
		}
	}
	values := make(map[string]*model.EntityType)
	for _, et := range members {
		if et.IsAbstract() {
			continue
		}
		v := et.DiscriminatorValue()
		if v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return newError(CodeDiscriminatorValueNotString,
				"entity type %s has non-string discriminator value %v", et.Name(), v)
		}
		if prev, dup := values[s]; dup {
			return newError(CodeDiscriminatorValueNotUnique,
				"entity types %s and %s share discriminator value %q",
				prev.ShortName(), et.ShortName(), s)
		}
		values[s] = et
	}
	return nil
}

// validateNonTPHHierarchy checks a multi-type hierarchy without a
// discriminator, i.e. mapped table-per-type or table-per-concrete-type.
func (r *run) validateNonTPHHierarchy(root *model.EntityType) error {
	members := append([]*model.EntityType{root}, root.DerivedTypes()...)
	strategy := root.EffectiveStrategy()

	if strategy != model.StrategyTPC && root.PrimaryKey() == nil {
		return newError(CodeKeylessMappingStrategy,
			"keyless entity type %s cannot root a hierarchy mapped %s",
			root.Name(), orUnset(strategy))
	}

	if strategy == model.StrategyTPC {
		if err := r.validateTPC(root, members); err != nil {
			return err
		}
	}

	// Diagnostics distinctness: every concrete type needs a distinct,
	// non-empty string marker, the discriminator value if configured
	// and the short name otherwise.
	markers := make(map[string]*model.EntityType)
	for _, et := range members {
		if et.IsAbstract() {
			continue
		}
		marker := et.ShortName()
		if v := et.DiscriminatorValue(); v != nil {
			s, ok := v.(string)
			if !ok {
				return newError(CodeDiscriminatorValueNotString,
					"entity type %s has non-string discriminator value %v", et.Name(), v)
			}
			marker = s
		}
		if marker == "" {
			return newError(CodeDiscriminatorValueNotString,
				"entity type %s has an empty discriminator value", et.Name())
		}
		if prev, dup := markers[marker]; dup {
			return newError(CodeDiscriminatorValueNotUnique,
				"entity types %s and %s share discriminator value %q",
				prev.ShortName(), et.ShortName(), marker)
		}
		markers[marker] = et
	}

	if strategy == model.StrategyTPT {
		tables := make(map[model.StoreObject]*model.EntityType)
		views := make(map[model.StoreObject]*model.EntityType)
		for _, et := range members {
			if et.IsAbstract() {
				continue
			}
			if so, ok := model.StoreObjectOf(et, model.KindTable); ok {
				if prev, dup := tables[so]; dup {
					return newError(CodeTPTTableClash,
						"entity types %s and %s of a TPT hierarchy are both mapped to table %q",
						prev.Name(), et.Name(), so.String())
				}
				tables[so] = et
			}
			if so, ok := model.StoreObjectOf(et, model.KindView); ok {
				if prev, dup := views[so]; dup {
					return newError(CodeTPTViewClash,
						"entity types %s and %s of a TPT hierarchy are both mapped to view %q",
						prev.Name(), et.Name(), so.String())
				}
				views[so] = et
			}
		}
	}
	return nil
}

// validateTPC checks the pathologies specific to table-per-concrete-type
// mapping: store-generated keys shared across per-type tables, and
// foreign keys that would collapse two rows of the hierarchy onto one.
func (r *run) validateTPC(root *model.EntityType, members []*model.EntityType) error {
	tableMapped := false
	for _, et := range members {
		if et.IsAbstract() {
			continue
		}
		if _, ok := model.StoreObjectOf(et, model.KindTable); ok {
			tableMapped = true
		}
	}
	if pk := root.PrimaryKey(); pk != nil && tableMapped {
		for _, p := range pk.Properties() {
			if p.ValueGenerated() == model.GeneratedOnAdd || model.StoreGeneratedIdentity(p.StoreType()) {
				if err := r.sink.TPCStoreGeneratedIdentity(p); err != nil {
					return err
				}
			}
		}
	}
	inHierarchy := func(et *model.EntityType) bool {
		return root.IsAssignableFrom(et)
	}
	for _, et := range r.m.EntityTypes() {
		for _, fk := range et.ForeignKeys() {
			if !fk.IsUnique() || !fk.IsIdentifying() || !inHierarchy(fk.PrincipalEntity()) {
				continue
			}
			so, shared := sharedRowObject(fk)
			if !shared {
				continue
			}
			if inHierarchy(fk.DeclaringEntity()) {
				// TPC never co-locates a type with its own hierarchy.
				return newError(CodeTPCTableSharing,
					"foreign key on %s maps its row onto %q shared with principal %s under TPC",
					fk.DeclaringEntity().Name(), so.String(), fk.PrincipalEntity().Name())
			}
			mappedThere := 0
			for _, member := range members {
				if mso, ok := model.StoreObjectOf(member, so.Kind); ok && mso == so {
					mappedThere++
				}
			}
			if mappedThere > 1 {
				return newError(CodeTPCTableSharingDependent,
					"dependent %s shares a row of %q with principal %s while %d types of a TPC hierarchy map there",
					fk.DeclaringEntity().Name(), so.String(), fk.PrincipalEntity().Name(), mappedThere)
			}
		}
	}
	return nil
}

// sharedRowObject returns the table or view both sides of the foreign
// key map to, if any.
func sharedRowObject(fk *model.ForeignKey) (model.StoreObject, bool) {
	for _, kind := range []model.StoreObjectKind{model.KindTable, model.KindView} {
		dso, ok1 := model.StoreObjectOf(fk.DeclaringEntity(), kind)
		pso, ok2 := model.StoreObjectOf(fk.PrincipalEntity(), kind)
		if ok1 && ok2 && dso == pso {
			return dso, true
		}
	}
	return model.StoreObject{}, false
}

func orUnset(s model.MappingStrategy) string {
	if s == model.StrategyUnset {
		return "no strategy"
	}
	return s.String()
}
