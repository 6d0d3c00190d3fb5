package validate

import "github.com/syssam/relcheck/model"

// validateTriggers checks that every trigger is declared on the table
// its entity type is actually mapped to.
func (r *run) validateTriggers() error {
	for _, et := range r.m.EntityTypes() {
		if len(et.Triggers()) == 0 {
			continue
		}
		name, schema, mapped := et.Table()
		for _, tg := range et.Triggers() {
			if !mapped {
				return newError(CodeTriggerNoTable,
					"trigger %q is declared on entity type %s which is not mapped to a table",
					tg.Name(), et.Name())
			}
			if tname, tschema, ok := tg.Table(); ok && (tname != name || tschema != schema) {
				return newError(CodeTriggerTableMismatch,
					"trigger %q on entity type %s is declared on table %q but the entity type is mapped to %q",
					tg.Name(), et.Name(), model.TableID(tname, tschema).String(), model.TableID(name, schema).String())
			}
		}
	}
	return nil
}

// validateDefaults runs the default value heuristics: a non-nullable,
// non-identity boolean with a truthy default reads back true for every
// unset row, and defaults on key columns usually indicate a modeling
// mistake.
func (r *run) validateDefaults() error {
	for _, et := range r.m.EntityTypes() {
		for _, p := range et.Properties() {
			if p.Type() == "bool" && !p.IsNullable() && p.ValueGenerated() != model.GeneratedOnAdd {
				truthy := p.DefaultSQL() != ""
				if dv, ok := p.DefaultValue(); ok && dv != any(false) {
					truthy = true
				}
				if truthy {
					if err := r.sink.BoolWithDefault(p); err != nil {
						return err
					}
				}
			}
		}
		warned := make(map[*model.Property]struct{})
		for _, k := range et.Keys() {
			for _, p := range k.Properties() {
				if _, done := warned[p]; done {
					continue
				}
				if _, ok := p.DefaultValue(); ok && p.DefaultValueSource() >= model.SourceDataAnnotation {
					warned[p] = struct{}{}
					if err := r.sink.KeyDefaultValue(p); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// validateIndexCoverage checks that the properties of every index land
// on at least one common table. Three disjoint gaps are reported as
// distinct warnings: no property mapped anywhere, a mix of mapped and
// unmapped properties, and property table sets with an empty
// intersection.
func (r *run) validateIndexCoverage() error {
	for _, et := range r.m.EntityTypes() {
		for _, ix := range et.Indexes() {
			props := ix.Properties()
			tables := make([][]model.StoreObject, len(props))
			mapped := 0
			firstUnmapped := ""
			for i, p := range props {
				tables[i] = allMappedStoreObjects(p, model.KindTable)
				if len(tables[i]) > 0 {
					mapped++
				} else if firstUnmapped == "" {
					firstUnmapped = p.Name()
				}
			}
			switch {
			case mapped == 0:
				if err := r.sink.IndexPropertiesNoneMapped(ix); err != nil {
					return err
				}
			case mapped < len(props):
				if err := r.sink.IndexPropertiesSplitMapped(ix, firstUnmapped); err != nil {
					return err
				}
			default:
				common := tables[0]
				for i := 1; i < len(props); i++ {
					common = intersectStoreObjects(common, tables[i])
					if len(common) == 0 {
						err := r.sink.IndexPropertiesUnrelatedTables(ix,
							props[0].Name(), props[i].Name(),
							storeObjectNames(tables[0]), storeObjectNames(tables[i]))
						if err != nil {
							return err
						}
						break
					}
				}
			}
		}
	}
	return nil
}

func intersectStoreObjects(a, b []model.StoreObject) []model.StoreObject {
	var out []model.StoreObject
	for _, so := range a {
		if storeObjectSetContains(b, so) {
			out = append(out, so)
		}
	}
	return out
}

func storeObjectNames(set []model.StoreObject) []string {
	out := make([]string, len(set))
	for i, so := range set {
		out[i] = so.String()
	}
	return out
}
