package validate

import "github.com/syssam/relcheck/model"

// dependentInfo is the memoized result of the optional dependent
// analysis for one entity type: the transitive set of same-table
// principals reachable through identifying foreign keys, and whether
// any link in a chain is optional.
type dependentInfo struct {
	principals map[*model.EntityType]struct{}
	optional   bool
}

// checkOptionalDependents verifies that every optional dependent
// sharing a table has a way to tell whether its part of the row exists:
// a required column of its own not shared with its principals. Without
// one, a dependent that other foreign keys in the table group point at
// is rejected; an unreferenced one only draws a warning.
func (r *run) checkOptionalDependents(so model.StoreObject, group []*model.EntityType) error {
	if len(group) <= 1 {
		return nil
	}
	inGroup := make(map[*model.EntityType]struct{}, len(group))
	for _, et := range group {
		inGroup[et] = struct{}{}
	}
	// The principal sets depend on which entities share this store
	// object, so the memo is scoped to the group, never the whole run.
	memo := make(map[*model.EntityType]*dependentInfo, len(group))
	for _, et := range group {
		if et.BaseType() != nil || et.PrimaryKey() == nil {
			continue
		}
		info := dependentInfoFor(memo, et, inGroup, nil)
		if len(info.principals) == 0 || !info.optional {
			continue
		}
		if hasIdentifyingColumn(et, so, info.principals) {
			continue
		}
		if referencedInGroup(et, group) {
			return newError(CodeOptionalDependentReferenced,
				"optional dependent %s on table %q has no required non-shared column and is referenced by other foreign keys in the table; row existence is ambiguous",
				et.Name(), so.String())
		}
		if err := r.sink.OptionalDependentWithoutIdentifier(et); err != nil {
			return err
		}
	}
	return nil
}

// dependentInfoFor computes, memoized per table group, the transitive
// in-group principals of et via identifying foreign keys and whether
// any link is optional.
func dependentInfoFor(memo map[*model.EntityType]*dependentInfo, et *model.EntityType, inGroup map[*model.EntityType]struct{}, visiting map[*model.EntityType]struct{}) *dependentInfo {
	if info, ok := memo[et]; ok {
		return info
	}
	if visiting == nil {
		visiting = make(map[*model.EntityType]struct{})
	}
	if _, cyclic := visiting[et]; cyclic {
		return &dependentInfo{}
	}
	visiting[et] = struct{}{}
	defer delete(visiting, et)

	info := &dependentInfo{principals: make(map[*model.EntityType]struct{})}
	for _, fk := range et.ForeignKeys() {
		principal := fk.PrincipalEntity()
		if !fk.IsIdentifying() || principal == et {
			continue
		}
		if _, ok := inGroup[principal]; !ok {
			continue
		}
		info.principals[principal] = struct{}{}
		if !fk.IsRequiredDependent() {
			info.optional = true
		}
		up := dependentInfoFor(memo, principal, inGroup, visiting)
		for p := range up.principals {
			info.principals[p] = struct{}{}
		}
		if up.optional {
			info.optional = true
		}
	}
	memo[et] = info
	return info
}

// hasIdentifyingColumn reports whether et carries a non-nullable,
// non-key column on so that none of its principals also maps, i.e. a
// column that forces its part of the row to exist.
func hasIdentifyingColumn(et *model.EntityType, so model.StoreObject, principals map[*model.EntityType]struct{}) bool {
	shared := make(map[string]struct{})
	for principal := range principals {
		for _, p := range principal.AllProperties() {
			shared[p.ColumnNameIn(so)] = struct{}{}
		}
	}
	for _, p := range et.AllProperties() {
		if p.IsPrimaryKey() || p.IsNullable() {
			continue
		}
		if _, ok := shared[p.ColumnNameIn(so)]; !ok {
			return true
		}
	}
	return false
}

// referencedInGroup reports whether any other member of the table
// group declares a foreign key pointing at et.
func referencedInGroup(et *model.EntityType, group []*model.EntityType) bool {
	for _, other := range group {
		if other == et {
			continue
		}
		for _, fk := range other.ForeignKeys() {
			if fk.PrincipalEntity() == et {
				return true
			}
		}
	}
	return false
}
