package validate

import "github.com/syssam/relcheck/model"

// validateSQLQueries checks ad-hoc SQL query mappings: a derived type
// may only map to a query when it repeats its base type's query and the
// hierarchy carries a discriminator to tell the rows apart.
func (r *run) validateSQLQueries() error {
	for _, et := range r.m.EntityTypes() {
		q := et.SQLQuery()
		if q == "" || et.BaseType() == nil {
			continue
		}
		if q != et.BaseType().SQLQuery() {
			return newError(CodeDerivedSQLQuery,
				"derived type %s maps to a SQL query different from its base %s",
				et.Name(), et.BaseType().Name())
		}
		if et.DiscriminatorProperty() == nil {
			return newError(CodeDerivedSQLQuery,
				"derived type %s maps to a SQL query but its hierarchy has no discriminator",
				et.Name())
		}
	}
	return nil
}

// validateFunctions checks function shapes and entity-to-function
// mappings: scalar functions must resolve type mappings end to end,
// table-valued functions must return registered non-owned entity types
// mapped single-table, and an entity mapped to a function needs a
// parameterless, non-scalar function returning exactly its type.
func (r *run) validateFunctions() error {
	for _, fn := range r.m.Functions() {
		if fn.IsScalar() {
			if _, ok := r.m.TypeMapping(fn.ReturnType()); !ok {
				return newError(CodeScalarFunctionTypeMapping,
					"scalar function %s returns %q which has no type mapping",
					fn, fn.ReturnType())
			}
			for _, p := range fn.Parameters() {
				if _, ok := r.m.TypeMapping(p.Type()); !ok {
					return newError(CodeScalarFunctionTypeMapping,
						"scalar function %s parameter %q of type %q has no type mapping",
						fn, p.Name(), p.Type())
				}
			}
			continue
		}
		ret := r.m.EntityType(fn.ReturnType())
		if ret == nil {
			return newError(CodeTVFReturnType,
				"function %s returns %q which is not an entity type of the model",
				fn, fn.ReturnType())
		}
		if ret.IsOwned() {
			return newError(CodeTVFReturnType,
				"function %s returns owned entity type %s", fn, ret.Name())
		}
		root := ret.Root()
		if len(root.DerivedTypes()) > 0 {
			if s := root.EffectiveStrategy(); s == model.StrategyTPT || s == model.StrategyTPC {
				return newError(CodeTVFNonTPH,
					"function %s returns %s whose hierarchy is mapped %s; only single-table hierarchies can back a function",
					fn, ret.Name(), s)
			}
		}
	}
	for _, et := range r.m.EntityTypes() {
		name := et.FunctionName()
		if name == "" {
			continue
		}
		if et.BaseType() != nil {
			return newError(CodeEntityFunctionDerived,
				"derived type %s cannot be mapped to function %q", et.Name(), name)
		}
		fn := et.Function()
		if fn == nil {
			return newError(CodeFunctionNotFound,
				"entity type %s is mapped to unknown function %q", et.Name(), name)
		}
		if fn.IsScalar() {
			return newError(CodeEntityFunctionScalar,
				"entity type %s is mapped to scalar function %s", et.Name(), fn)
		}
		if fn.ReturnType() != et.Name() {
			return newError(CodeEntityFunctionReturn,
				"entity type %s is mapped to function %s returning %q",
				et.Name(), fn, fn.ReturnType())
		}
		if len(fn.Parameters()) > 0 {
			return newError(CodeEntityFunctionParameters,
				"entity type %s is mapped to function %s which declares parameters",
				et.Name(), fn)
		}
	}
	return nil
}
