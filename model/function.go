package model

// Function is a database function registered in the model: either a
// scalar function or a table-valued function an entity type maps to.
type Function struct {
	model      *Model
	name       string
	schema     string
	parameters []*FunctionParameter
	returnType string
	scalar     bool
}

// Name returns the function name.
func (fn *Function) Name() string { return fn.name }

// Schema returns the function schema, or "".
func (fn *Function) Schema() string { return fn.schema }

// Parameters returns the declared parameters in order.
func (fn *Function) Parameters() []*FunctionParameter { return fn.parameters }

// ReturnType returns the logical return type name. For table-valued
// functions this is the entity type name of the returned rows.
func (fn *Function) ReturnType() string { return fn.returnType }

// IsScalar reports whether the function returns a scalar value rather
// than a row set.
func (fn *Function) IsScalar() bool { return fn.scalar }

// StoreObject returns the function's store object identifier.
func (fn *Function) StoreObject() StoreObject {
	return FunctionID(fn.name, fn.schema)
}

// String returns the display form "schema.name" or "name".
func (fn *Function) String() string {
	return fn.StoreObject().String()
}

// FunctionParameter is a single declared parameter of a Function.
type FunctionParameter struct {
	name string
	typ  string
}

// Name returns the parameter name.
func (p *FunctionParameter) Name() string { return p.name }

// Type returns the logical parameter type name.
func (p *FunctionParameter) Type() string { return p.typ }
