package model

import "fmt"

// StoreObjectKind enumerates the kinds of physical objects a logical
// element can project onto.
type StoreObjectKind int

const (
	// KindTable identifies a regular table.
	KindTable StoreObjectKind = iota
	// KindView identifies a database view.
	KindView
	// KindSQLQuery identifies an ad-hoc SQL query mapping.
	KindSQLQuery
	// KindFunction identifies a table-valued function mapping.
	KindFunction
)

// String returns the lowercase kind name.
func (k StoreObjectKind) String() string {
	switch k {
	case KindTable:
		return "table"
	case KindView:
		return "view"
	case KindSQLQuery:
		return "sql query"
	case KindFunction:
		return "function"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// StoreObject identifies a physical storage object by kind, name and
// optional schema. It is a value type with structural equality and is
// used as a map key throughout validation.
type StoreObject struct {
	Kind   StoreObjectKind
	Name   string
	Schema string
}

// TableID returns the identifier of a table.
func TableID(name, schema string) StoreObject {
	return StoreObject{Kind: KindTable, Name: name, Schema: schema}
}

// ViewID returns the identifier of a view.
func ViewID(name, schema string) StoreObject {
	return StoreObject{Kind: KindView, Name: name, Schema: schema}
}

// SQLQueryID returns the identifier of an ad-hoc SQL query mapping.
// The entity type name addresses the query, as queries have no store name.
func SQLQueryID(entityType string) StoreObject {
	return StoreObject{Kind: KindSQLQuery, Name: entityType}
}

// FunctionID returns the identifier of a function.
func FunctionID(name, schema string) StoreObject {
	return StoreObject{Kind: KindFunction, Name: name, Schema: schema}
}

// IsZero reports whether the identifier is the zero value, i.e. unset.
func (s StoreObject) IsZero() bool {
	return s.Name == ""
}

// String returns the display form of the identifier: "schema.name" when a
// schema is present, "name" otherwise.
func (s StoreObject) String() string {
	if s.Schema != "" {
		return s.Schema + "." + s.Name
	}
	return s.Name
}

// StoreObjectOf resolves the store object the given entity type binds to
// for the given kind. It returns ok=false if the entity type is unmapped
// for that kind.
func StoreObjectOf(et *EntityType, kind StoreObjectKind) (StoreObject, bool) {
	switch kind {
	case KindTable:
		if name, schema, ok := et.Table(); ok {
			return TableID(name, schema), true
		}
	case KindView:
		if name, schema, ok := et.View(); ok {
			return ViewID(name, schema), true
		}
	case KindSQLQuery:
		if et.SQLQuery() != "" {
			return SQLQueryID(et.Name()), true
		}
	case KindFunction:
		if fn := et.Function(); fn != nil {
			return FunctionID(fn.Name(), fn.Schema()), true
		}
		if name := et.FunctionName(); name != "" {
			return FunctionID(name, ""), true
		}
	}
	return StoreObject{}, false
}
