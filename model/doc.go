// Package model defines the relational mapping metadata consumed by the
// validation engine: entity types arranged in inheritance forests, their
// properties, keys, foreign keys, indexes, check constraints and triggers,
// and the projection of all of these onto physical store objects (tables,
// views, SQL queries and functions).
//
// A Model is built once through the fluent Builder API and is read-only
// afterwards. The validator in package validate never mutates it.
package model
