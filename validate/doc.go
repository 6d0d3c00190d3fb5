// Package validate implements the relational model validation engine:
// the cross-cutting consistency checks that run over a finished mapping
// model and either accept it or reject it with a precise diagnostic.
//
// A Validator carries no run state and may be shared: every grouping
// map, queue and memo table is allocated inside a single Validate call,
// so concurrent calls on different models need no locking. A run either
// returns nil (model accepted, possibly after emitting warnings through
// the diag.Sink) or returns the first *Error found; no partial result
// exists.
package validate
