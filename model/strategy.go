package model

// MappingStrategy is the inheritance mapping strategy annotation of an
// entity type hierarchy.
type MappingStrategy int

const (
	// StrategyUnset means no explicit strategy was configured; hierarchies
	// default to single-table (TPH) behavior.
	StrategyUnset MappingStrategy = iota
	// StrategyTPH maps a whole hierarchy to a single table, disambiguated
	// by a discriminator column.
	StrategyTPH
	// StrategyTPT maps each type of a hierarchy to its own table, linked
	// by shared-primary-key identifying relationships.
	StrategyTPT
	// StrategyTPC maps each concrete type to its own complete table.
	StrategyTPC
	// strategyInvalid marks an unrecognized annotation value. Kept
	// internal; builders produce it only from ParseStrategy.
	strategyInvalid
)

// String returns the conventional short name of the strategy.
func (s MappingStrategy) String() string {
	switch s {
	case StrategyUnset:
		return ""
	case StrategyTPH:
		return "TPH"
	case StrategyTPT:
		return "TPT"
	case StrategyTPC:
		return "TPC"
	default:
		return "invalid"
	}
}

// Valid reports whether the strategy is one of the recognized values.
func (s MappingStrategy) Valid() bool {
	switch s {
	case StrategyUnset, StrategyTPH, StrategyTPT, StrategyTPC:
		return true
	default:
		return false
	}
}

// ParseStrategy converts an annotation string to a MappingStrategy.
// Unrecognized values yield a strategy for which Valid reports false,
// which the validator rejects with a precise diagnostic.
func ParseStrategy(s string) MappingStrategy {
	switch s {
	case "":
		return StrategyUnset
	case "TPH":
		return StrategyTPH
	case "TPT":
		return StrategyTPT
	case "TPC":
		return StrategyTPC
	default:
		return strategyInvalid
	}
}

// ValueGenerated describes when the store generates a value for a property.
type ValueGenerated int

const (
	// GeneratedNever means the property value is always supplied by the
	// application.
	GeneratedNever ValueGenerated = iota
	// GeneratedOnAdd means the store generates the value on insert
	// (identity columns, sequences, serial types).
	GeneratedOnAdd
)

// ConfigSource records how strongly a piece of configuration was stated.
// Heuristic warnings only fire for data-annotation-or-stronger sources.
type ConfigSource int

const (
	// SourceConvention marks configuration derived by conventions.
	SourceConvention ConfigSource = iota
	// SourceDataAnnotation marks configuration stated via annotations.
	SourceDataAnnotation
	// SourceExplicit marks configuration stated explicitly by the user.
	SourceExplicit
)
