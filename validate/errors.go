package validate

import (
	"errors"
	"fmt"
)

// Code tags a fatal validation error with the invariant it violated.
// The set is closed; every rejection a Validate call can produce
// carries exactly one of these.
type Code string

// Structural and inheritance mapping codes.
const (
	// CodeStructural wraps a failure of base structural validation.
	CodeStructural Code = "structural"
	// CodeInvalidMappingStrategy marks an unrecognized strategy annotation.
	CodeInvalidMappingStrategy Code = "invalid_mapping_strategy"
	// CodeAbstractTPCMapped marks an abstract TPC type mapped to a store object.
	CodeAbstractTPCMapped Code = "abstract_tpc_mapped"
	// CodeDerivedStrategy marks a derived type whose explicit strategy
	// differs from its base type's.
	CodeDerivedStrategy Code = "derived_strategy"
	// CodeNonTPHStrategyWithDiscriminator marks a discriminator root
	// annotated with a strategy other than TPH.
	CodeNonTPHStrategyWithDiscriminator Code = "non_tph_strategy_with_discriminator"
	// CodeTPHTableMismatch marks a single-table hierarchy whose members
	// disagree on the table.
	CodeTPHTableMismatch Code = "tph_table_mismatch"
	// CodeTPHViewMismatch marks a single-table hierarchy whose members
	// disagree on the view.
	CodeTPHViewMismatch Code = "tph_view_mismatch"
	// CodeDiscriminatorValueNotString marks a non-string discriminator value.
	CodeDiscriminatorValueNotString Code = "discriminator_value_not_string"
	// CodeDiscriminatorValueNotUnique marks concrete types sharing a
	// discriminator value.
	CodeDiscriminatorValueNotUnique Code = "discriminator_value_not_unique"
	// CodeKeylessMappingStrategy marks a keyless root using a strategy
	// that requires a primary key.
	CodeKeylessMappingStrategy Code = "keyless_mapping_strategy"
	// CodeTPTTableClash marks two types of a TPT hierarchy mapped to one table.
	CodeTPTTableClash Code = "tpt_table_clash"
	// CodeTPTViewClash marks two types of a TPT hierarchy mapped to one view.
	CodeTPTViewClash Code = "tpt_view_clash"
	// CodeTPCTableSharing marks a row-internal foreign key inside a TPC
	// hierarchy.
	CodeTPCTableSharing Code = "tpc_table_sharing"
	// CodeTPCTableSharingDependent marks a dependent collapsed onto a
	// TPC root's row while several derived types map there.
	CodeTPCTableSharingDependent Code = "tpc_table_sharing_dependent"
)

// SQL query and function mapping codes.
const (
	// CodeDerivedSQLQuery marks a derived type's SQL query mapping that
	// differs from its base's or lacks a discriminator.
	CodeDerivedSQLQuery Code = "derived_sql_query"
	// CodeScalarFunctionTypeMapping marks a scalar function whose return
	// or parameter type has no type mapping.
	CodeScalarFunctionTypeMapping Code = "scalar_function_type_mapping"
	// CodeTVFReturnType marks a table-valued function not returning a
	// registered, non-owned entity type.
	CodeTVFReturnType Code = "tvf_return_type"
	// CodeTVFNonTPH marks a table-valued function returning a hierarchy
	// member not mapped TPH.
	CodeTVFNonTPH Code = "tvf_non_tph"
	// CodeEntityFunctionDerived marks a derived type mapped to a function.
	CodeEntityFunctionDerived Code = "entity_function_derived"
	// CodeFunctionNotFound marks an entity mapped to an unknown function.
	CodeFunctionNotFound Code = "function_not_found"
	// CodeEntityFunctionScalar marks an entity mapped to a scalar function.
	CodeEntityFunctionScalar Code = "entity_function_scalar"
	// CodeEntityFunctionReturn marks an entity mapped to a function that
	// returns a different type.
	CodeEntityFunctionReturn Code = "entity_function_return"
	// CodeEntityFunctionParameters marks an entity mapped to a function
	// declaring parameters.
	CodeEntityFunctionParameters Code = "entity_function_parameters"
)

// Entity splitting codes.
const (
	// CodeSplittingHierarchy marks fragments on a hierarchy member.
	CodeSplittingHierarchy Code = "splitting_hierarchy"
	// CodeUnmappedMainFragment marks a fragment whose kind has no main mapping.
	CodeUnmappedMainFragment Code = "unmapped_main_fragment"
	// CodeConflictingMainFragment marks a fragment on the main store object.
	CodeConflictingMainFragment Code = "conflicting_main_fragment"
	// CodeFragmentMissingProperties marks a fragment mapping no
	// non-key properties.
	CodeFragmentMissingProperties Code = "fragment_missing_properties"
	// CodeFragmentMissingPrimaryKey marks a fragment missing a primary
	// key column.
	CodeFragmentMissingPrimaryKey Code = "fragment_missing_primary_key"
	// CodeMainMissingProperties marks splitting that leaves no non-key
	// property on the main store object.
	CodeMainMissingProperties Code = "main_missing_properties"
)

// Table and view sharing codes.
const (
	// CodeAmbiguousSharingRoot marks two candidate roots for one store object.
	CodeAmbiguousSharingRoot Code = "ambiguous_sharing_root"
	// CodeAmbiguousSharingRoute marks a type sharing a store object both
	// via inheritance and via an identifying relationship.
	CodeAmbiguousSharingRoute Code = "ambiguous_sharing_route"
	// CodeUnreachableSharedType marks a mapped type never reached from
	// the sharing root.
	CodeUnreachableSharedType Code = "unreachable_shared_type"
	// CodeKeyNameMismatch marks sharing types disagreeing on the primary key.
	CodeKeyNameMismatch Code = "key_name_mismatch"
	// CodeCommentMismatch marks sharing types declaring different comments.
	CodeCommentMismatch Code = "comment_mismatch"
	// CodeExclusionMismatch marks sharing types disagreeing on
	// migrations exclusion.
	CodeExclusionMismatch Code = "exclusion_mismatch"
	// CodeOptionalDependentReferenced marks an optional dependent with
	// no identifying column that other foreign keys reference.
	CodeOptionalDependentReferenced Code = "optional_dependent_referenced"
	// CodeMissingConcurrencyToken marks a sharing type missing a
	// required concurrency token column.
	CodeMissingConcurrencyToken Code = "missing_concurrency_token"
)

// Duplicate physical name codes.
const (
	// CodeDuplicateColumn marks incompatible properties sharing a column.
	CodeDuplicateColumn Code = "duplicate_column"
	// CodeDuplicateKey marks incompatible keys sharing a constraint name.
	CodeDuplicateKey Code = "duplicate_key"
	// CodeDuplicateForeignKey marks incompatible foreign keys sharing a
	// constraint name.
	CodeDuplicateForeignKey Code = "duplicate_foreign_key"
	// CodeDuplicateIndex marks incompatible indexes sharing a name.
	CodeDuplicateIndex Code = "duplicate_index"
	// CodeDuplicateCheckConstraint marks incompatible check constraints
	// sharing a name.
	CodeDuplicateCheckConstraint Code = "duplicate_check_constraint"
)

// Override and trigger codes.
const (
	// CodeTableOverrideMismatch marks a column override naming an
	// unreachable table.
	CodeTableOverrideMismatch Code = "table_override_mismatch"
	// CodeViewOverrideMismatch marks a column override naming an
	// unreachable view.
	CodeViewOverrideMismatch Code = "view_override_mismatch"
	// CodeSQLQueryOverrideMismatch marks a column override naming an
	// unreachable SQL query.
	CodeSQLQueryOverrideMismatch Code = "sql_query_override_mismatch"
	// CodeFunctionOverrideMismatch marks a column override naming an
	// unreachable function.
	CodeFunctionOverrideMismatch Code = "function_override_mismatch"
	// CodeTriggerNoTable marks a trigger on an entity type without a table.
	CodeTriggerNoTable Code = "trigger_no_table"
	// CodeTriggerTableMismatch marks a trigger declared on a table other
	// than its entity type's.
	CodeTriggerTableMismatch Code = "trigger_table_mismatch"
)

// Error is a fatal validation failure. Exactly one is returned per
// rejected Validate call; it names the entities, members and store
// objects involved so the mapping can be fixed without re-deriving
// validator state.
type Error struct {
	code Code
	msg  string
}

func newError(code Code, format string, args ...any) *Error {
	return &Error{code: code, msg: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return "relcheck: " + e.msg
}

// Code returns the violated invariant's tag.
func (e *Error) Code() Code { return e.code }

// Is reports whether target is an *Error with the same code, so
// errors.Is can match against a code sentinel built with CodeError.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.code == e.code
}

// CodeError returns a sentinel error matching every *Error with the
// given code via errors.Is.
func CodeError(code Code) error {
	return &Error{code: code}
}

// HasCode reports whether err is (or wraps) a validation error with
// the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.code == code
}
