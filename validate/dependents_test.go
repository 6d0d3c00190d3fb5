package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/relcheck/diag"
	"github.com/syssam/relcheck/model"
	"github.com/syssam/relcheck/validate"
)

// optionalEngine shares the vehicles table as a dependent whose link is
// not declared required-dependent, so its part of the row may be absent.
func optionalEngine(b *model.Builder, extra ...*model.PropertyBuilder) {
	props := append([]*model.PropertyBuilder{model.Prop("Id", "int")}, extra...)
	b.Entity("Vehicle").
		Properties(model.Prop("Id", "int"), model.Prop("Name", "string")).
		Key("Id").
		Table("vehicles", "")
	b.Entity("Engine").
		Properties(props...).
		Key("Id").
		Table("vehicles", "").
		ForeignKey(model.FK("Id").References("Vehicle").Unique().Required())
}

func TestOptionalDependentWithoutIdentifierWarns(t *testing.T) {
	kinds := expectValid(t, func(b *model.Builder) {
		optionalEngine(b)
	})
	assert.Equal(t, []diag.Kind{diag.KindOptionalDependentNoIdentifier}, kinds)
}

func TestOptionalDependentWithOwnRequiredColumnAccepted(t *testing.T) {
	assert.Empty(t, expectValid(t, func(b *model.Builder) {
		optionalEngine(b, model.Prop("Power", "int"))
	}))
}

func TestOptionalDependentWithNullableColumnStillWarns(t *testing.T) {
	kinds := expectValid(t, func(b *model.Builder) {
		optionalEngine(b, model.Prop("Power", "int").Nullable())
	})
	assert.Equal(t, []diag.Kind{diag.KindOptionalDependentNoIdentifier}, kinds)
}

func TestRequiredDependentNeedsNoIdentifier(t *testing.T) {
	assert.Empty(t, expectValid(t, sharedVehicles))
}

func TestReferencedOptionalDependentRejected(t *testing.T) {
	expectCode(t, validate.CodeOptionalDependentReferenced, func(b *model.Builder) {
		optionalEngine(b)
		b.Entity("Part").
			Properties(model.Prop("Id", "int"), model.Prop("Weight", "int")).
			Key("Id").
			Table("vehicles", "").
			ForeignKey(model.FK("Id").References("Engine").Unique().Required())
	})
}

func TestDependentStatusEvaluatedPerTableGroup(t *testing.T) {
	// Profile is an optional dependent of Customer on the customers
	// table, but on its fragment table it is the root Avatar hangs off.
	// The verdict from customers must not leak into profile_details,
	// where Customer does not even appear.
	kinds := expectValid(t, func(b *model.Builder) {
		details := model.TableID("profile_details", "")
		b.Entity("Customer").
			Properties(model.Prop("Id", "int"), model.Prop("Name", "string")).
			Key("Id").
			Table("customers", "")
		b.Entity("Profile").
			Properties(
				model.Prop("Id", "int").ColumnFor(details, "id"),
				model.Prop("Note", "string").Nullable(),
				model.Prop("Bio", "string").Nullable().ColumnFor(details, "bio"),
			).
			Key("Id").
			Table("customers", "").
			FragmentTable("profile_details", "").
			ForeignKey(model.FK("Id").References("Customer").Unique().Required())
		b.Entity("Avatar").
			Properties(model.Prop("Id", "int"), model.Prop("Url", "string")).
			Key("Id").
			Table("profile_details", "").
			ForeignKey(model.FK("Id").References("Profile").Unique().Required().RequiredDependent())
	})
	assert.Equal(t, []diag.Kind{diag.KindOptionalDependentNoIdentifier}, kinds)
}

func TestOptionalLinkAnywhereInChainPropagates(t *testing.T) {
	// Part's own link is required-dependent, but it reaches Vehicle
	// through Engine's optional link, so Part is optional too.
	kinds := expectValid(t, func(b *model.Builder) {
		optionalEngine(b, model.Prop("Power", "int"))
		b.Entity("Part").
			Properties(model.Prop("Id", "int")).
			Key("Id").
			Table("vehicles", "").
			ForeignKey(model.FK("Id").References("Engine").Unique().Required().RequiredDependent())
	})
	assert.Equal(t, []diag.Kind{diag.KindOptionalDependentNoIdentifier}, kinds)
}
