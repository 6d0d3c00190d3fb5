package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/relcheck/diag"
	"github.com/syssam/relcheck/model"
	"github.com/syssam/relcheck/validate"
)

func TestTriggerRequiresTableMapping(t *testing.T) {
	expectCode(t, validate.CodeTriggerNoTable, func(b *model.Builder) {
		b.Entity("Customer").
			Properties(model.Prop("Id", "int")).
			Key("Id").
			View("customers_v", "").
			Trigger(model.Trig("trg_customers_audit"))
	})
}

func TestTriggerTableMustMatchEntityTable(t *testing.T) {
	expectCode(t, validate.CodeTriggerTableMismatch, func(b *model.Builder) {
		b.Entity("Customer").
			Properties(model.Prop("Id", "int")).
			Key("Id").
			Trigger(model.Trig("trg_customers_audit").OnTable("other", ""))
	})
}

func TestTriggersOnMappedTableAccepted(t *testing.T) {
	assert.Empty(t, expectValid(t, func(b *model.Builder) {
		b.Entity("Customer").
			Properties(model.Prop("Id", "int")).
			Key("Id").
			Trigger(model.Trig("trg_customers_audit")).
			Trigger(model.Trig("trg_customers_history").OnTable("customers", ""))
	}))
}

func TestNonNullableBoolWithTruthyDefaultWarns(t *testing.T) {
	kinds := expectValid(t, func(b *model.Builder) {
		b.Entity("Customer").
			Properties(model.Prop("Id", "int"), model.Prop("Active", "bool").Default(true)).
			Key("Id")
	})
	assert.Equal(t, []diag.Kind{diag.KindBoolWithDefault}, kinds)

	kinds = expectValid(t, func(b *model.Builder) {
		b.Entity("Customer").
			Properties(model.Prop("Id", "int"), model.Prop("Active", "bool").DefaultSQL("1")).
			Key("Id")
	})
	assert.Equal(t, []diag.Kind{diag.KindBoolWithDefault}, kinds)
}

func TestBoolDefaultHeuristicExemptions(t *testing.T) {
	assert.Empty(t, expectValid(t, func(b *model.Builder) {
		b.Entity("Customer").
			Properties(model.Prop("Id", "int"), model.Prop("Active", "bool").Default(false)).
			Key("Id")
	}))
	assert.Empty(t, expectValid(t, func(b *model.Builder) {
		b.Entity("Customer").
			Properties(model.Prop("Id", "int"), model.Prop("Active", "bool").Nullable().Default(true)).
			Key("Id")
	}))
}

func TestExplicitDefaultOnKeyPropertyWarns(t *testing.T) {
	kinds := expectValid(t, func(b *model.Builder) {
		b.Entity("Customer").
			Properties(model.Prop("Id", "int").DefaultBySource(42, model.SourceExplicit)).
			Key("Id")
	})
	assert.Equal(t, []diag.Kind{diag.KindKeyDefaultValue}, kinds)
}

func TestConventionDefaultOnKeyPropertyAccepted(t *testing.T) {
	assert.Empty(t, expectValid(t, func(b *model.Builder) {
		b.Entity("Customer").
			Properties(model.Prop("Id", "int").DefaultBySource(0, model.SourceConvention)).
			Key("Id")
	}))
}

func TestIndexOnUnmappedPropertiesWarns(t *testing.T) {
	kinds := expectValid(t, func(b *model.Builder) {
		b.Entity("Report").
			Properties(model.Prop("Id", "int"), model.Prop("Title", "string")).
			Key("Id").
			SQLQuery("SELECT * FROM reports").
			Index(model.Idx("Title"))
	})
	assert.Equal(t, []diag.Kind{diag.KindIndexPropertiesNoneMapped}, kinds)
}

func TestIndexOnPartiallyMappedPropertiesWarns(t *testing.T) {
	kinds := expectValid(t, func(b *model.Builder) {
		b.Entity("Person").
			Properties(model.Prop("Id", "int"), model.Prop("Note", "string")).
			Key("Id").
			Strategy(model.StrategyTPT).
			View("people_v", "")
		b.Entity("Employee").
			Base("Person").
			Index(model.Idx("Id", "Note"))
	})
	assert.Equal(t, []diag.Kind{diag.KindIndexPropertiesSplitMapped}, kinds)
}

func TestIndexAcrossSplitFragmentsWarns(t *testing.T) {
	kinds := expectValid(t, func(b *model.Builder) {
		details := model.TableID("customer_details", "")
		b.Entity("Customer").
			Properties(
				model.Prop("Id", "int").ColumnFor(details, "id"),
				model.Prop("Name", "string"),
				model.Prop("Bio", "string").ColumnFor(details, "bio"),
			).
			Key("Id").
			FragmentTable("customer_details", "").
			Index(model.Idx("Name", "Bio"))
	})
	assert.Equal(t, []diag.Kind{diag.KindIndexPropertiesUnrelatedTables}, kinds)
}

func TestIndexOnCommonTableAccepted(t *testing.T) {
	assert.Empty(t, expectValid(t, func(b *model.Builder) {
		b.Entity("Customer").
			Properties(model.Prop("Id", "int"), model.Prop("Name", "string"), model.Prop("Email", "string")).
			Key("Id").
			Index(model.Idx("Name", "Email").Unique())
	}))
}
