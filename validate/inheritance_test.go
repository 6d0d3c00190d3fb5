package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/relcheck/diag"
	"github.com/syssam/relcheck/model"
	"github.com/syssam/relcheck/validate"
)

func TestDiscriminatedHierarchyAccepted(t *testing.T) {
	assert.Empty(t, expectValid(t, func(b *model.Builder) {
		b.Entity("Animal").
			Properties(model.Prop("Id", "int"), model.Prop("Kind", "string")).
			Key("Id").
			Discriminator("Kind").
			DiscriminatorValue("animal")
		b.Entity("Dog").Base("Animal").DiscriminatorValue("dog")
		b.Entity("Cat").Base("Animal").DiscriminatorValue("cat")
	}))
}

func TestDerivedStrategyMustMatchBase(t *testing.T) {
	expectCode(t, validate.CodeDerivedStrategy, func(b *model.Builder) {
		b.Entity("Person").Properties(model.Prop("Id", "int")).Key("Id").Strategy(model.StrategyTPT)
		b.Entity("Employee").Base("Person").Strategy(model.StrategyTPH)
	})
}

func TestInvalidStrategyAnnotation(t *testing.T) {
	expectCode(t, validate.CodeInvalidMappingStrategy, func(b *model.Builder) {
		b.Entity("Person").Properties(model.Prop("Id", "int")).Key("Id").StrategyName("TPX")
	})
}

func TestAbstractTPCTypeCannotBeMapped(t *testing.T) {
	expectCode(t, validate.CodeAbstractTPCMapped, func(b *model.Builder) {
		b.Entity("Payment").Abstract().
			Properties(model.Prop("Id", "int")).
			Key("Id").
			Strategy(model.StrategyTPC).
			Table("payments", "")
		b.Entity("CardPayment").Base("Payment")
	})
}

func TestDiscriminatorRequiresSingleTableStrategy(t *testing.T) {
	expectCode(t, validate.CodeNonTPHStrategyWithDiscriminator, func(b *model.Builder) {
		b.Entity("Animal").
			Properties(model.Prop("Id", "int"), model.Prop("Kind", "string")).
			Key("Id").
			Discriminator("Kind").
			Strategy(model.StrategyTPT)
		b.Entity("Dog").Base("Animal")
	})
}

func TestSingleTableHierarchyTableMismatch(t *testing.T) {
	expectCode(t, validate.CodeTPHTableMismatch, func(b *model.Builder) {
		b.Entity("Animal").
			Properties(model.Prop("Id", "int"), model.Prop("Kind", "string")).
			Key("Id").
			Discriminator("Kind")
		b.Entity("Dog").Base("Animal").DiscriminatorValue("dog").Table("dogs", "")
	})
}

func TestSingleTableHierarchyViewMismatch(t *testing.T) {
	expectCode(t, validate.CodeTPHViewMismatch, func(b *model.Builder) {
		b.Entity("Animal").
			Properties(model.Prop("Id", "int"), model.Prop("Kind", "string")).
			Key("Id").
			Discriminator("Kind").
			View("animals_v", "")
		b.Entity("Dog").Base("Animal").DiscriminatorValue("dog").View("dogs_v", "")
	})
}

func TestDiscriminatorValuesMustBeStrings(t *testing.T) {
	expectCode(t, validate.CodeDiscriminatorValueNotString, func(b *model.Builder) {
		b.Entity("Animal").
			Properties(model.Prop("Id", "int"), model.Prop("Kind", "string")).
			Key("Id").
			Discriminator("Kind")
		b.Entity("Dog").Base("Animal").DiscriminatorValue(1)
	})
}

func TestDiscriminatorValuesMustBeUnique(t *testing.T) {
	expectCode(t, validate.CodeDiscriminatorValueNotUnique, func(b *model.Builder) {
		b.Entity("Animal").
			Properties(model.Prop("Id", "int"), model.Prop("Kind", "string")).
			Key("Id").
			Discriminator("Kind")
		b.Entity("Dog").Base("Animal").DiscriminatorValue("Pet")
		b.Entity("Cat").Base("Animal").DiscriminatorValue("Pet")
	})
}

func TestKeylessRootCannotUseTPT(t *testing.T) {
	expectCode(t, validate.CodeKeylessMappingStrategy, func(b *model.Builder) {
		b.Entity("Log").Properties(model.Prop("Message", "string")).Strategy(model.StrategyTPT)
		b.Entity("AuditLog").Base("Log")
	})
}

func TestTPTTypesCannotShareATable(t *testing.T) {
	expectCode(t, validate.CodeTPTTableClash, func(b *model.Builder) {
		b.Entity("Person").Properties(model.Prop("Id", "int")).Key("Id").Strategy(model.StrategyTPT).Table("people", "")
		b.Entity("Employee").Base("Person").Table("people", "")
	})
}

func TestTPCStoreGeneratedKeyWarns(t *testing.T) {
	kinds := expectValid(t, func(b *model.Builder) {
		b.Entity("Payment").Abstract().
			Properties(model.Prop("Id", "int").ValueGeneratedOnAdd()).
			Key("Id").
			Strategy(model.StrategyTPC)
		b.Entity("CardPayment").Base("Payment")
		b.Entity("CashPayment").Base("Payment")
	})
	assert.Contains(t, kinds, diag.KindTPCStoreGeneratedIdentity)
}

func TestTPCSerialStoreTypeWarns(t *testing.T) {
	kinds := expectValid(t, func(b *model.Builder) {
		b.Entity("Payment").Abstract().
			Properties(model.Prop("Id", "int").StoreType("serial")).
			Key("Id").
			Strategy(model.StrategyTPC)
		b.Entity("CardPayment").Base("Payment")
	})
	assert.Contains(t, kinds, diag.KindTPCStoreGeneratedIdentity)
}

func TestTPCRowSharingInsideHierarchy(t *testing.T) {
	expectCode(t, validate.CodeTPCTableSharing, func(b *model.Builder) {
		b.Entity("Vehicle").
			Properties(model.Prop("Id", "int")).
			Key("Id").
			Strategy(model.StrategyTPC).
			Table("vehicles", "")
		b.Entity("Car").Base("Vehicle").
			Table("vehicles", "").
			ForeignKey(model.FK("Id").References("Vehicle").Unique())
	})
}

func TestTPCRowSharingWithExternalDependent(t *testing.T) {
	expectCode(t, validate.CodeTPCTableSharingDependent, func(b *model.Builder) {
		b.Entity("Vehicle").
			Properties(model.Prop("Id", "int")).
			Key("Id").
			Strategy(model.StrategyTPC).
			Table("vehicles", "")
		b.Entity("Car").Base("Vehicle").Table("vehicles", "")
		b.Entity("Registration").
			Properties(model.Prop("Id", "int")).
			Key("Id").
			Table("vehicles", "").
			ForeignKey(model.FK("Id").References("Vehicle").Unique().Required().RequiredDependent())
	})
}

func TestTPCDistinctTablesAccepted(t *testing.T) {
	kinds := expectValid(t, func(b *model.Builder) {
		b.Entity("Payment").Abstract().
			Properties(model.Prop("Id", "int")).
			Key("Id").
			Strategy(model.StrategyTPC)
		b.Entity("CardPayment").Base("Payment")
		b.Entity("CashPayment").Base("Payment")
	})
	assert.Empty(t, kinds)
}
