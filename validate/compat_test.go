package validate_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/relcheck/diag"
	"github.com/syssam/relcheck/model"
	"github.com/syssam/relcheck/validate"
)

// sharingPair maps two linked entity types onto the vehicles table with
// the given extra properties on each side.
func sharingPair(b *model.Builder, principal, dependent *model.PropertyBuilder) {
	b.Entity("Vehicle").
		Properties(model.Prop("Id", "int"), principal).
		Key("Id").
		Table("vehicles", "")
	b.Entity("Engine").
		Properties(model.Prop("Id", "int"), dependent).
		Key("Id").
		Table("vehicles", "").
		ForeignKey(model.FK("Id").References("Vehicle").Unique().Required().RequiredDependent())
}

func TestDuplicateColumnAttributesMustMatch(t *testing.T) {
	expectCode(t, validate.CodeDuplicateColumn, func(b *model.Builder) {
		sharingPair(b,
			model.Prop("Name", "string").MaxLength(50),
			model.Prop("Name", "string").MaxLength(100))
	})
	expectCode(t, validate.CodeDuplicateColumn, func(b *model.Builder) {
		sharingPair(b,
			model.Prop("Name", "string"),
			model.Prop("Name", "string").Nullable())
	})
	expectCode(t, validate.CodeDuplicateColumn, func(b *model.Builder) {
		sharingPair(b,
			model.Prop("Name", "string"),
			model.Prop("Name", "int"))
	})
}

func TestDuplicateColumnStoreTypeIsCaseInsensitive(t *testing.T) {
	assert.Empty(t, expectValid(t, func(b *model.Builder) {
		sharingPair(b,
			model.Prop("Name", "string").StoreType("VARCHAR(50)"),
			model.Prop("Name", "string").StoreType("varchar(50)"))
	}))
}

func TestDuplicateColumnDefaultsMatchByConvertedValue(t *testing.T) {
	asString := func(v any) any { return fmt.Sprint(v) }
	assert.Empty(t, expectValid(t, func(b *model.Builder) {
		sharingPair(b,
			model.Prop("Rank", "int").Default(1).Converter("string", asString),
			model.Prop("Rank", "int").Default(int64(1)).Converter("string", asString))
	}))
	expectCode(t, validate.CodeDuplicateColumn, func(b *model.Builder) {
		sharingPair(b,
			model.Prop("Rank", "int").Default(1).Converter("string", asString),
			model.Prop("Rank", "int").Default(2).Converter("string", asString))
	})
}

func TestColumnOrderCollisionWarns(t *testing.T) {
	kinds := expectValid(t, func(b *model.Builder) {
		b.Entity("Customer").
			Properties(
				model.Prop("Id", "int"),
				model.Prop("Name", "string").ColumnOrder(1),
				model.Prop("Email", "string").ColumnOrder(1),
			).
			Key("Id")
	})
	assert.Equal(t, []diag.Kind{diag.KindDuplicateColumnOrders}, kinds)
}

func TestDuplicateKeyNamesMustBeCompatible(t *testing.T) {
	expectCode(t, validate.CodeDuplicateKey, func(b *model.Builder) {
		b.Entity("Vehicle").
			Properties(model.Prop("Id", "int"), model.Prop("Code", "string")).
			Key("Id").
			NamedAlternateKey("AK_code", "Code").
			Table("vehicles", "")
		b.Entity("Engine").
			Properties(model.Prop("Id", "int"), model.Prop("Serial", "string")).
			Key("Id").
			NamedAlternateKey("AK_code", "Serial").
			Table("vehicles", "").
			ForeignKey(model.FK("Id").References("Vehicle").Unique().Required().RequiredDependent())
	})
}

func TestDuplicateForeignKeyNamesMustBeCompatible(t *testing.T) {
	expectCode(t, validate.CodeDuplicateForeignKey, func(b *model.Builder) {
		b.Entity("Customer").Properties(model.Prop("Id", "int")).Key("Id")
		b.Entity("Region").Properties(model.Prop("Id", "int")).Key("Id")
		b.Entity("Order").
			Properties(
				model.Prop("Id", "int"),
				model.Prop("CustomerId", "int"),
				model.Prop("RegionId", "int"),
			).
			Key("Id").
			ForeignKey(model.FK("CustomerId").References("Customer").Named("FK_orders_target")).
			ForeignKey(model.FK("RegionId").References("Region").Named("FK_orders_target"))
	})
}

func TestDuplicateIndexNamesMustBeCompatible(t *testing.T) {
	expectCode(t, validate.CodeDuplicateIndex, func(b *model.Builder) {
		b.Entity("Order").
			Properties(
				model.Prop("Id", "int"),
				model.Prop("Number", "string"),
				model.Prop("PlacedAt", "time.Time"),
			).
			Key("Id").
			Index(model.Idx("Number").Named("IX_orders")).
			Index(model.Idx("PlacedAt").Named("IX_orders"))
	})
}

func TestDuplicateCheckConstraints(t *testing.T) {
	expectCode(t, validate.CodeDuplicateCheckConstraint, func(b *model.Builder) {
		b.Entity("Vehicle").
			Properties(model.Prop("Id", "int")).
			Key("Id").
			CheckConstraint("CK_positive", "id > 0").
			Table("vehicles", "")
		b.Entity("Engine").
			Properties(model.Prop("Id", "int"), model.Prop("Power", "int")).
			Key("Id").
			CheckConstraint("CK_positive", "power > 0").
			Table("vehicles", "").
			ForeignKey(model.FK("Id").References("Vehicle").Unique().Required().RequiredDependent())
	})
	assert.Empty(t, expectValid(t, func(b *model.Builder) {
		b.Entity("Vehicle").
			Properties(model.Prop("Id", "int")).
			Key("Id").
			CheckConstraint("CK_positive", "id > 0").
			Table("vehicles", "")
		b.Entity("Engine").
			Properties(model.Prop("Id", "int"), model.Prop("Power", "int")).
			Key("Id").
			CheckConstraint("CK_positive", "id > 0").
			Table("vehicles", "").
			ForeignKey(model.FK("Id").References("Vehicle").Unique().Required().RequiredDependent())
	}))
}
