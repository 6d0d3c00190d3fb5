package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relcheck/model"
)

func build(t *testing.T, fn func(*model.Builder)) *model.Model {
	t.Helper()
	b := model.New("app")
	fn(b)
	m, err := b.Build()
	require.NoError(t, err)
	return m
}

func TestDefaultTableBinding(t *testing.T) {
	m := build(t, func(b *model.Builder) {
		b.Entity("Customer").Properties(model.Prop("Id", "int")).Key("Id")
		b.Entity("OrderItem").Properties(model.Prop("Id", "int")).Key("Id")
		b.Entity("billing.Invoice").Properties(model.Prop("Id", "int")).Key("Id")
	})

	name, schema, ok := m.EntityType("Customer").Table()
	require.True(t, ok)
	assert.Equal(t, "customers", name)
	assert.Empty(t, schema)

	name, _, ok = m.EntityType("OrderItem").Table()
	require.True(t, ok)
	assert.Equal(t, "order_items", name)

	inv := m.EntityType("billing.Invoice")
	assert.Equal(t, "Invoice", inv.ShortName())
	name, _, ok = inv.Table()
	require.True(t, ok)
	assert.Equal(t, "invoices", name)
}

func TestExplicitBindingWins(t *testing.T) {
	m := build(t, func(b *model.Builder) {
		b.Entity("Customer").Properties(model.Prop("Id", "int")).Key("Id").Table("people", "crm")
		b.Entity("Report").Properties(model.Prop("Id", "int")).Key("Id").View("reports_v", "")
	})

	name, schema, ok := m.EntityType("Customer").Table()
	require.True(t, ok)
	assert.Equal(t, "people", name)
	assert.Equal(t, "crm", schema)

	_, _, ok = m.EntityType("Report").Table()
	assert.False(t, ok, "view-mapped entity should get no default table")
	name, _, ok = m.EntityType("Report").View()
	require.True(t, ok)
	assert.Equal(t, "reports_v", name)
}

func TestSingleTableDerivedInheritsBinding(t *testing.T) {
	m := build(t, func(b *model.Builder) {
		b.Entity("Animal").
			Properties(model.Prop("Id", "int"), model.Prop("Kind", "string")).
			Key("Id").
			Discriminator("Kind")
		b.Entity("Dog").Base("Animal").DiscriminatorValue("dog")
	})

	name, _, ok := m.EntityType("Dog").Table()
	require.True(t, ok)
	assert.Equal(t, "animals", name)
	assert.Same(t, m.EntityType("Animal"), m.EntityType("Dog").Root())
}

func TestTPTDerivedGetsOwnTable(t *testing.T) {
	m := build(t, func(b *model.Builder) {
		b.Entity("Person").Properties(model.Prop("Id", "int")).Key("Id").Strategy(model.StrategyTPT)
		b.Entity("Employee").Base("Person")
	})

	name, _, ok := m.EntityType("Employee").Table()
	require.True(t, ok)
	assert.Equal(t, "employees", name)
	assert.Equal(t, model.StrategyTPT, m.EntityType("Employee").EffectiveStrategy())
}

func TestAbstractTPCRootStaysUnmapped(t *testing.T) {
	m := build(t, func(b *model.Builder) {
		b.Entity("Payment").Abstract().Properties(model.Prop("Id", "int")).Key("Id").Strategy(model.StrategyTPC)
		b.Entity("CardPayment").Base("Payment")
	})

	_, _, ok := m.EntityType("Payment").Table()
	assert.False(t, ok)
	name, _, ok := m.EntityType("CardPayment").Table()
	require.True(t, ok)
	assert.Equal(t, "card_payments", name)
}

func TestExcludedFromMigrationsInherited(t *testing.T) {
	m := build(t, func(b *model.Builder) {
		b.Entity("Base").Properties(model.Prop("Id", "int")).Key("Id").ExcludeFromMigrations()
		b.Entity("Derived").Base("Base")
	})
	assert.True(t, m.EntityType("Derived").ExcludedFromMigrations())
}

func TestDerivedTypesAndAssignability(t *testing.T) {
	m := build(t, func(b *model.Builder) {
		b.Entity("A").Properties(model.Prop("Id", "int")).Key("Id")
		b.Entity("B").Base("A")
		b.Entity("C").Base("B")
		b.Entity("D").Base("A")
	})
	a, c := m.EntityType("A"), m.EntityType("C")
	names := []string{}
	for _, et := range a.DerivedTypes() {
		names = append(names, et.Name())
	}
	assert.ElementsMatch(t, []string{"B", "C", "D"}, names)
	assert.True(t, a.IsAssignableFrom(c))
	assert.True(t, a.IsAssignableFrom(a))
	assert.False(t, c.IsAssignableFrom(a))
}

func TestPropertyLookupWalksAncestors(t *testing.T) {
	m := build(t, func(b *model.Builder) {
		b.Entity("Base").Properties(model.Prop("Id", "int"), model.Prop("Name", "string")).Key("Id")
		b.Entity("Derived").Base("Base").Properties(model.Prop("Extra", "string"))
	})
	d := m.EntityType("Derived")
	require.NotNil(t, d.FindProperty("Name"))
	assert.Same(t, m.EntityType("Base").FindProperty("Id"), d.FindProperty("Id"))

	all := d.AllProperties()
	require.Len(t, all, 3)
	assert.Equal(t, "Id", all[0].Name(), "base properties come first")
	assert.Equal(t, "Extra", all[2].Name())
}

func TestForeignKeyResolution(t *testing.T) {
	m := build(t, func(b *model.Builder) {
		b.Entity("Customer").
			Properties(model.Prop("Id", "int"), model.Prop("Code", "string")).
			Key("Id").
			NamedAlternateKey("AK_Code", "Code")
		b.Entity("Order").
			Properties(model.Prop("Id", "int"), model.Prop("CustomerCode", "string")).
			Key("Id").
			ForeignKey(model.FK("CustomerCode").References("Customer", "Code").Required())
	})
	fk := m.EntityType("Order").ForeignKeys()[0]
	assert.Equal(t, "Customer", fk.PrincipalEntity().Name())
	assert.False(t, fk.PrincipalKey().IsPrimary())
	assert.True(t, fk.IsRequired())
	assert.False(t, fk.IsIdentifying())

	refs := m.EntityType("Customer").ReferencingForeignKeys()
	require.Len(t, refs, 1)
	assert.Same(t, fk, refs[0])
}

func TestIdentifyingForeignKey(t *testing.T) {
	m := build(t, func(b *model.Builder) {
		b.Entity("Vehicle").Properties(model.Prop("Id", "int")).Key("Id").Table("vehicles", "")
		b.Entity("Engine").
			Properties(model.Prop("Id", "int")).
			Key("Id").
			Table("vehicles", "").
			ForeignKey(model.FK("Id").References("Vehicle").Unique())
	})
	fk := m.EntityType("Engine").ForeignKeys()[0]
	assert.True(t, fk.IsPrimaryKeyFK())
	assert.True(t, fk.IsIdentifying())
	assert.True(t, fk.IsRowInternal(model.TableID("vehicles", "")))
	assert.False(t, fk.IsRowInternal(model.TableID("engines", "")))
}

func TestBuildErrors(t *testing.T) {
	cases := map[string]struct {
		fn   func(*model.Builder)
		want string
	}{
		"unknown base": {
			fn: func(b *model.Builder) {
				b.Entity("A").Base("Missing")
			},
			want: "unknown base type",
		},
		"inheritance cycle": {
			fn: func(b *model.Builder) {
				b.Entity("A").Base("B")
				b.Entity("B").Base("A")
			},
			want: "inheritance cycle",
		},
		"duplicate property": {
			fn: func(b *model.Builder) {
				b.Entity("A").Properties(model.Prop("X", "int"), model.Prop("X", "string"))
			},
			want: "duplicate property",
		},
		"unknown key property": {
			fn: func(b *model.Builder) {
				b.Entity("A").Properties(model.Prop("Id", "int")).Key("Missing")
			},
			want: "unknown property",
		},
		"unknown principal": {
			fn: func(b *model.Builder) {
				b.Entity("A").
					Properties(model.Prop("Id", "int"), model.Prop("BId", "int")).
					Key("Id").
					ForeignKey(model.FK("BId").References("Missing"))
			},
			want: "unknown entity type",
		},
		"keyless principal": {
			fn: func(b *model.Builder) {
				b.Entity("A").Properties(model.Prop("Id", "int"))
				b.Entity("B").
					Properties(model.Prop("Id", "int"), model.Prop("AId", "int")).
					Key("Id").
					ForeignKey(model.FK("AId").References("A"))
			},
			want: "no primary key",
		},
		"unknown discriminator": {
			fn: func(b *model.Builder) {
				b.Entity("A").Properties(model.Prop("Id", "int")).Key("Id").Discriminator("Missing")
			},
			want: "unknown discriminator property",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			b := model.New("app")
			tc.fn(b)
			_, err := b.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestEntityBuilderIsIdempotentPerName(t *testing.T) {
	m := build(t, func(b *model.Builder) {
		b.Entity("A").Properties(model.Prop("Id", "int"))
		b.Entity("A").Key("Id")
	})
	require.Len(t, m.EntityTypes(), 1)
	assert.NotNil(t, m.EntityType("A").PrimaryKey())
}
