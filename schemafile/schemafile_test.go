package schemafile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relcheck/model"
	"github.com/syssam/relcheck/schemafile"
)

func sampleModel(t *testing.T) *model.Model {
	t.Helper()
	b := model.New("shop")
	b.TypeMapping("money", "numeric(19,4)")
	b.Function("fn_order_total").Schema("billing").Param("order_id", "int").Returns("money").Scalar()
	b.Entity("Customer").
		Properties(
			model.Prop("Id", "int").ValueGeneratedOnAdd(),
			model.Prop("Email", "string").MaxLength(255).Unicode(true),
			model.Prop("Active", "bool").Nullable().Default(true),
		).
		Key("Id").
		AlternateKey("Email").
		Comment("Registered customers").
		Trigger(model.Trig("trg_customers_audit"))
	b.Entity("Order").
		Properties(
			model.Prop("Id", "int").ValueGeneratedOnAdd(),
			model.Prop("CustomerId", "int").Column("customer_ref"),
			model.Prop("Total", "float64").Precision(19).Scale(4),
		).
		Key("Id").
		Table("orders", "sales").
		ForeignKey(model.FK("CustomerId").References("Customer").Required().Named("FK_orders_customer")).
		Index(model.Idx("CustomerId").Named("IX_orders_customer")).
		CheckConstraint("CK_orders_total", "total >= 0")
	m, err := b.Build()
	require.NoError(t, err)
	return m
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	snap := schemafile.Encode(sampleModel(t))
	require.Equal(t, schemafile.Version, snap.Version)
	require.NotEmpty(t, snap.ID)

	m, err := snap.Decode()
	require.NoError(t, err)

	customer := m.EntityType("Customer")
	require.NotNil(t, customer)
	assert.Equal(t, "Registered customers", customer.Comment())
	email := customer.FindProperty("Email")
	require.NotNil(t, email)
	maxLen, ok := email.MaxLength()
	require.True(t, ok)
	assert.Equal(t, 255, maxLen)

	active := customer.FindProperty("Active")
	require.NotNil(t, active)
	assert.True(t, active.IsNullable())
	dv, ok := active.DefaultValue()
	require.True(t, ok)
	assert.Equal(t, true, dv)
	assert.Equal(t, model.SourceExplicit, active.DefaultValueSource())

	order := m.EntityType("Order")
	require.NotNil(t, order)
	name, schema, ok := order.Table()
	require.True(t, ok)
	assert.Equal(t, "orders", name)
	assert.Equal(t, "sales", schema)
	assert.Equal(t, "customer_ref", order.FindProperty("CustomerId").ColumnName())

	require.Len(t, order.ForeignKeys(), 1)
	fk := order.ForeignKeys()[0]
	assert.Equal(t, "FK_orders_customer", fk.ExplicitName())
	assert.Equal(t, customer, fk.PrincipalEntity())
	assert.True(t, fk.IsRequired())

	require.Len(t, order.Indexes(), 1)
	assert.Equal(t, "IX_orders_customer", order.Indexes()[0].ExplicitName())

	require.Len(t, order.CheckConstraints(), 1)
	assert.Equal(t, "total >= 0", order.CheckConstraints()[0].SQL())

	fn := m.Function("fn_order_total")
	require.NotNil(t, fn)
	assert.True(t, fn.IsScalar())
	assert.Equal(t, "money", fn.ReturnType())

	st, ok := m.TypeMapping("money")
	require.True(t, ok)
	assert.Equal(t, "numeric(19,4)", st)
}

func TestSaveAndLoadYAML(t *testing.T) {
	snap := schemafile.Encode(sampleModel(t))
	path := filepath.Join(t.TempDir(), "shop.yaml")
	require.NoError(t, schemafile.Save(path, snap))

	loaded, err := schemafile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, snap.Name, loaded.Name)
	assert.Equal(t, snap.ID, loaded.ID)
	require.Len(t, loaded.Entities, len(snap.Entities))

	m, err := loaded.Decode()
	require.NoError(t, err)
	assert.NotNil(t, m.EntityType("Order"))
}

func TestSaveAndLoadMsgpack(t *testing.T) {
	snap := schemafile.Encode(sampleModel(t))
	path := filepath.Join(t.TempDir(), "shop.msgpack")
	require.NoError(t, schemafile.Save(path, snap))

	loaded, err := schemafile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, snap.Name, loaded.Name)

	m, err := loaded.Decode()
	require.NoError(t, err)
	assert.NotNil(t, m.EntityType("Customer"))
}

func TestUnsupportedExtension(t *testing.T) {
	_, err := schemafile.Load("model.toml")
	assert.ErrorContains(t, err, "unsupported snapshot extension")

	err = schemafile.Save(filepath.Join(t.TempDir(), "model.toml"), &schemafile.Snapshot{})
	assert.ErrorContains(t, err, "unsupported snapshot extension")
}

func TestLoadRejectsNewerVersions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 99\nname: shop\n"), 0o644))
	_, err := schemafile.Load(path)
	assert.ErrorContains(t, err, "unsupported version")
}

func TestDecodeRejectsUnknownEnumValues(t *testing.T) {
	cases := map[string]*schemafile.Snapshot{
		"generated mode": {
			Version: 1, Name: "m",
			Entities: []schemafile.Entity{{
				Name:       "Customer",
				Properties: []schemafile.Property{{Name: "Id", Type: "int", Generated: "on_update"}},
				Key:        []string{"Id"},
			}},
		},
		"default source": {
			Version: 1, Name: "m",
			Entities: []schemafile.Entity{{
				Name:       "Customer",
				Properties: []schemafile.Property{{Name: "Id", Type: "int", Default: 1, DefaultSource: "guess"}},
				Key:        []string{"Id"},
			}},
		},
		"override kind": {
			Version: 1, Name: "m",
			Entities: []schemafile.Entity{{
				Name: "Customer",
				Properties: []schemafile.Property{{
					Name: "Id", Type: "int",
					Overrides: []schemafile.Override{{Kind: "synonym", Name: "x", Column: "id"}},
				}},
				Key: []string{"Id"},
			}},
		},
		"fragment kind": {
			Version: 1, Name: "m",
			Entities: []schemafile.Entity{{
				Name:       "Customer",
				Properties: []schemafile.Property{{Name: "Id", Type: "int"}},
				Key:        []string{"Id"},
				Fragments:  []schemafile.Fragment{{Kind: "synonym", Name: "x"}},
			}},
		},
	}
	for name, snap := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := snap.Decode()
			assert.Error(t, err)
		})
	}
}
