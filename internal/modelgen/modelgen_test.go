package modelgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relcheck/internal/modelgen"
	"github.com/syssam/relcheck/schemafile"
)

func TestGenerate(t *testing.T) {
	maxLen := 255
	s := &schemafile.Snapshot{
		Version: schemafile.Version,
		Name:    "shop",
		Entities: []schemafile.Entity{
			{
				Name: "Order",
				Properties: []schemafile.Property{
					{Name: "Id", Type: "int", Generated: "on_add"},
					{Name: "Email", Type: "string", Nullable: true, MaxLength: &maxLen},
				},
				Key:   []string{"Id"},
				Table: &schemafile.Binding{Name: "orders", Schema: "shop"},
				Indexes: []schemafile.Index{
					{Name: "IX_Orders_Email", Properties: []string{"Email"}, Unique: true},
				},
			},
			{
				Name: "OrderItem",
				Properties: []schemafile.Property{
					{Name: "Id", Type: "int", Generated: "on_add"},
					{Name: "OrderId", Type: "int"},
				},
				Key:   []string{"Id"},
				Table: &schemafile.Binding{Name: "order_items", Schema: "shop"},
				ForeignKeys: []schemafile.ForeignKey{
					{Properties: []string{"OrderId"}, Principal: "Order", Required: true},
				},
			},
		},
	}

	src, err := modelgen.Generate(s, "fixtures")
	require.NoError(t, err)
	code := string(src)

	assert.Contains(t, code, "package fixtures")
	assert.Contains(t, code, "func BuildShopModel()")
	assert.Contains(t, code, `model.New("shop")`)
	assert.Contains(t, code, `b.Entity("Order")`)
	assert.Contains(t, code, `model.Prop("Email", "string").Nullable().MaxLength(255)`)
	assert.Contains(t, code, `.Table("orders", "shop")`)
	assert.Contains(t, code, `model.FK("OrderId").References("Order").Required()`)
	assert.Contains(t, code, `model.Idx("Email").Named("IX_Orders_Email").Unique()`)
	assert.Contains(t, code, "DO NOT EDIT.")
}

func TestGenerateFuncName(t *testing.T) {
	cases := map[string]string{
		"shop":        "BuildShopModel",
		"order_entry": "BuildOrderEntryModel",
		"core-db":     "BuildCoreDbModel",
		"":            "BuildSnapshotModel",
	}
	for name, want := range cases {
		s := &schemafile.Snapshot{Version: schemafile.Version, Name: name}
		src, err := modelgen.Generate(s, "fixtures")
		require.NoError(t, err)
		assert.Contains(t, string(src), "func "+want+"(", "model name %q", name)
	}
}

func TestGenerateNil(t *testing.T) {
	_, err := modelgen.Generate(nil, "fixtures")
	require.Error(t, err)
}
