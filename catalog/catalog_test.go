package catalog_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relcheck/catalog"
	"github.com/syssam/relcheck/model"
)

func TestInspectMySQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES").
		WithArgs("shop").
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME"}).
			AddRow("order_items").
			AddRow("orders"))
	mock.ExpectQuery("SELECT COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE").
		WithArgs("shop", "order_items").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "COLUMN_TYPE", "IS_NULLABLE", "COLUMN_KEY", "EXTRA"}).
			AddRow("id", "bigint", "NO", "PRI", "auto_increment").
			AddRow("order_id", "bigint", "NO", "MUL", "").
			AddRow("note", "varchar(255)", "YES", "", ""))
	mock.ExpectQuery("SELECT COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE").
		WithArgs("shop", "orders").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "COLUMN_TYPE", "IS_NULLABLE", "COLUMN_KEY", "EXTRA"}).
			AddRow("id", "bigint", "NO", "PRI", "auto_increment").
			AddRow("placed_at", "datetime", "NO", "", ""))

	m, err := catalog.Inspect(context.Background(), db, catalog.MySQL, "shop")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	item := m.EntityType("OrderItem")
	require.NotNil(t, item)
	name, schema, ok := item.Table()
	require.True(t, ok)
	assert.Equal(t, "order_items", name)
	assert.Equal(t, "shop", schema)

	id := item.FindProperty("ID")
	require.NotNil(t, id)
	assert.Equal(t, "bigint", id.StoreType())
	assert.Equal(t, "int64", id.Type())
	assert.Equal(t, model.GeneratedOnAdd, id.ValueGenerated())

	note := item.FindProperty("Note")
	require.NotNil(t, note)
	assert.True(t, note.IsNullable())
	assert.Equal(t, "string", note.Type())

	pk := item.PrimaryKey()
	require.NotNil(t, pk)
	assert.Equal(t, []string{"ID"}, pk.PropertyNames())

	order := m.EntityType("Order")
	require.NotNil(t, order)
	placed := order.FindProperty("PlacedAt")
	require.NotNil(t, placed)
	assert.Equal(t, "time.Time", placed.Type())
}

func TestInspectSQLite(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT name FROM sqlite_master").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("users"))
	mock.ExpectQuery("PRAGMA table_info").
		WillReturnRows(sqlmock.NewRows([]string{"cid", "name", "type", "notnull", "dflt_value", "pk"}).
			AddRow(0, "id", "INTEGER", 0, nil, 1).
			AddRow(1, "email", "TEXT", 1, nil, 0))

	m, err := catalog.Inspect(context.Background(), db, catalog.SQLite, "")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	user := m.EntityType("User")
	require.NotNil(t, user)
	email := user.FindProperty("Email")
	require.NotNil(t, email)
	assert.False(t, email.IsNullable())

	id := user.FindProperty("ID")
	require.NotNil(t, id)
	assert.Equal(t, model.GeneratedOnAdd, id.ValueGenerated())
}

func TestInspectUnsupportedDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = catalog.Inspect(context.Background(), db, catalog.Dialect("oracle"), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported dialect")
}

func TestDiff(t *testing.T) {
	mapped, err := buildModel(func(b *model.Builder) {
		b.Entity("User").
			Properties(
				model.Prop("Id", "int").StoreType("bigint"),
				model.Prop("Email", "string").StoreType("varchar(255)"),
				model.Prop("Nickname", "string").StoreType("varchar(64)"),
			).
			Key("Id").
			Table("users", "")
	})
	require.NoError(t, err)

	inspected, err := buildModel(func(b *model.Builder) {
		b.Entity("User").
			Properties(
				model.Prop("Id", "int").StoreType("bigint"),
				model.Prop("Email", "string").StoreType("text"),
				model.Prop("CreatedAt", "time.Time").StoreType("datetime"),
			).
			Key("Id").
			Table("users", "")
		b.Entity("AuditLog").
			Properties(model.Prop("Id", "int")).
			Key("Id").
			Table("audit_logs", "")
	})
	require.NoError(t, err)

	drift := catalog.Diff(mapped, inspected)
	assert.ElementsMatch(t, []string{
		`column "users"."email" is mapped as "varchar(255)" but the database has "text"`,
		`column "users"."nickname" is mapped but missing from the database`,
		`column "users"."created_at" exists in the database but is not mapped`,
		`table "audit_logs" exists in the database but is not mapped`,
	}, drift)
}

func TestDiffClean(t *testing.T) {
	build := func(b *model.Builder) {
		b.Entity("User").
			Properties(model.Prop("Id", "int").StoreType("bigint")).
			Key("Id").
			Table("users", "")
	}
	mapped, err := buildModel(build)
	require.NoError(t, err)
	inspected, err := buildModel(build)
	require.NoError(t, err)

	assert.Empty(t, catalog.Diff(mapped, inspected))
}

func buildModel(fn func(*model.Builder)) (*model.Model, error) {
	b := model.New("test")
	fn(b)
	return b.Build()
}
