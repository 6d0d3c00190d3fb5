// Package catalog reads the physical schema of a live database into a
// mapping model skeleton: one entity type per table with its columns,
// nullability, store types and primary key. The skeleton can be
// validated like any model, or diffed against a snapshot to surface
// drift between the mapped model and the actual database.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/syssam/relcheck/internal/names"
	"github.com/syssam/relcheck/model"
)

// Dialect selects the introspection queries.
type Dialect string

// Supported dialects.
const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// column is one introspected table column.
type column struct {
	name      string
	storeType string
	nullable  bool
	pk        bool
	generated bool
}

// Inspect reads the tables of the given schema into a model skeleton.
// For SQLite the schema argument is ignored.
func Inspect(ctx context.Context, db *sql.DB, dialect Dialect, schema string) (*model.Model, error) {
	tables, err := tableNames(ctx, db, dialect, schema)
	if err != nil {
		return nil, err
	}
	b := model.New(schemaName(dialect, schema))
	for _, table := range tables {
		cols, err := tableColumns(ctx, db, dialect, schema, table)
		if err != nil {
			return nil, err
		}
		eb := b.Entity(entityName(table)).Table(table, schema)
		var key []string
		for _, c := range cols {
			pb := model.Prop(propertyName(c.name), logicalType(c.storeType)).
				Column(c.name).
				StoreType(c.storeType)
			if c.nullable {
				pb.Nullable()
			}
			if c.generated {
				pb.ValueGeneratedOnAdd()
			}
			eb.Properties(pb)
			if c.pk {
				key = append(key, propertyName(c.name))
			}
		}
		if len(key) > 0 {
			eb.Key(key...)
		}
	}
	m, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("catalog: build skeleton: %w", err)
	}
	return m, nil
}

func schemaName(dialect Dialect, schema string) string {
	if schema == "" {
		return string(dialect)
	}
	return schema
}

func tableNames(ctx context.Context, db *sql.DB, dialect Dialect, schema string) ([]string, error) {
	var (
		query string
		args  []any
	)
	switch dialect {
	case MySQL:
		query = "SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME"
		args = []any{schema}
	case Postgres:
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = $1 AND table_type = 'BASE TABLE' ORDER BY table_name"
		args = []any{schema}
	case SQLite:
		query = "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"
	default:
		return nil, fmt.Errorf("catalog: unsupported dialect %q", dialect)
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog: list tables: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("catalog: scan table name: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func tableColumns(ctx context.Context, db *sql.DB, dialect Dialect, schema, table string) ([]column, error) {
	switch dialect {
	case MySQL:
		return mysqlColumns(ctx, db, schema, table)
	case Postgres:
		return postgresColumns(ctx, db, schema, table)
	case SQLite:
		return sqliteColumns(ctx, db, table)
	default:
		return nil, fmt.Errorf("catalog: unsupported dialect %q", dialect)
	}
}

func mysqlColumns(ctx context.Context, db *sql.DB, schema, table string) ([]column, error) {
	const query = "SELECT COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE, COLUMN_KEY, EXTRA FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION"
	rows, err := db.QueryContext(ctx, query, schema, table)
	if err != nil {
		return nil, fmt.Errorf("catalog: columns of %s: %w", table, err)
	}
	defer rows.Close()
	var out []column
	for rows.Next() {
		var name, storeType, nullable, key, extra string
		if err := rows.Scan(&name, &storeType, &nullable, &key, &extra); err != nil {
			return nil, fmt.Errorf("catalog: scan column of %s: %w", table, err)
		}
		out = append(out, column{
			name:      name,
			storeType: storeType,
			nullable:  strings.EqualFold(nullable, "YES"),
			pk:        strings.EqualFold(key, "PRI"),
			generated: strings.Contains(strings.ToLower(extra), "auto_increment"),
		})
	}
	return out, rows.Err()
}

func postgresColumns(ctx context.Context, db *sql.DB, schema, table string) ([]column, error) {
	const query = `SELECT c.column_name, c.data_type, c.is_nullable,
       EXISTS (
           SELECT 1 FROM information_schema.table_constraints tc
           JOIN information_schema.key_column_usage kcu
             ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema
           WHERE tc.constraint_type = 'PRIMARY KEY' AND tc.table_schema = c.table_schema
             AND tc.table_name = c.table_name AND kcu.column_name = c.column_name
       ) AS is_pk,
       c.column_default
FROM information_schema.columns c
WHERE c.table_schema = $1 AND c.table_name = $2
ORDER BY c.ordinal_position`
	rows, err := db.QueryContext(ctx, query, schema, table)
	if err != nil {
		return nil, fmt.Errorf("catalog: columns of %s: %w", table, err)
	}
	defer rows.Close()
	var out []column
	for rows.Next() {
		var (
			name, storeType, nullable string
			pk                        bool
			columnDefault             sql.NullString
		)
		if err := rows.Scan(&name, &storeType, &nullable, &pk, &columnDefault); err != nil {
			return nil, fmt.Errorf("catalog: scan column of %s: %w", table, err)
		}
		out = append(out, column{
			name:      name,
			storeType: storeType,
			nullable:  strings.EqualFold(nullable, "YES"),
			pk:        pk,
			generated: columnDefault.Valid && strings.Contains(columnDefault.String, "nextval("),
		})
	}
	return out, rows.Err()
}

func sqliteColumns(ctx context.Context, db *sql.DB, table string) ([]column, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, fmt.Errorf("catalog: columns of %s: %w", table, err)
	}
	defer rows.Close()
	var out []column
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, storeType  string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &storeType, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("catalog: scan column of %s: %w", table, err)
		}
		out = append(out, column{
			name:      name,
			storeType: storeType,
			nullable:  notNull == 0 && pk == 0,
			pk:        pk > 0,
			generated: pk > 0 && strings.EqualFold(storeType, "integer"),
		})
	}
	return out, rows.Err()
}

// entityName derives an entity type name from a table name.
func entityName(table string) string {
	return names.Pascal(names.Singularize(table))
}

// propertyName derives a property name from a column name.
func propertyName(col string) string {
	return names.Pascal(col)
}

// logicalType maps a store type string to the logical type used in
// model skeletons.
func logicalType(storeType string) string {
	st := strings.ToLower(storeType)
	switch {
	case strings.Contains(st, "bigint"):
		return "int64"
	case strings.Contains(st, "smallint"):
		return "int16"
	case strings.Contains(st, "int") || strings.Contains(st, "serial"):
		return "int"
	case strings.Contains(st, "bool") || st == "bit(1)" || st == "tinyint(1)":
		return "bool"
	case strings.Contains(st, "char") || strings.Contains(st, "text") || strings.Contains(st, "clob"):
		return "string"
	case strings.Contains(st, "timestamp") || strings.Contains(st, "datetime") || strings.Contains(st, "date"):
		return "time.Time"
	case strings.Contains(st, "decimal") || strings.Contains(st, "numeric") ||
		strings.Contains(st, "double") || strings.Contains(st, "real") || strings.Contains(st, "float"):
		return "float64"
	case strings.Contains(st, "uuid"):
		return "uuid.UUID"
	case strings.Contains(st, "blob") || strings.Contains(st, "bytea") || strings.Contains(st, "binary"):
		return "[]byte"
	default:
		return "string"
	}
}
