package model

import (
	"strings"

	"ariga.io/atlas/sql/postgres"
)

// StoreGeneratedIdentity reports whether a store type string denotes a
// column whose values the database generates on insert: postgres serial
// families and SQL-standard identity columns. Table-per-concrete-type
// hierarchies with such primary keys risk colliding IDs across tables.
func StoreGeneratedIdentity(storeType string) bool {
	st := strings.ToLower(strings.TrimSpace(storeType))
	switch st {
	case postgres.TypeSerial, postgres.TypeBigSerial, postgres.TypeSmallSerial:
		return true
	}
	return strings.Contains(st, "identity")
}
