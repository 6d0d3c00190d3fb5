package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/syssam/relcheck/model"
)

// Diff compares the table bindings of a mapped model against an
// inspected database skeleton and reports drift as human readable
// lines. A nil result means no drift was found.
func Diff(mapped, inspected *model.Model) []string {
	want := tableIndex(mapped)
	have := tableIndex(inspected)

	var out []string
	for _, name := range sortedKeys(want) {
		cols := want[name]
		dbCols, ok := have[name]
		if !ok {
			out = append(out, fmt.Sprintf("table %q is mapped but missing from the database", name))
			continue
		}
		for _, c := range sortedKeys(cols) {
			dbType, ok := dbCols[c]
			if !ok {
				out = append(out, fmt.Sprintf("column %q.%q is mapped but missing from the database", name, c))
				continue
			}
			wantType := cols[c]
			if wantType != "" && dbType != "" && !strings.EqualFold(wantType, dbType) {
				out = append(out, fmt.Sprintf("column %q.%q is mapped as %q but the database has %q", name, c, wantType, dbType))
			}
		}
		for _, c := range sortedKeys(dbCols) {
			if _, ok := cols[c]; !ok {
				out = append(out, fmt.Sprintf("column %q.%q exists in the database but is not mapped", name, c))
			}
		}
	}
	for _, name := range sortedKeys(have) {
		if _, ok := want[name]; !ok {
			out = append(out, fmt.Sprintf("table %q exists in the database but is not mapped", name))
		}
	}
	return out
}

// tableIndex flattens a model into table -> column -> store type.
// Types sharing a table contribute to the same column set.
func tableIndex(m *model.Model) map[string]map[string]string {
	idx := make(map[string]map[string]string)
	for _, et := range m.EntityTypes() {
		name, schema, ok := et.Table()
		if !ok {
			continue
		}
		so := model.TableID(name, schema)
		key := so.String()
		cols := idx[key]
		if cols == nil {
			cols = make(map[string]string)
			idx[key] = cols
		}
		for _, p := range et.AllProperties() {
			cols[p.ColumnNameIn(so)] = p.StoreType()
		}
	}
	return idx
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
