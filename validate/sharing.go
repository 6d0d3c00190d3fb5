package validate

import (
	"strings"

	"github.com/syssam/relcheck/model"
)

// validateSharedTables validates every table of the model: the sharing
// graph of the entity types mapped there, the compatibility of all
// elements landing on shared physical names, required concurrency
// tokens and optional dependent row identity.
func (r *run) validateSharedTables() error {
	groups, order := r.storeObjectGroups(model.KindTable)
	for _, so := range order {
		group := groups[so]
		if err := r.resolveSharing(so, group); err != nil {
			return err
		}
		if err := r.checkColumns(so, group); err != nil {
			return err
		}
		if err := r.checkKeys(so, group); err != nil {
			return err
		}
		if err := r.checkForeignKeys(so, group); err != nil {
			return err
		}
		if err := r.checkIndexes(so, group); err != nil {
			return err
		}
		if err := r.checkCheckConstraints(so, group); err != nil {
			return err
		}
		r.checkTriggerNames(so, group)
		if err := r.checkConcurrencyTokens(so, group); err != nil {
			return err
		}
		if err := r.checkOptionalDependents(so, group); err != nil {
			return err
		}
	}
	return nil
}

// validateSharedViews validates every view: the same sharing graph and
// column compatibility as tables, minus the schema objects views do
// not carry (constraints, indexes, triggers, concurrency tokens).
func (r *run) validateSharedViews() error {
	groups, order := r.storeObjectGroups(model.KindView)
	for _, so := range order {
		group := groups[so]
		if err := r.resolveSharing(so, group); err != nil {
			return err
		}
		if err := r.checkColumns(so, group); err != nil {
			return err
		}
	}
	return nil
}

// storeObjectGroups maps every store object of the given kind to the
// entity types mapped there, through their main binding or through an
// entity splitting fragment, in model registration order.
func (r *run) storeObjectGroups(kind model.StoreObjectKind) (map[model.StoreObject][]*model.EntityType, []model.StoreObject) {
	groups := make(map[model.StoreObject][]*model.EntityType)
	var order []model.StoreObject
	add := func(so model.StoreObject, et *model.EntityType) {
		members := groups[so]
		for _, m := range members {
			if m == et {
				return
			}
		}
		if members == nil {
			order = append(order, so)
		}
		groups[so] = append(members, et)
	}
	for _, et := range r.m.EntityTypes() {
		if so, ok := model.StoreObjectOf(et, kind); ok {
			add(so, et)
		}
		for _, f := range et.Fragments() {
			if f.StoreObject().Kind == kind {
				add(f.StoreObject(), et)
			}
		}
	}
	return groups, order
}

// resolveSharing determines the root of a set of entity types mapped
// to one store object, then proves every other member connected to it
// through inheritance or an identifying foreign key, comparing primary
// keys, comments and migration exclusion along every link.
func (r *run) resolveSharing(so model.StoreObject, group []*model.EntityType) error {
	if len(group) <= 1 {
		return nil
	}
	unvalidated := make(map[*model.EntityType]struct{}, len(group))
	for _, et := range group {
		unvalidated[et] = struct{}{}
	}
	var root *model.EntityType
	for _, et := range group {
		linked := r.identifyingLink(et, unvalidated)
		if baseInGroup(et, unvalidated) {
			if linked != nil && !linked.PrincipalEntity().IsAssignableFrom(et) {
				// A derived type cannot share the object both through its
				// base and through an identifying relationship to a
				// different principal.
				return newError(CodeAmbiguousSharingRoute,
					"entity type %s on %s %q shares both via inheritance and via an identifying foreign key to %s",
					et.Name(), so.Kind, so.String(), linked.PrincipalEntity().Name())
			}
			continue
		}
		if linked != nil {
			continue
		}
		if root != nil {
			return newError(CodeAmbiguousSharingRoot,
				"entity type %s is mapped to %s %q but has no relationship to %s establishing how they share it",
				et.Name(), so.Kind, so.String(), root.Name())
		}
		root = et
	}
	if root == nil {
		// Only identifying cycles remain; nothing can anchor the object.
		return newError(CodeUnreachableSharedType,
			"entity type %s is mapped to %s %q but no sharing root could be established",
			group[0].Name(), so.Kind, so.String())
	}

	delete(unvalidated, root)
	comment := root.Comment()
	commentOwner := root
	queue := []*model.EntityType{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, et := range group {
			if _, pending := unvalidated[et]; !pending {
				continue
			}
			if !current.IsAssignableFrom(et) && !pointsAt(et, current) {
				continue
			}
			if err := comparePrimaryKeys(so, current, et); err != nil {
				return err
			}
			if c := et.Comment(); c != "" {
				if comment == "" {
					comment, commentOwner = c, et
				} else if c != comment {
					return newError(CodeCommentMismatch,
						"entity types %s and %s on %s %q declare different comments %q and %q",
						commentOwner.Name(), et.Name(), so.Kind, so.String(), comment, c)
				}
			}
			if et.ExcludedFromMigrations() != root.ExcludedFromMigrations() {
				return newError(CodeExclusionMismatch,
					"entity types %s and %s on %s %q disagree on migrations exclusion",
					root.Name(), et.Name(), so.Kind, so.String())
			}
			delete(unvalidated, et)
			queue = append(queue, et)
		}
	}
	for _, et := range group {
		if _, pending := unvalidated[et]; pending {
			return newError(CodeUnreachableSharedType,
				"entity type %s is mapped to %s %q but has no relationship to the root %s",
				et.Name(), so.Kind, so.String(), root.Name())
		}
	}
	return nil
}

// identifyingLink returns an identifying foreign key of et whose
// principal is another member of the group, or nil.
func (r *run) identifyingLink(et *model.EntityType, group map[*model.EntityType]struct{}) *model.ForeignKey {
	for _, fk := range et.ForeignKeys() {
		if !fk.IsIdentifying() || fk.PrincipalEntity() == et {
			continue
		}
		if _, ok := group[fk.PrincipalEntity()]; ok {
			return fk
		}
	}
	return nil
}

// baseInGroup reports whether any ancestor of et is in the group.
func baseInGroup(et *model.EntityType, group map[*model.EntityType]struct{}) bool {
	for base := et.BaseType(); base != nil; base = base.BaseType() {
		if _, ok := group[base]; ok {
			return true
		}
	}
	return false
}

// pointsAt reports whether et declares an identifying foreign key whose
// principal is the given type.
func pointsAt(et, principal *model.EntityType) bool {
	for _, fk := range et.ForeignKeys() {
		if fk.IsIdentifying() && fk.PrincipalEntity() == principal {
			return true
		}
	}
	return false
}

// comparePrimaryKeys checks that a newly connected sharing member
// agrees with its linking predecessor on the primary key name and
// columns at the shared store object.
func comparePrimaryKeys(so model.StoreObject, current, next *model.EntityType) error {
	cpk, npk := current.PrimaryKey(), next.PrimaryKey()
	if cpk == nil && npk == nil {
		return nil
	}
	if cpk == nil || npk == nil {
		keyless, keyed := current, next
		if npk == nil {
			keyless, keyed = next, current
		}
		return newError(CodeKeyNameMismatch,
			"entity types %s and %s share %s %q but %s has no primary key",
			keyed.Name(), keyless.Name(), so.Kind, so.String(), keyless.Name())
	}
	if cpk.Name(so) != npk.Name(so) || !columnsEqual(cpk.ColumnNames(so), npk.ColumnNames(so)) {
		return newError(CodeKeyNameMismatch,
			"entity types %s and %s share %s %q but map primary keys %s (%s) and %s (%s) there",
			current.Name(), next.Name(), so.Kind, so.String(),
			cpk.Name(so), formatProperties(cpk.PropertyNames()),
			npk.Name(so), formatProperties(npk.PropertyNames()))
	}
	return nil
}

func columnsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func formatProperties(names []string) string {
	return "{'" + strings.Join(names, "', '") + "'}"
}

// checkConcurrencyTokens verifies that every entity type sharing a
// table carries a column for each concurrency token declared by any
// sharer, either through its own hierarchy or through the principals
// its row is merged with.
func (r *run) checkConcurrencyTokens(so model.StoreObject, group []*model.EntityType) error {
	if len(group) <= 1 {
		return nil
	}
	tokens := make(map[string]*model.Property)
	var tokenOrder []string
	for _, et := range group {
		for _, p := range et.AllProperties() {
			if !p.IsConcurrencyToken() {
				continue
			}
			col := p.ColumnNameIn(so)
			if _, ok := tokens[col]; !ok {
				tokens[col] = p
				tokenOrder = append(tokenOrder, col)
			}
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	for _, et := range group {
		for _, col := range tokenOrder {
			if r.rowMapsColumn(et, so, col, nil) {
				continue
			}
			return newError(CodeMissingConcurrencyToken,
				"entity type %s sharing table %q is missing a property mapped to concurrency token column %q",
				et.Name(), so.String(), col)
		}
	}
	return nil
}

// rowMapsColumn reports whether the row of et on so carries the given
// column: through a property of its own hierarchy, or through a
// principal its row is merged with by an identifying foreign key.
func (r *run) rowMapsColumn(et *model.EntityType, so model.StoreObject, col string, seen map[*model.EntityType]struct{}) bool {
	if seen == nil {
		seen = make(map[*model.EntityType]struct{})
	}
	if _, ok := seen[et]; ok {
		return false
	}
	seen[et] = struct{}{}
	for _, p := range et.AllProperties() {
		if p.ColumnNameIn(so) == col {
			return true
		}
	}
	for _, fk := range et.ForeignKeys() {
		if !fk.IsIdentifying() {
			continue
		}
		if pso, ok := model.StoreObjectOf(fk.PrincipalEntity(), so.Kind); ok && pso == so {
			if r.rowMapsColumn(fk.PrincipalEntity(), so, col, seen) {
				return true
			}
		}
	}
	return false
}
