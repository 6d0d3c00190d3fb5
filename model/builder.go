package model

import (
	"errors"
	"fmt"

	"github.com/syssam/relcheck/internal/names"
)

// Builder assembles a Model through a fluent API. All configuration is
// collected first; Build links the graph, resolves store bindings per
// the inheritance strategy and returns the finished read-only model.
type Builder struct {
	name      string
	entities  []*EntityBuilder
	byName    map[string]*EntityBuilder
	functions []*FunctionBuilder
	mappings  map[string]string
}

// New returns a Builder for a model with the given name, preloaded with
// the common scalar type mappings.
func New(name string) *Builder {
	b := &Builder{
		name:   name,
		byName: make(map[string]*EntityBuilder),
		mappings: map[string]string{
			"bool":      "boolean",
			"int":       "integer",
			"int16":     "smallint",
			"int64":     "bigint",
			"float64":   "double precision",
			"string":    "text",
			"time.Time": "timestamp",
			"[]byte":    "bytea",
			"uuid.UUID": "uuid",
		},
	}
	return b
}

// Entity returns the builder for the entity type with the given name,
// creating it on first use.
func (b *Builder) Entity(name string) *EntityBuilder {
	if eb, ok := b.byName[name]; ok {
		return eb
	}
	eb := &EntityBuilder{b: b, name: name}
	b.byName[name] = eb
	b.entities = append(b.entities, eb)
	return eb
}

// Function registers a database function and returns its builder.
func (b *Builder) Function(name string) *FunctionBuilder {
	fb := &FunctionBuilder{name: name}
	b.functions = append(b.functions, fb)
	return fb
}

// TypeMapping registers a logical-to-store type mapping.
func (b *Builder) TypeMapping(typ, storeType string) *Builder {
	b.mappings[typ] = storeType
	return b
}

// ClearTypeMapping removes a logical type from the mapping table.
// Useful in tests exercising unmappable function parameters.
func (b *Builder) ClearTypeMapping(typ string) *Builder {
	delete(b.mappings, typ)
	return b
}

// EntityBuilder collects the configuration of one entity type.
type EntityBuilder struct {
	b    *Builder
	name string

	abstract bool
	owned    bool
	baseName string

	props []*PropertyBuilder

	keyProps []string
	keyName  string
	altKeys  []altKeyDef

	fks      []*ForeignKeyBuilder
	idxs     []*IndexBuilder
	checks   []checkDef
	triggers []*TriggerBuilder

	fragments []StoreObject

	strategy  MappingStrategy
	discProp  string
	discValue any

	tableName, tableSchema string
	tableSet               bool
	viewName, viewSchema   string
	viewSet                bool
	sqlQuery               string
	functionName           string

	comment     string
	excluded    bool
	excludedSet bool
}

type altKeyDef struct {
	name  string
	props []string
}

type checkDef struct {
	name string
	sql  string
}

// Base sets the base entity type by name.
func (eb *EntityBuilder) Base(name string) *EntityBuilder {
	eb.baseName = name
	return eb
}

// Abstract marks the entity type as non-instantiable.
func (eb *EntityBuilder) Abstract() *EntityBuilder {
	eb.abstract = true
	return eb
}

// Owned marks the entity type as owned by another aggregate.
func (eb *EntityBuilder) Owned() *EntityBuilder {
	eb.owned = true
	return eb
}

// Properties adds property definitions to the entity type.
func (eb *EntityBuilder) Properties(props ...*PropertyBuilder) *EntityBuilder {
	eb.props = append(eb.props, props...)
	return eb
}

// Key sets the primary key property names.
func (eb *EntityBuilder) Key(props ...string) *EntityBuilder {
	eb.keyProps = props
	return eb
}

// KeyConstraint sets an explicit primary key constraint name.
func (eb *EntityBuilder) KeyConstraint(name string) *EntityBuilder {
	eb.keyName = name
	return eb
}

// AlternateKey declares an alternate key over the given properties.
func (eb *EntityBuilder) AlternateKey(props ...string) *EntityBuilder {
	eb.altKeys = append(eb.altKeys, altKeyDef{props: props})
	return eb
}

// NamedAlternateKey declares an alternate key with an explicit
// constraint name.
func (eb *EntityBuilder) NamedAlternateKey(name string, props ...string) *EntityBuilder {
	eb.altKeys = append(eb.altKeys, altKeyDef{name: name, props: props})
	return eb
}

// ForeignKey adds a foreign key definition.
func (eb *EntityBuilder) ForeignKey(fk *ForeignKeyBuilder) *EntityBuilder {
	eb.fks = append(eb.fks, fk)
	return eb
}

// Index adds an index definition.
func (eb *EntityBuilder) Index(ix *IndexBuilder) *EntityBuilder {
	eb.idxs = append(eb.idxs, ix)
	return eb
}

// CheckConstraint adds a named check constraint.
func (eb *EntityBuilder) CheckConstraint(name, sql string) *EntityBuilder {
	eb.checks = append(eb.checks, checkDef{name: name, sql: sql})
	return eb
}

// Trigger adds a trigger definition.
func (eb *EntityBuilder) Trigger(tg *TriggerBuilder) *EntityBuilder {
	eb.triggers = append(eb.triggers, tg)
	return eb
}

// Table binds the entity type to a table.
func (eb *EntityBuilder) Table(name, schema string) *EntityBuilder {
	eb.tableName, eb.tableSchema, eb.tableSet = name, schema, true
	return eb
}

// View binds the entity type to a view.
func (eb *EntityBuilder) View(name, schema string) *EntityBuilder {
	eb.viewName, eb.viewSchema, eb.viewSet = name, schema, true
	return eb
}

// SQLQuery binds the entity type to an ad-hoc SQL query.
func (eb *EntityBuilder) SQLQuery(sql string) *EntityBuilder {
	eb.sqlQuery = sql
	return eb
}

// MappedFunction binds the entity type to a table-valued function by
// name. Resolution against the registered functions happens during
// validation, so a dangling name is representable.
func (eb *EntityBuilder) MappedFunction(name string) *EntityBuilder {
	eb.functionName = name
	return eb
}

// Fragment adds an entity splitting fragment on the given store object.
func (eb *EntityBuilder) Fragment(so StoreObject) *EntityBuilder {
	eb.fragments = append(eb.fragments, so)
	return eb
}

// FragmentTable adds an entity splitting fragment on a table.
func (eb *EntityBuilder) FragmentTable(name, schema string) *EntityBuilder {
	return eb.Fragment(TableID(name, schema))
}

// FragmentView adds an entity splitting fragment on a view.
func (eb *EntityBuilder) FragmentView(name, schema string) *EntityBuilder {
	return eb.Fragment(ViewID(name, schema))
}

// Strategy sets the inheritance mapping strategy annotation.
func (eb *EntityBuilder) Strategy(s MappingStrategy) *EntityBuilder {
	eb.strategy = s
	return eb
}

// StrategyName sets the strategy from its annotation string. Unknown
// names survive into the model and fail validation there.
func (eb *EntityBuilder) StrategyName(s string) *EntityBuilder {
	eb.strategy = ParseStrategy(s)
	return eb
}

// Discriminator designates the discriminator property by name.
func (eb *EntityBuilder) Discriminator(prop string) *EntityBuilder {
	eb.discProp = prop
	return eb
}

// DiscriminatorValue sets this concrete type's discriminator value.
func (eb *EntityBuilder) DiscriminatorValue(v any) *EntityBuilder {
	eb.discValue = v
	return eb
}

// Comment sets the table or view comment.
func (eb *EntityBuilder) Comment(c string) *EntityBuilder {
	eb.comment = c
	return eb
}

// ExcludeFromMigrations excludes the entity type's store object from
// migrations.
func (eb *EntityBuilder) ExcludeFromMigrations() *EntityBuilder {
	eb.excluded, eb.excludedSet = true, true
	return eb
}

// Build links the collected configuration into a Model. It reports
// structural construction problems (unknown names, cycles); relational
// consistency is the validator's concern.
func (b *Builder) Build() (*Model, error) {
	m := &Model{
		name:         b.name,
		entities:     make(map[string]*EntityType, len(b.entities)),
		functions:    make(map[string]*Function, len(b.functions)),
		typeMappings: b.mappings,
	}
	for _, fb := range b.functions {
		if _, ok := m.functions[fb.name]; ok {
			return nil, fmt.Errorf("duplicate function %q", fb.name)
		}
		fn := &Function{
			model:      m,
			name:       fb.name,
			schema:     fb.schema,
			returnType: fb.returns,
			scalar:     fb.scalar,
		}
		for _, p := range fb.params {
			fn.parameters = append(fn.parameters, &FunctionParameter{name: p.name, typ: p.typ})
		}
		m.functions[fb.name] = fn
		m.funcOrder = append(m.funcOrder, fn)
	}

	// Pass 1: create entity types and their declared properties.
	for _, eb := range b.entities {
		et := &EntityType{
			model:              m,
			name:               eb.name,
			abstract:           eb.abstract,
			owned:              eb.owned,
			strategy:           eb.strategy,
			discriminatorValue: eb.discValue,
			sqlQuery:           eb.sqlQuery,
			functionName:       eb.functionName,
			comment:            eb.comment,
			propIndex:          make(map[string]*Property, len(eb.props)),
		}
		for _, pb := range eb.props {
			if _, ok := et.propIndex[pb.name]; ok {
				return nil, fmt.Errorf("duplicate property %s.%s", eb.name, pb.name)
			}
			p := pb.build(et)
			et.properties = append(et.properties, p)
			et.propIndex[pb.name] = p
		}
		m.entities[eb.name] = et
		m.order = append(m.order, et)
	}

	// Pass 2: link base types and detect cycles.
	for _, eb := range b.entities {
		if eb.baseName == "" {
			continue
		}
		et := m.entities[eb.name]
		base, ok := m.entities[eb.baseName]
		if !ok {
			return nil, fmt.Errorf("entity type %s has unknown base type %q", eb.name, eb.baseName)
		}
		et.base = base
		base.derived = append(base.derived, et)
	}
	for _, et := range m.order {
		seen := map[*EntityType]struct{}{}
		for t := et; t != nil; t = t.base {
			if _, ok := seen[t]; ok {
				return nil, fmt.Errorf("inheritance cycle through entity type %s", et.name)
			}
			seen[t] = struct{}{}
		}
	}

	// Pass 3: discriminators, keys, relationships, ancillary elements.
	var errs []error
	for _, eb := range b.entities {
		et := m.entities[eb.name]
		if eb.discProp != "" {
			p := et.FindProperty(eb.discProp)
			if p == nil {
				errs = append(errs, fmt.Errorf("entity type %s has unknown discriminator property %q", eb.name, eb.discProp))
				continue
			}
			et.discriminatorProp = p
		}
		if len(eb.keyProps) > 0 {
			k, err := b.key(et, eb.keyName, eb.keyProps, true)
			if err != nil {
				errs = append(errs, err)
			} else {
				et.keys = append(et.keys, k)
				et.primaryKey = k
			}
		}
		for _, ak := range eb.altKeys {
			k, err := b.key(et, ak.name, ak.props, false)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			et.keys = append(et.keys, k)
		}
	}
	for _, eb := range b.entities {
		et := m.entities[eb.name]
		for _, fkb := range eb.fks {
			fk, err := fkb.build(m, et)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			et.foreignKeys = append(et.foreignKeys, fk)
		}
		for _, ixb := range eb.idxs {
			ix, err := ixb.build(et)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			et.indexes = append(et.indexes, ix)
		}
		for _, cd := range eb.checks {
			et.checks = append(et.checks, &CheckConstraint{entity: et, name: cd.name, sql: cd.sql})
		}
		for _, tgb := range eb.triggers {
			et.triggers = append(et.triggers, &Trigger{
				entity:      et,
				name:        tgb.name,
				tableName:   tgb.tableName,
				tableSchema: tgb.tableSchema,
			})
		}
		for _, so := range eb.fragments {
			et.fragments = append(et.fragments, &MappingFragment{entity: et, store: so})
		}
		if eb.functionName != "" {
			et.function = m.functions[eb.functionName]
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	b.resolveBindings(m)
	return m, nil
}

func (b *Builder) key(et *EntityType, name string, props []string, primary bool) (*Key, error) {
	k := &Key{entity: et, primary: primary, name: name}
	for _, pn := range props {
		p := et.FindProperty(pn)
		if p == nil {
			return nil, fmt.Errorf("key on %s uses unknown property %q", et.name, pn)
		}
		k.properties = append(k.properties, p)
	}
	return k, nil
}

// resolveBindings assigns the effective table/view binding of every
// entity type: explicit bindings win, otherwise the binding follows the
// inheritance strategy (single-table types inherit the nearest mapped
// ancestor's object, TPT and TPC types default to a table of their own,
// abstract TPC types stay unmapped).
func (b *Builder) resolveBindings(m *Model) {
	for _, eb := range b.entities {
		et := m.entities[eb.name]
		if eb.tableSet {
			et.tableName, et.tableSchema, et.tableSet = eb.tableName, eb.tableSchema, true
		}
		if eb.viewSet {
			et.viewName, et.viewSchema, et.viewSet = eb.viewName, eb.viewSchema, true
		}
		if eb.excludedSet {
			et.excludedFromMigrations = eb.excluded
		}
	}
	// Roots first, then derived types level by level so that the
	// nearest mapped ancestor is already resolved.
	var queue []*EntityType
	for _, et := range m.Roots() {
		b.resolveRoot(et)
		queue = append(queue, et.derived...)
	}
	for len(queue) > 0 {
		et := queue[0]
		queue = queue[1:]
		b.resolveDerived(et)
		queue = append(queue, et.derived...)
	}
}

func (b *Builder) resolveRoot(et *EntityType) {
	eb := b.byName[et.name]
	if eb.tableSet || eb.viewSet || eb.sqlQuery != "" || eb.functionName != "" {
		return
	}
	if et.abstract && et.EffectiveStrategy() == StrategyTPC {
		return
	}
	et.tableName, et.tableSet = names.TableName(et.ShortName()), true
}

func (b *Builder) resolveDerived(et *EntityType) {
	eb := b.byName[et.name]
	if !eb.excludedSet {
		et.excludedFromMigrations = et.base.excludedFromMigrations
	}
	if eb.tableSet || eb.viewSet || eb.sqlQuery != "" || eb.functionName != "" {
		return
	}
	switch et.EffectiveStrategy() {
	case StrategyTPC:
		if et.abstract {
			return
		}
		et.tableName, et.tableSet = names.TableName(et.ShortName()), true
	case StrategyTPT:
		et.tableName, et.tableSet = names.TableName(et.ShortName()), true
	default:
		// Single-table: inherit the nearest mapped ancestor's binding.
		for base := et.base; base != nil; base = base.base {
			if base.tableSet {
				et.tableName, et.tableSchema, et.tableSet = base.tableName, base.tableSchema, true
				break
			}
			if base.viewSet {
				et.viewName, et.viewSchema, et.viewSet = base.viewName, base.viewSchema, true
				break
			}
		}
	}
}

// Prop returns a property definition with the given name and logical
// type, to be attached through EntityBuilder.Properties.
func Prop(name, typ string) *PropertyBuilder {
	return &PropertyBuilder{name: name, typ: typ}
}

// PropertyBuilder collects the configuration of one property.
type PropertyBuilder struct {
	name, typ string
	p         Property
	overrides map[StoreObject]string
}

// Nullable marks the mapped column as admitting NULL.
func (pb *PropertyBuilder) Nullable() *PropertyBuilder {
	pb.p.nullable = true
	return pb
}

// MaxLength sets the maximum length.
func (pb *PropertyBuilder) MaxLength(n int) *PropertyBuilder {
	pb.p.maxLength = &n
	return pb
}

// Precision sets the numeric precision.
func (pb *PropertyBuilder) Precision(n int) *PropertyBuilder {
	pb.p.precision = &n
	return pb
}

// Scale sets the numeric scale.
func (pb *PropertyBuilder) Scale(n int) *PropertyBuilder {
	pb.p.scale = &n
	return pb
}

// Unicode sets the unicode flag.
func (pb *PropertyBuilder) Unicode(v bool) *PropertyBuilder {
	pb.p.unicode = &v
	return pb
}

// FixedLength sets the fixed-length flag.
func (pb *PropertyBuilder) FixedLength(v bool) *PropertyBuilder {
	pb.p.fixedLength = &v
	return pb
}

// ConcurrencyToken marks the property as an optimistic concurrency
// token.
func (pb *PropertyBuilder) ConcurrencyToken() *PropertyBuilder {
	pb.p.concurrencyToken = true
	return pb
}

// StoreType sets the explicit store type.
func (pb *PropertyBuilder) StoreType(st string) *PropertyBuilder {
	pb.p.storeType = st
	return pb
}

// Computed sets the computed column SQL expression.
func (pb *PropertyBuilder) Computed(sql string) *PropertyBuilder {
	pb.p.computedSQL = sql
	return pb
}

// Stored marks a computed column as stored (true) or virtual (false).
func (pb *PropertyBuilder) Stored(v bool) *PropertyBuilder {
	pb.p.stored = &v
	return pb
}

// Default sets an explicitly configured default value.
func (pb *PropertyBuilder) Default(v any) *PropertyBuilder {
	pb.p.defaultValue, pb.p.defaultSet = v, true
	pb.p.defaultSource = SourceExplicit
	return pb
}

// DefaultBySource sets a default value with the given configuration
// source strength.
func (pb *PropertyBuilder) DefaultBySource(v any, src ConfigSource) *PropertyBuilder {
	pb.p.defaultValue, pb.p.defaultSet = v, true
	pb.p.defaultSource = src
	return pb
}

// DefaultSQL sets a default value SQL expression.
func (pb *PropertyBuilder) DefaultSQL(sql string) *PropertyBuilder {
	pb.p.defaultSQL = sql
	return pb
}

// Comment sets the column comment.
func (pb *PropertyBuilder) Comment(c string) *PropertyBuilder {
	pb.p.comment = c
	return pb
}

// Collation sets the column collation.
func (pb *PropertyBuilder) Collation(c string) *PropertyBuilder {
	pb.p.collation = c
	return pb
}

// ColumnOrder sets the explicit column order.
func (pb *PropertyBuilder) ColumnOrder(n int) *PropertyBuilder {
	pb.p.order = &n
	return pb
}

// ValueGeneratedOnAdd marks the property value as store-generated on
// insert.
func (pb *PropertyBuilder) ValueGeneratedOnAdd() *PropertyBuilder {
	pb.p.generated = GeneratedOnAdd
	return pb
}

// Column sets the base column name, overriding the snake_case default.
func (pb *PropertyBuilder) Column(name string) *PropertyBuilder {
	pb.p.column = name
	return pb
}

// ColumnFor sets the column name the property uses on a specific store
// object. An override also marks the property as mapped to that store
// object for fragment membership.
func (pb *PropertyBuilder) ColumnFor(so StoreObject, name string) *PropertyBuilder {
	if pb.overrides == nil {
		pb.overrides = make(map[StoreObject]string)
	}
	pb.overrides[so] = name
	return pb
}

// Converter installs a provider value converter and the provider-side
// type it converts to.
func (pb *PropertyBuilder) Converter(providerType string, fn func(any) any) *PropertyBuilder {
	pb.p.converter = fn
	pb.p.providerType = providerType
	return pb
}

func (pb *PropertyBuilder) build(et *EntityType) *Property {
	p := pb.p
	p.entity = et
	p.name = pb.name
	p.typ = pb.typ
	if pb.overrides != nil {
		p.overrides = make(map[StoreObject]string, len(pb.overrides))
		for so, name := range pb.overrides {
			p.overrides[so] = name
		}
	}
	return &p
}

// FK returns a foreign key definition over the given dependent-side
// property names.
func FK(props ...string) *ForeignKeyBuilder {
	return &ForeignKeyBuilder{props: props}
}

// ForeignKeyBuilder collects the configuration of one foreign key.
type ForeignKeyBuilder struct {
	props             []string
	principal         string
	principalProps    []string
	name              string
	unique            bool
	required          bool
	requiredDependent bool
}

// References sets the principal entity type and, optionally, the
// principal key properties. Without properties the principal's primary
// key is targeted.
func (fkb *ForeignKeyBuilder) References(entity string, props ...string) *ForeignKeyBuilder {
	fkb.principal, fkb.principalProps = entity, props
	return fkb
}

// Named sets an explicit constraint name.
func (fkb *ForeignKeyBuilder) Named(name string) *ForeignKeyBuilder {
	fkb.name = name
	return fkb
}

// Unique marks the relationship one-to-one.
func (fkb *ForeignKeyBuilder) Unique() *ForeignKeyBuilder {
	fkb.unique = true
	return fkb
}

// Required marks the dependent side as requiring a principal.
func (fkb *ForeignKeyBuilder) Required() *ForeignKeyBuilder {
	fkb.required = true
	return fkb
}

// RequiredDependent marks the principal as requiring the dependent row.
func (fkb *ForeignKeyBuilder) RequiredDependent() *ForeignKeyBuilder {
	fkb.requiredDependent = true
	return fkb
}

func (fkb *ForeignKeyBuilder) build(m *Model, et *EntityType) (*ForeignKey, error) {
	fk := &ForeignKey{
		declaring:         et,
		unique:            fkb.unique,
		required:          fkb.required,
		requiredDependent: fkb.requiredDependent,
		name:              fkb.name,
	}
	for _, pn := range fkb.props {
		p := et.FindProperty(pn)
		if p == nil {
			return nil, fmt.Errorf("foreign key on %s uses unknown property %q", et.name, pn)
		}
		fk.properties = append(fk.properties, p)
	}
	principal, ok := m.entities[fkb.principal]
	if !ok {
		return nil, fmt.Errorf("foreign key on %s references unknown entity type %q", et.name, fkb.principal)
	}
	fk.principal = principal
	key, err := principalKey(principal, fkb.principalProps)
	if err != nil {
		return nil, fmt.Errorf("foreign key on %s: %w", et.name, err)
	}
	fk.principalKey = key
	return fk, nil
}

func principalKey(principal *EntityType, props []string) (*Key, error) {
	root := principal.Root()
	if len(props) == 0 {
		if root.primaryKey == nil {
			return nil, fmt.Errorf("principal %s has no primary key", principal.name)
		}
		return root.primaryKey, nil
	}
	for _, k := range root.keys {
		if equalStrings(k.PropertyNames(), props) {
			return k, nil
		}
	}
	return nil, fmt.Errorf("principal %s has no key over properties %v", principal.name, props)
}

// Idx returns an index definition over the given property names.
func Idx(props ...string) *IndexBuilder {
	return &IndexBuilder{props: props}
}

// IndexBuilder collects the configuration of one index.
type IndexBuilder struct {
	props  []string
	name   string
	unique bool
}

// Named sets an explicit index name.
func (ixb *IndexBuilder) Named(name string) *IndexBuilder {
	ixb.name = name
	return ixb
}

// Unique marks the index unique.
func (ixb *IndexBuilder) Unique() *IndexBuilder {
	ixb.unique = true
	return ixb
}

func (ixb *IndexBuilder) build(et *EntityType) (*Index, error) {
	ix := &Index{entity: et, name: ixb.name, unique: ixb.unique}
	for _, pn := range ixb.props {
		p := et.FindProperty(pn)
		if p == nil {
			return nil, fmt.Errorf("index on %s uses unknown property %q", et.name, pn)
		}
		ix.properties = append(ix.properties, p)
	}
	return ix, nil
}

// Trig returns a trigger definition with the given name.
func Trig(name string) *TriggerBuilder {
	return &TriggerBuilder{name: name}
}

// TriggerBuilder collects the configuration of one trigger.
type TriggerBuilder struct {
	name        string
	tableName   string
	tableSchema string
}

// OnTable declares the table the trigger is defined on. Omitting it
// defaults the trigger to its entity type's table.
func (tgb *TriggerBuilder) OnTable(name, schema string) *TriggerBuilder {
	tgb.tableName, tgb.tableSchema = name, schema
	return tgb
}

// FunctionBuilder collects the configuration of one database function.
type FunctionBuilder struct {
	name    string
	schema  string
	params  []funcParam
	returns string
	scalar  bool
}

type funcParam struct {
	name, typ string
}

// Schema sets the function schema.
func (fb *FunctionBuilder) Schema(schema string) *FunctionBuilder {
	fb.schema = schema
	return fb
}

// Param appends a declared parameter.
func (fb *FunctionBuilder) Param(name, typ string) *FunctionBuilder {
	fb.params = append(fb.params, funcParam{name: name, typ: typ})
	return fb
}

// Returns sets the logical return type name. For table-valued
// functions this is the entity type name of the returned rows.
func (fb *FunctionBuilder) Returns(typ string) *FunctionBuilder {
	fb.returns = typ
	return fb
}

// Scalar marks the function as returning a scalar value.
func (fb *FunctionBuilder) Scalar() *FunctionBuilder {
	fb.scalar = true
	return fb
}
