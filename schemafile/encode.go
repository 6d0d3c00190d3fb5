package schemafile

import (
	"github.com/syssam/relcheck/model"
)

// Encode captures a model as a snapshot document. Value converters are
// not representable in a snapshot and are dropped; everything else
// round-trips through Decode.
func Encode(m *model.Model) *Snapshot {
	s := &Snapshot{
		Version:      Version,
		ID:           NewID(),
		Name:         m.Name(),
		TypeMappings: m.TypeMappings(),
	}
	for _, fn := range m.Functions() {
		f := Function{
			Name:    fn.Name(),
			Schema:  fn.Schema(),
			Returns: fn.ReturnType(),
			Scalar:  fn.IsScalar(),
		}
		for _, p := range fn.Parameters() {
			f.Parameters = append(f.Parameters, Parameter{Name: p.Name(), Type: p.Type()})
		}
		s.Functions = append(s.Functions, f)
	}
	for _, et := range m.EntityTypes() {
		s.Entities = append(s.Entities, encodeEntity(et))
	}
	return s
}

func encodeEntity(et *model.EntityType) Entity {
	e := Entity{
		Name:              et.Name(),
		Abstract:          et.IsAbstract(),
		Owned:             et.IsOwned(),
		Strategy:          et.Strategy().String(),
		SQLQuery:          et.SQLQuery(),
		Function:          et.FunctionName(),
		Comment:           et.Comment(),
		ExcludeMigrations: et.ExcludedFromMigrations(),
	}
	if base := et.BaseType(); base != nil {
		e.Base = base.Name()
	}
	if et.BaseType() == nil {
		if dp := et.DiscriminatorProperty(); dp != nil {
			e.Discriminator = dp.Name()
		}
	}
	if v, ok := et.DiscriminatorValue().(string); ok {
		e.DiscriminatorValue = v
	}
	if name, schema, ok := et.Table(); ok {
		e.Table = &Binding{Name: name, Schema: schema}
	}
	if name, schema, ok := et.View(); ok {
		e.View = &Binding{Name: name, Schema: schema}
	}
	for _, p := range et.Properties() {
		e.Properties = append(e.Properties, encodeProperty(p))
	}
	for _, k := range et.Keys() {
		if k.IsPrimary() {
			e.Key = k.PropertyNames()
			e.KeyConstraint = k.ExplicitName()
		} else {
			e.AlternateKeys = append(e.AlternateKeys, Key{Name: k.ExplicitName(), Properties: k.PropertyNames()})
		}
	}
	for _, fk := range et.ForeignKeys() {
		f := ForeignKey{
			Name:              fk.ExplicitName(),
			Properties:        fk.PropertyNames(),
			Principal:         fk.PrincipalEntity().Name(),
			Unique:            fk.IsUnique(),
			Required:          fk.IsRequired(),
			RequiredDependent: fk.IsRequiredDependent(),
		}
		if pk := fk.PrincipalKey(); pk != nil && !pk.IsPrimary() {
			f.PrincipalKey = pk.PropertyNames()
		}
		e.ForeignKeys = append(e.ForeignKeys, f)
	}
	for _, ix := range et.Indexes() {
		e.Indexes = append(e.Indexes, Index{Name: ix.ExplicitName(), Properties: ix.PropertyNames(), Unique: ix.IsUnique()})
	}
	for _, cc := range et.CheckConstraints() {
		e.Checks = append(e.Checks, Check{Name: cc.Name(), SQL: cc.SQL()})
	}
	for _, tg := range et.Triggers() {
		t := Trigger{Name: tg.Name()}
		if name, schema, ok := tg.Table(); ok {
			t.Table, t.Schema = name, schema
		}
		e.Triggers = append(e.Triggers, t)
	}
	for _, f := range et.Fragments() {
		so := f.StoreObject()
		kind := "table"
		if so.Kind == model.KindView {
			kind = "view"
		}
		e.Fragments = append(e.Fragments, Fragment{Kind: kind, Name: so.Name, Schema: so.Schema})
	}
	return e
}

func encodeProperty(p *model.Property) Property {
	out := Property{
		Name:             p.Name(),
		Type:             p.Type(),
		Nullable:         p.IsNullable(),
		ConcurrencyToken: p.IsConcurrencyToken(),
		StoreType:        p.StoreType(),
		Computed:         p.ComputedSQL(),
		DefaultSQL:       p.DefaultSQL(),
		Comment:          p.Comment(),
		Collation:        p.Collation(),
	}
	if v, ok := p.MaxLength(); ok {
		out.MaxLength = &v
	}
	if v, ok := p.Precision(); ok {
		out.Precision = &v
	}
	if v, ok := p.Scale(); ok {
		out.Scale = &v
	}
	if v, ok := p.IsUnicode(); ok {
		out.Unicode = &v
	}
	if v, ok := p.IsFixedLength(); ok {
		out.FixedLength = &v
	}
	if v, ok := p.IsStored(); ok {
		out.Stored = &v
	}
	if v, ok := p.DefaultValue(); ok {
		out.Default = v
		switch p.DefaultValueSource() {
		case model.SourceConvention:
			out.DefaultSource = "convention"
		case model.SourceDataAnnotation:
			out.DefaultSource = "annotation"
		default:
			out.DefaultSource = "explicit"
		}
	}
	if v, ok := p.ColumnOrder(); ok {
		out.Order = &v
	}
	if p.ValueGenerated() == model.GeneratedOnAdd {
		out.Generated = "on_add"
	}
	if p.ColumnName() != "" {
		out.Column = p.ColumnName()
	}
	for _, so := range p.Overrides() {
		kind := ""
		switch so.Kind {
		case model.KindTable:
			kind = "table"
		case model.KindView:
			kind = "view"
		case model.KindSQLQuery:
			kind = "sql_query"
		case model.KindFunction:
			kind = "function"
		}
		out.Overrides = append(out.Overrides, Override{
			Kind:   kind,
			Name:   so.Name,
			Schema: so.Schema,
			Column: p.ColumnNameIn(so),
		})
	}
	return out
}
