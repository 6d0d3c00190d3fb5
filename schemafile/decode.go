package schemafile

import (
	"fmt"

	"github.com/syssam/relcheck/model"
)

// Decode builds the mapping model described by the snapshot.
func (s *Snapshot) Decode() (*model.Model, error) {
	b := model.New(s.Name)
	for typ, st := range s.TypeMappings {
		b.TypeMapping(typ, st)
	}
	for _, f := range s.Functions {
		fb := b.Function(f.Name).Schema(f.Schema).Returns(f.Returns)
		if f.Scalar {
			fb.Scalar()
		}
		for _, p := range f.Parameters {
			fb.Param(p.Name, p.Type)
		}
	}
	for _, e := range s.Entities {
		eb := b.Entity(e.Name)
		if e.Base != "" {
			eb.Base(e.Base)
		}
		if e.Abstract {
			eb.Abstract()
		}
		if e.Owned {
			eb.Owned()
		}
		if e.Strategy != "" {
			eb.StrategyName(e.Strategy)
		}
		if e.Discriminator != "" {
			eb.Discriminator(e.Discriminator)
		}
		if e.DiscriminatorValue != "" {
			eb.DiscriminatorValue(e.DiscriminatorValue)
		}
		if e.Table != nil {
			eb.Table(e.Table.Name, e.Table.Schema)
		}
		if e.View != nil {
			eb.View(e.View.Name, e.View.Schema)
		}
		if e.SQLQuery != "" {
			eb.SQLQuery(e.SQLQuery)
		}
		if e.Function != "" {
			eb.MappedFunction(e.Function)
		}
		if e.Comment != "" {
			eb.Comment(e.Comment)
		}
		if e.ExcludeMigrations {
			eb.ExcludeFromMigrations()
		}
		for _, p := range e.Properties {
			pb, err := decodeProperty(p)
			if err != nil {
				return nil, fmt.Errorf("schemafile: entity %s: %w", e.Name, err)
			}
			eb.Properties(pb)
		}
		if len(e.Key) > 0 {
			eb.Key(e.Key...)
		}
		if e.KeyConstraint != "" {
			eb.KeyConstraint(e.KeyConstraint)
		}
		for _, ak := range e.AlternateKeys {
			if ak.Name != "" {
				eb.NamedAlternateKey(ak.Name, ak.Properties...)
			} else {
				eb.AlternateKey(ak.Properties...)
			}
		}
		for _, fk := range e.ForeignKeys {
			fkb := model.FK(fk.Properties...).References(fk.Principal, fk.PrincipalKey...)
			if fk.Name != "" {
				fkb.Named(fk.Name)
			}
			if fk.Unique {
				fkb.Unique()
			}
			if fk.Required {
				fkb.Required()
			}
			if fk.RequiredDependent {
				fkb.RequiredDependent()
			}
			eb.ForeignKey(fkb)
		}
		for _, ix := range e.Indexes {
			ixb := model.Idx(ix.Properties...)
			if ix.Name != "" {
				ixb.Named(ix.Name)
			}
			if ix.Unique {
				ixb.Unique()
			}
			eb.Index(ixb)
		}
		for _, cc := range e.Checks {
			eb.CheckConstraint(cc.Name, cc.SQL)
		}
		for _, tg := range e.Triggers {
			tgb := model.Trig(tg.Name)
			if tg.Table != "" {
				tgb.OnTable(tg.Table, tg.Schema)
			}
			eb.Trigger(tgb)
		}
		for _, f := range e.Fragments {
			so, err := fragmentStoreObject(f)
			if err != nil {
				return nil, fmt.Errorf("schemafile: entity %s: %w", e.Name, err)
			}
			eb.Fragment(so)
		}
	}
	m, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("schemafile: build model %s: %w", s.Name, err)
	}
	return m, nil
}

func decodeProperty(p Property) (*model.PropertyBuilder, error) {
	pb := model.Prop(p.Name, p.Type)
	if p.Nullable {
		pb.Nullable()
	}
	if p.MaxLength != nil {
		pb.MaxLength(*p.MaxLength)
	}
	if p.Precision != nil {
		pb.Precision(*p.Precision)
	}
	if p.Scale != nil {
		pb.Scale(*p.Scale)
	}
	if p.Unicode != nil {
		pb.Unicode(*p.Unicode)
	}
	if p.FixedLength != nil {
		pb.FixedLength(*p.FixedLength)
	}
	if p.ConcurrencyToken {
		pb.ConcurrencyToken()
	}
	if p.StoreType != "" {
		pb.StoreType(p.StoreType)
	}
	if p.Computed != "" {
		pb.Computed(p.Computed)
	}
	if p.Stored != nil {
		pb.Stored(*p.Stored)
	}
	if p.Default != nil {
		src, err := decodeSource(p.DefaultSource)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", p.Name, err)
		}
		pb.DefaultBySource(p.Default, src)
	}
	if p.DefaultSQL != "" {
		pb.DefaultSQL(p.DefaultSQL)
	}
	if p.Comment != "" {
		pb.Comment(p.Comment)
	}
	if p.Collation != "" {
		pb.Collation(p.Collation)
	}
	if p.Order != nil {
		pb.ColumnOrder(*p.Order)
	}
	switch p.Generated {
	case "", "never":
	case "on_add":
		pb.ValueGeneratedOnAdd()
	default:
		return nil, fmt.Errorf("property %s: unknown generated mode %q", p.Name, p.Generated)
	}
	if p.Column != "" {
		pb.Column(p.Column)
	}
	for _, o := range p.Overrides {
		so, err := overrideStoreObject(o)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", p.Name, err)
		}
		pb.ColumnFor(so, o.Column)
	}
	return pb, nil
}

func decodeSource(s string) (model.ConfigSource, error) {
	switch s {
	case "", "explicit":
		return model.SourceExplicit, nil
	case "annotation":
		return model.SourceDataAnnotation, nil
	case "convention":
		return model.SourceConvention, nil
	default:
		return 0, fmt.Errorf("unknown default source %q", s)
	}
}

func overrideStoreObject(o Override) (model.StoreObject, error) {
	switch o.Kind {
	case "table":
		return model.TableID(o.Name, o.Schema), nil
	case "view":
		return model.ViewID(o.Name, o.Schema), nil
	case "sql_query":
		return model.SQLQueryID(o.Name), nil
	case "function":
		return model.FunctionID(o.Name, o.Schema), nil
	default:
		return model.StoreObject{}, fmt.Errorf("unknown override kind %q", o.Kind)
	}
}

func fragmentStoreObject(f Fragment) (model.StoreObject, error) {
	switch f.Kind {
	case "table":
		return model.TableID(f.Name, f.Schema), nil
	case "view":
		return model.ViewID(f.Name, f.Schema), nil
	default:
		return model.StoreObject{}, fmt.Errorf("unknown fragment kind %q", f.Kind)
	}
}
