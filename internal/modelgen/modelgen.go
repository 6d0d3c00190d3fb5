// Package modelgen turns a schema snapshot into Go source that
// reconstructs the mapping model through the builder API. The output
// is meant to be checked in as a test fixture or a starting point for
// a hand-maintained model definition.
package modelgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/tools/imports"

	"github.com/syssam/relcheck/internal/names"
	"github.com/syssam/relcheck/schemafile"
)

const modelPkg = "github.com/syssam/relcheck/model"

var titler = cases.Title(language.English, cases.NoLower)

// Generate renders Go source for the given snapshot into package pkg.
// The file exposes a single Build<Name>Model function returning the
// reconstructed model.
func Generate(s *schemafile.Snapshot, pkg string) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("modelgen: nil snapshot")
	}
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by relcheck gen. DO NOT EDIT.")

	fn := funcName(s.Name)
	var body []jen.Code
	body = append(body, jen.Id("b").Op(":=").Qual(modelPkg, "New").Call(jen.Lit(s.Name)))
	for _, typ := range sortedKeys(s.TypeMappings) {
		body = append(body, jen.Id("b").Dot("TypeMapping").Call(jen.Lit(typ), jen.Lit(s.TypeMappings[typ])))
	}
	for _, df := range s.Functions {
		body = append(body, functionStmt(df))
	}
	for _, e := range s.Entities {
		body = append(body, entityStmt(e))
	}
	body = append(body, jen.Return(jen.Id("b").Dot("Build").Call()))

	f.Commentf("%s reconstructs the %q mapping model.", fn, s.Name)
	f.Func().Id(fn).Params().Params(
		jen.Op("*").Qual(modelPkg, "Model"), jen.Error(),
	).Block(body...)

	src := fmt.Sprintf("%#v", f)
	out, err := imports.Process(pkg+".go", []byte(src), nil)
	if err != nil {
		return nil, fmt.Errorf("modelgen: format output: %w", err)
	}
	return out, nil
}

// funcName derives the exported builder function name from the model
// name, e.g. "shop orders" becomes BuildShopOrdersModel.
func funcName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '.'
	})
	var sb strings.Builder
	sb.WriteString("Build")
	for _, p := range parts {
		sb.WriteString(titler.String(names.Pascal(p)))
	}
	if len(parts) == 0 {
		sb.WriteString("Snapshot")
	}
	sb.WriteString("Model")
	return sb.String()
}

func functionStmt(df schemafile.Function) jen.Code {
	stmt := jen.Id("b").Dot("Function").Call(jen.Lit(df.Name))
	if df.Schema != "" {
		stmt = stmt.Dot("Schema").Call(jen.Lit(df.Schema))
	}
	for _, p := range df.Parameters {
		stmt = stmt.Dot("Param").Call(jen.Lit(p.Name), jen.Lit(p.Type))
	}
	if df.Returns != "" {
		stmt = stmt.Dot("Returns").Call(jen.Lit(df.Returns))
	}
	if df.Scalar {
		stmt = stmt.Dot("Scalar").Call()
	}
	return stmt
}

func entityStmt(e schemafile.Entity) jen.Code {
	stmt := jen.Id("b").Dot("Entity").Call(jen.Lit(e.Name))
	if e.Base != "" {
		stmt = stmt.Dot("Base").Call(jen.Lit(e.Base))
	}
	if e.Abstract {
		stmt = stmt.Dot("Abstract").Call()
	}
	if e.Owned {
		stmt = stmt.Dot("Owned").Call()
	}
	if len(e.Properties) > 0 {
		props := make([]jen.Code, len(e.Properties))
		for i, p := range e.Properties {
			props[i] = propExpr(p)
		}
		stmt = stmt.Dot("Properties").Call(props...)
	}
	if len(e.Key) > 0 {
		stmt = stmt.Dot("Key").Call(litStrings(e.Key)...)
	}
	if e.KeyConstraint != "" {
		stmt = stmt.Dot("KeyConstraint").Call(jen.Lit(e.KeyConstraint))
	}
	for _, ak := range e.AlternateKeys {
		if ak.Name != "" {
			args := append([]jen.Code{jen.Lit(ak.Name)}, litStrings(ak.Properties)...)
			stmt = stmt.Dot("NamedAlternateKey").Call(args...)
		} else {
			stmt = stmt.Dot("AlternateKey").Call(litStrings(ak.Properties)...)
		}
	}
	for _, fk := range e.ForeignKeys {
		stmt = stmt.Dot("ForeignKey").Call(fkExpr(fk))
	}
	for _, ix := range e.Indexes {
		stmt = stmt.Dot("Index").Call(ixExpr(ix))
	}
	for _, ck := range e.Checks {
		stmt = stmt.Dot("CheckConstraint").Call(jen.Lit(ck.Name), jen.Lit(ck.SQL))
	}
	for _, tg := range e.Triggers {
		trig := jen.Qual(modelPkg, "Trig").Call(jen.Lit(tg.Name))
		if tg.Table != "" {
			trig = trig.Dot("OnTable").Call(jen.Lit(tg.Table), jen.Lit(tg.Schema))
		}
		stmt = stmt.Dot("Trigger").Call(trig)
	}
	if e.Table != nil {
		stmt = stmt.Dot("Table").Call(jen.Lit(e.Table.Name), jen.Lit(e.Table.Schema))
	}
	if e.View != nil {
		stmt = stmt.Dot("View").Call(jen.Lit(e.View.Name), jen.Lit(e.View.Schema))
	}
	if e.SQLQuery != "" {
		stmt = stmt.Dot("SQLQuery").Call(jen.Lit(e.SQLQuery))
	}
	if e.Function != "" {
		stmt = stmt.Dot("MappedFunction").Call(jen.Lit(e.Function))
	}
	for _, fr := range e.Fragments {
		switch fr.Kind {
		case "view":
			stmt = stmt.Dot("FragmentView").Call(jen.Lit(fr.Name), jen.Lit(fr.Schema))
		default:
			stmt = stmt.Dot("FragmentTable").Call(jen.Lit(fr.Name), jen.Lit(fr.Schema))
		}
	}
	if e.Strategy != "" {
		stmt = stmt.Dot("StrategyName").Call(jen.Lit(e.Strategy))
	}
	if e.Discriminator != "" {
		stmt = stmt.Dot("Discriminator").Call(jen.Lit(e.Discriminator))
	}
	if e.DiscriminatorValue != "" {
		stmt = stmt.Dot("DiscriminatorValue").Call(jen.Lit(e.DiscriminatorValue))
	}
	if e.Comment != "" {
		stmt = stmt.Dot("Comment").Call(jen.Lit(e.Comment))
	}
	if e.ExcludeMigrations {
		stmt = stmt.Dot("ExcludeFromMigrations").Call()
	}
	return stmt
}

func propExpr(p schemafile.Property) jen.Code {
	expr := jen.Qual(modelPkg, "Prop").Call(jen.Lit(p.Name), jen.Lit(p.Type))
	if p.Nullable {
		expr = expr.Dot("Nullable").Call()
	}
	if p.MaxLength != nil {
		expr = expr.Dot("MaxLength").Call(jen.Lit(*p.MaxLength))
	}
	if p.Precision != nil {
		expr = expr.Dot("Precision").Call(jen.Lit(*p.Precision))
	}
	if p.Scale != nil {
		expr = expr.Dot("Scale").Call(jen.Lit(*p.Scale))
	}
	if p.Unicode != nil {
		expr = expr.Dot("Unicode").Call(jen.Lit(*p.Unicode))
	}
	if p.FixedLength != nil {
		expr = expr.Dot("FixedLength").Call(jen.Lit(*p.FixedLength))
	}
	if p.ConcurrencyToken {
		expr = expr.Dot("ConcurrencyToken").Call()
	}
	if p.StoreType != "" {
		expr = expr.Dot("StoreType").Call(jen.Lit(p.StoreType))
	}
	if p.Computed != "" {
		expr = expr.Dot("Computed").Call(jen.Lit(p.Computed))
	}
	if p.Stored != nil {
		expr = expr.Dot("Stored").Call(jen.Lit(*p.Stored))
	}
	if p.Default != nil {
		if p.DefaultSource != "" {
			expr = expr.Dot("DefaultBySource").Call(jen.Lit(p.Default), sourceExpr(p.DefaultSource))
		} else {
			expr = expr.Dot("Default").Call(jen.Lit(p.Default))
		}
	}
	if p.DefaultSQL != "" {
		expr = expr.Dot("DefaultSQL").Call(jen.Lit(p.DefaultSQL))
	}
	if p.Comment != "" {
		expr = expr.Dot("Comment").Call(jen.Lit(p.Comment))
	}
	if p.Collation != "" {
		expr = expr.Dot("Collation").Call(jen.Lit(p.Collation))
	}
	if p.Order != nil {
		expr = expr.Dot("ColumnOrder").Call(jen.Lit(*p.Order))
	}
	if p.Generated == "on_add" {
		expr = expr.Dot("ValueGeneratedOnAdd").Call()
	}
	if p.Column != "" {
		expr = expr.Dot("Column").Call(jen.Lit(p.Column))
	}
	for _, o := range p.Overrides {
		expr = expr.Dot("ColumnFor").Call(storeObjectExpr(o), jen.Lit(o.Column))
	}
	return expr
}

func sourceExpr(src string) jen.Code {
	switch src {
	case "explicit":
		return jen.Qual(modelPkg, "SourceExplicit")
	case "annotation":
		return jen.Qual(modelPkg, "SourceDataAnnotation")
	default:
		return jen.Qual(modelPkg, "SourceConvention")
	}
}

func storeObjectExpr(o schemafile.Override) jen.Code {
	switch o.Kind {
	case "view":
		return jen.Qual(modelPkg, "ViewID").Call(jen.Lit(o.Name), jen.Lit(o.Schema))
	case "sql_query":
		return jen.Qual(modelPkg, "SQLQueryID").Call(jen.Lit(o.Name))
	case "function":
		return jen.Qual(modelPkg, "FunctionID").Call(jen.Lit(o.Name), jen.Lit(o.Schema))
	default:
		return jen.Qual(modelPkg, "TableID").Call(jen.Lit(o.Name), jen.Lit(o.Schema))
	}
}

func fkExpr(fk schemafile.ForeignKey) jen.Code {
	expr := jen.Qual(modelPkg, "FK").Call(litStrings(fk.Properties)...)
	refArgs := append([]jen.Code{jen.Lit(fk.Principal)}, litStrings(fk.PrincipalKey)...)
	expr = expr.Dot("References").Call(refArgs...)
	if fk.Name != "" {
		expr = expr.Dot("Named").Call(jen.Lit(fk.Name))
	}
	if fk.Unique {
		expr = expr.Dot("Unique").Call()
	}
	if fk.Required {
		expr = expr.Dot("Required").Call()
	}
	if fk.RequiredDependent {
		expr = expr.Dot("RequiredDependent").Call()
	}
	return expr
}

func ixExpr(ix schemafile.Index) jen.Code {
	expr := jen.Qual(modelPkg, "Idx").Call(litStrings(ix.Properties)...)
	if ix.Name != "" {
		expr = expr.Dot("Named").Call(jen.Lit(ix.Name))
	}
	if ix.Unique {
		expr = expr.Dot("Unique").Call()
	}
	return expr
}

func litStrings(ss []string) []jen.Code {
	out := make([]jen.Code, len(ss))
	for i, s := range ss {
		out[i] = jen.Lit(s)
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
