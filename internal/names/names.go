// Package names provides naming helpers shared by the model builder and
// the fixture generator: snake_case, PascalCase and pluralization rules
// for deriving default store object names from entity type names.
package names

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

var (
	rules    = inflect.NewDefaultRuleset()
	acronyms = make(map[string]struct{})
)

func init() {
	for _, w := range []string{
		"ACL", "API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML",
		"HTTP", "HTTPS", "ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS",
		"RPC", "SLA", "SMTP", "SQL", "SSH", "TCP", "TLS", "TTL", "UDP",
		"UI", "UID", "UUID", "URI", "URL", "UTF8", "VM", "XML", "XSRF", "XSS",
	} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
}

// Snake converts the given identifier to snake_case.
//
//	Snake("UserInfo") => "user_info"
//	Snake("HTTPCode") => "http_code"
func Snake(s string) string {
	var (
		b     strings.Builder
		runes = []rune(s)
	)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			var next rune
			if i+1 < len(runes) {
				next = runes[i+1]
			}
			if unicode.IsLower(prev) ||
				(unicode.IsUpper(prev) && next != 0 && unicode.IsLower(next)) {
				b.WriteRune('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Pascal converts the given snake_case or kebab-case identifier to PascalCase.
//
//	Pascal("user_info") => "UserInfo"
//	Pascal("http_code") => "HTTPCode"
func Pascal(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		if _, ok := acronyms[strings.ToUpper(w)]; ok {
			words[i] = strings.ToUpper(w)
			continue
		}
		words[i] = rules.Capitalize(w)
	}
	return strings.Join(words, "")
}

// Pluralize returns the plural form of the given word.
func Pluralize(s string) string {
	return rules.Pluralize(s)
}

// Singularize returns the singular form of the given word.
func Singularize(s string) string {
	return rules.Singularize(s)
}

// TableName derives a default table name for an entity type name:
// snake_case and pluralized, matching the common relational convention.
//
//	TableName("UserGroup") => "user_groups"
func TableName(typ string) string {
	s := Snake(typ)
	if i := strings.LastIndex(s, "_"); i != -1 {
		return s[:i+1] + rules.Pluralize(s[i+1:])
	}
	return rules.Pluralize(s)
}
