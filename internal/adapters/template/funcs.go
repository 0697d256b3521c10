package template

import (
	"strings"
	"text/template"
	"unicode"

	"github.com/archetect/archetect/internal/core/entities"
)

// baseFuncs are the filter/helper functions available to every rendered
// path segment and file content, independent of the current answers.
// Grounded on other_examples/.../fireflyframework-cli/internal/scaffold/
// engine.go's FuncMap (lower/upper/title/replace/contains/trimSuffix/
// lastSegment/toPascalCase/toCamelCase), extended with the kebab/snake
// forms an archetype commonly needs for file and identifier names.
var baseFuncs = template.FuncMap{
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"title": func(s string) string {
		return strings.Title(strings.ToLower(s)) //nolint:staticcheck // matches teacher's usage
	},
	"replace": func(old, new, s string) string { return strings.ReplaceAll(s, old, new) },
	"contains": strings.Contains,
	"trimSuffix": strings.TrimSuffix,
	"trimPrefix": strings.TrimPrefix,
	"lastSegment": func(s, sep string) string {
		parts := strings.Split(s, sep)
		return parts[len(parts)-1]
	},
	"toPascalCase": toPascalCase,
	"toCamelCase":  toCamelCase,
	"toKebabCase":  toKebabCase,
	"toSnakeCase":  toSnakeCase,
	"safe": func(s string) entities.Value { return entities.NewSafeStringValue(s) },
	"fields": func(v any) []string {
		obj := asObject(entities.FromAny(v))
		if obj.Struct == nil {
			return nil
		}
		return obj.Struct.Fields()
	},
	"at": func(v any, index int) entities.Value {
		obj := asObject(entities.FromAny(v))
		if obj.Seq == nil {
			return entities.Undefined
		}
		item, ok := obj.Seq.Get(index)
		if !ok {
			return entities.Undefined
		}
		return item
	},
}

func toPascalCase(s string) string {
	parts := splitWords(s)
	var b strings.Builder
	for _, p := range parts {
		if len(p) > 0 {
			b.WriteString(strings.ToUpper(p[:1]) + strings.ToLower(p[1:]))
		}
	}
	return b.String()
}

func toCamelCase(s string) string {
	pascal := toPascalCase(s)
	if pascal == "" {
		return pascal
	}
	return strings.ToLower(pascal[:1]) + pascal[1:]
}

func toKebabCase(s string) string {
	return strings.Join(splitWords(s), "-")
}

func toSnakeCase(s string) string {
	return strings.Join(splitWords(s), "_")
}

// splitWords breaks s on -, _, ., whitespace, and camelCase boundaries,
// lower-casing each resulting word.
func splitWords(s string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, strings.ToLower(cur.String()))
			cur.Reset()
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '-' || r == '_' || r == '.' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(runes[i-1]):
			flush()
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return words
}
