// Package answers implements the Answer Decoder (§4's "Answer Decoder"
// row, grammar in §6): parsing `key=value` pairs into AnswerMap entries,
// and decoding whole answer files (YAML/JSON/script-literal) into
// AnswerMap.
//
// Grounded on original_source/archetect-core/src/config/answers.rs: the
// Pest grammar there (identifier '=' bare|'quoted'|"quoted") is
// reimplemented here as a small hand-written scanner rather than pulling
// in a parser-combinator library, matching the teacher's preference for
// stdlib-only parsing in internal/core/entities/identifier.go.
package answers

import (
	"fmt"
	"strings"

	"github.com/archetect/archetect/internal/core/entities"
)

// ParsePair parses one `--answer` argument of the form `identifier=value`
// per §6's grammar: identifier := [A-Za-z_][A-Za-z0-9_]*, and value is a
// bare token, a single-quoted string, or a double-quoted string (quotes
// stripped).
func ParsePair(raw string) (key string, value entities.Value, err error) {
	i := strings.IndexByte(raw, '=')
	if i < 0 {
		return "", entities.Unit, entities.NewError(entities.KindGeneral,
			fmt.Sprintf("malformed answer %q: expected identifier=value", raw))
	}
	key = raw[:i]
	if err := entities.ValidateIdentifier(key); err != nil {
		return "", entities.Unit, entities.Wrap(entities.KindGeneral, "invalid answer identifier "+key, err)
	}

	rawValue := raw[i+1:]
	str := unquote(rawValue)
	return key, entities.NewStringValue(str), nil
}

// unquote strips a single layer of matching single or double quotes from
// s, leaving bare tokens untouched.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// ParsePairs parses a sequence of `--answer` arguments into an AnswerMap,
// in the order given (last --answer for a repeated key wins, matching
// "duplicate identifiers overwrite" from §3).
func ParsePairs(raws []string) (entities.AnswerMap, error) {
	out := entities.NewAnswerMap()
	for _, raw := range raws {
		key, value, err := ParsePair(raw)
		if err != nil {
			return nil, err
		}
		out.Set(key, value)
	}
	return out, nil
}
