package answers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dop251/goja"
	"gopkg.in/yaml.v3"

	"github.com/archetect/archetect/internal/core/entities"
	"github.com/archetect/archetect/internal/core/usecases"
)

var _ usecases.AnswerFileDecoder = (*FileDecoder)(nil)

// FileDecoder implements usecases.AnswerFileDecoder for the three answer
// file shapes named in §6: YAML, JSON, and script-literal (".rhai", kept
// as the conventional extension name; the expression evaluated beneath it
// is JavaScript run through the same goja engine the Scripting Host uses,
// not Rhai — see DESIGN.md).
type FileDecoder struct{}

// NewFileDecoder creates an answer-file decoder.
func NewFileDecoder() *FileDecoder { return &FileDecoder{} }

// DecodeFile reads path and decodes it per its extension into an
// AnswerMap. The top-level value must be an object/map.
func (d *FileDecoder) DecodeFile(ctx context.Context, path string) (entities.AnswerMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, entities.Wrap(entities.KindIO, "failed to read answer file "+path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return decodeYAML(data)
	case ".json":
		return decodeJSON(data)
	case ".rhai":
		return decodeScriptLiteral(data)
	default:
		return nil, entities.NewError(entities.KindGeneral,
			"unsupported answer file extension for "+path+" (want .yml, .yaml, .json, or .rhai)")
	}
}

func decodeYAML(data []byte) (entities.AnswerMap, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, entities.Wrap(entities.KindGeneral, "failed to parse YAML answer file", err)
	}
	return entities.AnswerMapFromAny(normalizeYAML(doc))
}

// normalizeYAML converts yaml.v3's map[string]interface{} (already string
// keyed) recursively, leaving nested maps/slices as map[string]any/[]any so
// AnswerMapFromAny/entities.FromAny can walk them uniformly.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalizeYAML(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeYAML(e)
		}
		return out
	default:
		return v
	}
}

func decodeJSON(data []byte) (entities.AnswerMap, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, entities.Wrap(entities.KindGeneral, "failed to parse JSON answer file", err)
	}
	return entities.AnswerMapFromAny(doc)
}

// decodeScriptLiteral evaluates data as a JavaScript expression in a
// fresh, no-I/O goja VM (no host functions registered: no prompt, render,
// log, archetype, or catalog modules reach this VM) and requires the
// result to be an object.
func decodeScriptLiteral(data []byte) (entities.AnswerMap, error) {
	vm := goja.New()
	result, err := vm.RunString(string(data))
	if err != nil {
		return nil, entities.Wrap(entities.KindGeneral, "failed to evaluate script-literal answer file", err)
	}
	exported := result.Export()
	m, ok := exported.(map[string]any)
	if !ok {
		return nil, entities.NewError(entities.KindGeneral,
			fmt.Sprintf("script-literal answer file must evaluate to a map, got %T", exported))
	}
	return entities.AnswerMapFromAny(m)
}
