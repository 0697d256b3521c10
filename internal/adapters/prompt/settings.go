// Package prompt implements the six Prompt Primitives (text, int, bool,
// list, select, multiselect), each following the uniform decision
// procedure of §4.5: materialize a PromptInfo from driver-supplied
// settings, short-circuit on a pre-computed answer, resolve headless
// defaults, and otherwise round-trip a CommandRequest through the IO
// Driver.
//
// Grounded on original_source/archetect-core/src/script/rhai/modules/prompt/
// {text,int,bool}.rs for the exact decision order (default-before-headless-
// error, optional-before-HeadlessNoAnswerError).
package prompt

import (
	"fmt"

	"github.com/archetect/archetect/internal/core/entities"
)

// Settings is the driver-supplied settings map for one prompt call, keyed
// by the per-kind keys named in §4.5: defaults_with, optional, min, max,
// placeholder, help, options, default, answer.
type Settings map[string]entities.Value

// Bool reads key as a bool, failing InvalidPromptSettingError if present
// but not coercible.
func (s Settings) Bool(key string) (bool, error) {
	v, ok := s[key]
	if !ok {
		return false, nil
	}
	switch v.Kind {
	case entities.KindBool:
		return v.Bool, nil
	case entities.KindString:
		b, ok := parseBool(v.Str)
		if !ok {
			return false, invalidSetting(key, "a boolean")
		}
		return b, nil
	default:
		return false, invalidSetting(key, "a boolean")
	}
}

// Int reads key as an *int64, returning nil if absent.
func (s Settings) Int(key string) (*int64, error) {
	v, ok := s[key]
	if !ok {
		return nil, nil
	}
	switch v.Kind {
	case entities.KindInt:
		n := v.Int
		return &n, nil
	case entities.KindString:
		var n int64
		if _, err := fmt.Sscanf(v.Str, "%d", &n); err != nil {
			return nil, invalidSetting(key, "an integer")
		}
		return &n, nil
	default:
		return nil, invalidSetting(key, "an integer")
	}
}

// String reads key as a string, returning "" if absent.
func (s Settings) String(key string) (string, bool) {
	v, ok := s[key]
	if !ok {
		return "", false
	}
	return v.AsString(), true
}

// Options reads the "options" key as an ordered []string.
func (s Settings) Options() ([]string, error) {
	v, ok := s["options"]
	if !ok {
		return nil, nil
	}
	list, ok := v.AsListStrict()
	if !ok {
		return nil, invalidSetting("options", "a list of strings")
	}
	out := make([]string, len(list))
	for i, e := range list {
		str, ok := e.AsStringStrict()
		if !ok {
			return nil, invalidSetting("options", "a list of strings")
		}
		out[i] = str
	}
	return out, nil
}

// Default returns the raw "defaults_with" value, if present.
func (s Settings) Default() (entities.Value, bool) {
	v, ok := s["defaults_with"]
	return v, ok
}

func invalidSetting(key, wantKind string) error {
	return entities.NewKeyedError(entities.KindInvalidPromptSetting, key,
		fmt.Sprintf("setting must be %s", wantKind))
}

func parseBool(s string) (bool, bool) {
	switch lower(s) {
	case "y", "yes", "t", "true":
		return true, true
	case "n", "no", "f", "false":
		return false, true
	default:
		return false, false
	}
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
