package prompt

import (
	"context"

	"github.com/archetect/archetect/internal/core/entities"
	"github.com/archetect/archetect/internal/core/usecases"
)

// Text implements the text prompt primitive.
func Text(ctx context.Context, io usecases.IODriver, message, key string, settings Settings, answer *entities.Value, headless bool) (entities.Value, error) {
	optional, err := settings.Bool("optional")
	if err != nil {
		return entities.Unit, err
	}
	min, err := settings.Int("min")
	if err != nil {
		return entities.Unit, err
	}
	max, err := settings.Int("max")
	if err != nil {
		return entities.Unit, err
	}

	if answer != nil {
		str, ok := answer.AsStringStrict()
		if !ok {
			return entities.Unit, typeErr(key, "a String")
		}
		if err := validateTextLen(key, min, max, str); err != nil {
			return entities.Unit, err
		}
		return *answer, nil
	}

	if headless {
		if def, ok := settings.Default(); ok {
			str, _ := def.AsStringStrict()
			if err := validateTextLen(key, min, max, str); err != nil {
				return entities.Unit, err
			}
			return def, nil
		}
		if optional {
			return entities.Unit, nil
		}
		return entities.Unit, entities.NewKeyedError(entities.KindHeadlessNoAnswer, key,
			"prompt \""+message+"\" has no answer in headless mode")
	}

	placeholder, _ := settings.String("placeholder")
	help, _ := settings.String("help")
	var def *entities.Value
	if d, ok := settings.Default(); ok {
		def = &d
	}
	info := &entities.PromptInfo{
		Kind: entities.PromptText, Message: message, Key: key, Default: def,
		Placeholder: placeholder, Help: help, Optional: optional, Min: min, Max: max,
	}

	return dispatch(ctx, io, entities.CommandRequest{Kind: entities.ReqPromptText, Prompt: info}, key, message, optional,
		func(resp entities.CommandResponse) (entities.Value, error) {
			if resp.Kind != entities.RespString {
				return entities.Unit, unexpected(key, message, "String")
			}
			if err := validateTextLen(key, min, max, resp.Str); err != nil {
				return entities.Unit, err
			}
			return entities.NewStringValue(resp.Str), nil
		})
}

// Int implements the int prompt primitive.
func Int(ctx context.Context, io usecases.IODriver, message, key string, settings Settings, answer *entities.Value, headless bool) (entities.Value, error) {
	optional, err := settings.Bool("optional")
	if err != nil {
		return entities.Unit, err
	}
	min, err := settings.Int("min")
	if err != nil {
		return entities.Unit, err
	}
	max, err := settings.Int("max")
	if err != nil {
		return entities.Unit, err
	}

	if answer != nil {
		n, ok := answer.AsIntStrict()
		if !ok {
			return entities.Unit, typeErr(key, "an Integer")
		}
		if err := validateIntRange(key, min, max, n); err != nil {
			return entities.Unit, err
		}
		return *answer, nil
	}

	if headless {
		if def, ok := settings.Default(); ok {
			n, _ := def.AsIntStrict()
			if err := validateIntRange(key, min, max, n); err != nil {
				return entities.Unit, err
			}
			return def, nil
		}
		if optional {
			return entities.Unit, nil
		}
		return entities.Unit, entities.NewKeyedError(entities.KindHeadlessNoAnswer, key,
			"prompt \""+message+"\" has no answer in headless mode")
	}

	placeholder, _ := settings.String("placeholder")
	help, _ := settings.String("help")
	var def *entities.Value
	if d, ok := settings.Default(); ok {
		def = &d
	}
	info := &entities.PromptInfo{
		Kind: entities.PromptInt, Message: message, Key: key, Default: def,
		Placeholder: placeholder, Help: help, Optional: optional, Min: min, Max: max,
	}

	return dispatch(ctx, io, entities.CommandRequest{Kind: entities.ReqPromptInt, Prompt: info}, key, message, optional,
		func(resp entities.CommandResponse) (entities.Value, error) {
			if resp.Kind != entities.RespInteger {
				return entities.Unit, unexpected(key, message, "Integer")
			}
			if err := validateIntRange(key, min, max, resp.Int); err != nil {
				return entities.Unit, err
			}
			return entities.NewIntValue(resp.Int), nil
		})
}

// Bool implements the bool prompt primitive. String answers are coerced
// via the y|yes|t|true|n|no|f|false grammar (case-insensitive); native
// booleans pass through unchanged.
func Bool(ctx context.Context, io usecases.IODriver, message, key string, settings Settings, answer *entities.Value, headless bool) (entities.Value, error) {
	optional, err := settings.Bool("optional")
	if err != nil {
		return entities.Unit, err
	}

	if answer != nil {
		b, ok := coerceBool(*answer)
		if !ok {
			return entities.Unit, validationErr(key, "must resemble a boolean")
		}
		return entities.NewBoolValue(b), nil
	}

	if headless {
		if def, ok := settings.Default(); ok {
			b, ok := coerceBool(def)
			if !ok {
				return entities.Unit, validationErr(key, "must resemble a boolean")
			}
			return entities.NewBoolValue(b), nil
		}
		if optional {
			return entities.Unit, nil
		}
		return entities.Unit, entities.NewKeyedError(entities.KindHeadlessNoAnswer, key,
			"prompt \""+message+"\" has no answer in headless mode")
	}

	placeholder, _ := settings.String("placeholder")
	help, _ := settings.String("help")
	var def *entities.Value
	if d, ok := settings.Default(); ok {
		def = &d
	}
	info := &entities.PromptInfo{
		Kind: entities.PromptBool, Message: message, Key: key, Default: def,
		Placeholder: placeholder, Help: help, Optional: optional,
	}

	return dispatch(ctx, io, entities.CommandRequest{Kind: entities.ReqPromptBool, Prompt: info}, key, message, optional,
		func(resp entities.CommandResponse) (entities.Value, error) {
			if resp.Kind != entities.RespBoolean {
				return entities.Unit, unexpected(key, message, "Boolean")
			}
			return entities.NewBoolValue(resp.Bool), nil
		})
}

func coerceBool(v entities.Value) (bool, bool) {
	switch v.Kind {
	case entities.KindBool:
		return v.Bool, true
	case entities.KindString:
		return parseBool(v.Str)
	default:
		return false, false
	}
}

// List implements the list prompt primitive: an array of strings bounded
// by min/max length.
func List(ctx context.Context, io usecases.IODriver, message, key string, settings Settings, answer *entities.Value, headless bool) (entities.Value, error) {
	optional, err := settings.Bool("optional")
	if err != nil {
		return entities.Unit, err
	}
	min, err := settings.Int("min")
	if err != nil {
		return entities.Unit, err
	}
	max, err := settings.Int("max")
	if err != nil {
		return entities.Unit, err
	}

	if answer != nil {
		list, ok := answer.AsListStrict()
		if !ok {
			return entities.Unit, typeErr(key, "an Array")
		}
		if err := validateListLen(key, min, max, len(list)); err != nil {
			return entities.Unit, err
		}
		return *answer, nil
	}

	if headless {
		if def, ok := settings.Default(); ok {
			list, _ := def.AsListStrict()
			if err := validateListLen(key, min, max, len(list)); err != nil {
				return entities.Unit, err
			}
			return def, nil
		}
		if optional {
			return entities.Unit, nil
		}
		return entities.Unit, entities.NewKeyedError(entities.KindHeadlessNoAnswer, key,
			"prompt \""+message+"\" has no answer in headless mode")
	}

	placeholder, _ := settings.String("placeholder")
	help, _ := settings.String("help")
	var def *entities.Value
	if d, ok := settings.Default(); ok {
		def = &d
	}
	info := &entities.PromptInfo{
		Kind: entities.PromptList, Message: message, Key: key, Default: def,
		Placeholder: placeholder, Help: help, Optional: optional, Min: min, Max: max,
	}

	return dispatch(ctx, io, entities.CommandRequest{Kind: entities.ReqPromptList, Prompt: info}, key, message, optional,
		func(resp entities.CommandResponse) (entities.Value, error) {
			if resp.Kind != entities.RespArray {
				return entities.Unit, unexpected(key, message, "Array")
			}
			if err := validateListLen(key, min, max, len(resp.Array)); err != nil {
				return entities.Unit, err
			}
			return entities.NewListValue(resp.Array), nil
		})
}

// Select implements the select prompt primitive: one of the declared
// options, presented in declaration order.
func Select(ctx context.Context, io usecases.IODriver, message, key string, settings Settings, answer *entities.Value, headless bool) (entities.Value, error) {
	optional, err := settings.Bool("optional")
	if err != nil {
		return entities.Unit, err
	}
	options, err := settings.Options()
	if err != nil {
		return entities.Unit, err
	}

	if answer != nil {
		str, ok := answer.AsStringStrict()
		if !ok {
			return entities.Unit, typeErr(key, "a String")
		}
		if err := validateOneOf(key, options, str); err != nil {
			return entities.Unit, err
		}
		return *answer, nil
	}

	if headless {
		if def, ok := settings.Default(); ok {
			str, _ := def.AsStringStrict()
			if err := validateOneOf(key, options, str); err != nil {
				return entities.Unit, err
			}
			return def, nil
		}
		if optional {
			return entities.Unit, nil
		}
		return entities.Unit, entities.NewKeyedError(entities.KindHeadlessNoAnswer, key,
			"prompt \""+message+"\" has no answer in headless mode")
	}

	help, _ := settings.String("help")
	var def *entities.Value
	if d, ok := settings.Default(); ok {
		def = &d
	}
	info := &entities.PromptInfo{
		Kind: entities.PromptSelect, Message: message, Key: key, Default: def,
		Help: help, Optional: optional, Options: options,
	}

	return dispatch(ctx, io, entities.CommandRequest{Kind: entities.ReqPromptSelect, Prompt: info}, key, message, optional,
		func(resp entities.CommandResponse) (entities.Value, error) {
			if resp.Kind != entities.RespString {
				return entities.Unit, unexpected(key, message, "String")
			}
			if err := validateOneOf(key, options, resp.Str); err != nil {
				return entities.Unit, err
			}
			return entities.NewStringValue(resp.Str), nil
		})
}

// MultiSelect implements the multiselect prompt primitive: a subset of
// declared options, bounded by min/max subset size.
func MultiSelect(ctx context.Context, io usecases.IODriver, message, key string, settings Settings, answer *entities.Value, headless bool) (entities.Value, error) {
	optional, err := settings.Bool("optional")
	if err != nil {
		return entities.Unit, err
	}
	min, err := settings.Int("min")
	if err != nil {
		return entities.Unit, err
	}
	max, err := settings.Int("max")
	if err != nil {
		return entities.Unit, err
	}
	options, err := settings.Options()
	if err != nil {
		return entities.Unit, err
	}

	validate := func(list []entities.Value) error {
		strs := make([]string, len(list))
		for i, e := range list {
			s, ok := e.AsStringStrict()
			if !ok {
				return typeErr(key, "an Array of Strings")
			}
			strs[i] = s
		}
		if err := validateListLen(key, min, max, len(strs)); err != nil {
			return err
		}
		return validateSubsetOf(key, options, strs)
	}

	if answer != nil {
		list, ok := answer.AsListStrict()
		if !ok {
			return entities.Unit, typeErr(key, "an Array")
		}
		if err := validate(list); err != nil {
			return entities.Unit, err
		}
		return *answer, nil
	}

	if headless {
		if def, ok := settings.Default(); ok {
			list, _ := def.AsListStrict()
			if err := validate(list); err != nil {
				return entities.Unit, err
			}
			return def, nil
		}
		if optional {
			return entities.Unit, nil
		}
		return entities.Unit, entities.NewKeyedError(entities.KindHeadlessNoAnswer, key,
			"prompt \""+message+"\" has no answer in headless mode")
	}

	help, _ := settings.String("help")
	var def *entities.Value
	if d, ok := settings.Default(); ok {
		def = &d
	}
	info := &entities.PromptInfo{
		Kind: entities.PromptMultiSelect, Message: message, Key: key, Default: def,
		Help: help, Optional: optional, Options: options, Min: min, Max: max,
	}

	return dispatch(ctx, io, entities.CommandRequest{Kind: entities.ReqPromptMultiSelect, Prompt: info}, key, message, optional,
		func(resp entities.CommandResponse) (entities.Value, error) {
			if resp.Kind != entities.RespArray {
				return entities.Unit, unexpected(key, message, "Array")
			}
			if err := validate(resp.Array); err != nil {
				return entities.Unit, err
			}
			return entities.NewListValue(resp.Array), nil
		})
}
