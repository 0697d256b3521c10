package scripting

import (
	"context"

	"github.com/go-viper/mapstructure/v2"

	"github.com/archetect/archetect/internal/adapters/prompt"
	"github.com/archetect/archetect/internal/core/entities"
	"github.com/archetect/archetect/internal/core/usecases"
)

// rawSettings pulls the known §4.5 setting keys out of a driver-supplied
// plain object before each is coerced to an entities.Value; unrecognized
// keys are preserved via mapstructure's remainder capture so a settings
// map a future prompt kind needs isn't silently dropped.
type rawSettings struct {
	DefaultsWith any            `mapstructure:"defaults_with"`
	Optional     any            `mapstructure:"optional"`
	Min          any            `mapstructure:"min"`
	Max          any            `mapstructure:"max"`
	Help         any            `mapstructure:"help"`
	Placeholder  any            `mapstructure:"placeholder"`
	Options      any            `mapstructure:"options"`
	Remainder    map[string]any `mapstructure:",remain"`
}

func (r rawSettings) toMap() map[string]any {
	out := make(map[string]any, len(r.Remainder)+7)
	for k, v := range r.Remainder {
		out[k] = v
	}
	set := func(key string, v any) {
		if v != nil {
			out[key] = v
		}
	}
	set("defaults_with", r.DefaultsWith)
	set("optional", r.Optional)
	set("min", r.Min)
	set("max", r.Max)
	set("help", r.Help)
	set("placeholder", r.Placeholder)
	set("options", r.Options)
	return out
}

// promptFn is the common shape of the six prompt.* package functions.
type promptFn func(ctx context.Context, io usecases.IODriver, message, key string, settings prompt.Settings, answer *entities.Value, headless bool) (entities.Value, error)

// promptObject builds the `prompt` global: one method per kind, each
// materializing a Settings map from the driver-supplied plain object and
// dispatching through the matching Prompt Primitive.
func (b *binding) promptObject() map[string]any {
	return map[string]any{
		"text":        b.promptMethod(prompt.Text),
		"int":         b.promptMethod(prompt.Int),
		"bool":        b.promptMethod(prompt.Bool),
		"list":        b.promptMethod(prompt.List),
		"select":      b.promptMethod(prompt.Select),
		"multiselect": b.promptMethod(prompt.MultiSelect),
	}
}

func (b *binding) promptMethod(fn promptFn) func(message, key string, settings map[string]any) (any, error) {
	return func(message, key string, settings map[string]any) (any, error) {
		var raw rawSettings
		if err := mapstructure.Decode(settings, &raw); err != nil {
			return nil, entities.Wrap(entities.KindInvalidPromptSetting, "failed to decode prompt settings", err)
		}

		decoded := raw.toMap()
		s := make(prompt.Settings, len(decoded))
		for k, v := range decoded {
			s[k] = entities.FromAny(v)
		}

		var answerPtr *entities.Value
		if v, ok := b.rc.Answers.Get(key); ok {
			answerPtr = &v
		}

		val, err := fn(b.ctx, b.rc.IO, message, key, s, answerPtr, b.rc.Headless)
		if err != nil {
			return nil, err
		}
		b.rc.Answers.Set(key, val)
		return val.ToAny(), nil
	}
}
