package prompt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archetect/archetect/internal/adapters/io/headless"
	"github.com/archetect/archetect/internal/core/entities"
)

func headlessDriver() *headless.Driver { return headless.New(nil) }

func TestInt_answerShortCircuitsNoRequest(t *testing.T) {
	settings := Settings{}
	answer := entities.NewIntValue(42)
	v, err := Int(context.Background(), headlessDriver(), "age?", "age", settings, &answer, false)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v.Int)
}

func TestInt_answerViolatesBound(t *testing.T) {
	settings := Settings{"min": entities.NewIntValue(0), "max": entities.NewIntValue(120)}
	answer := entities.NewIntValue(999)
	_, err := Int(context.Background(), headlessDriver(), "age?", "age", settings, &answer, false)
	require.Error(t, err)

	var terr *entities.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, entities.KindAnswerValidation, terr.Kind)
	assert.Equal(t, "age", terr.Key)
	assert.Contains(t, terr.Message, "must be ≤ 120")
}

func TestBool_coercesYesStringAnswer(t *testing.T) {
	settings := Settings{}
	answer := entities.NewStringValue("YES")
	v, err := Bool(context.Background(), headlessDriver(), "enable?", "enable", settings, &answer, false)
	require.NoError(t, err)
	assert.True(t, v.Bool)
}

func TestText_headlessNoAnswerFailsWhenNotOptional(t *testing.T) {
	settings := Settings{}
	_, err := Text(context.Background(), headlessDriver(), "name?", "name", settings, nil, true)
	require.Error(t, err)

	var terr *entities.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, entities.KindHeadlessNoAnswer, terr.Kind)
}

func TestText_headlessOptionalReturnsNoAnswer(t *testing.T) {
	settings := Settings{"optional": entities.NewBoolValue(true)}
	v, err := Text(context.Background(), headlessDriver(), "nickname?", "nickname", settings, nil, true)
	require.NoError(t, err)
	assert.Equal(t, entities.KindUnit, v.Kind)
}

func TestText_headlessUsesDefaultsWith(t *testing.T) {
	settings := Settings{"defaults_with": entities.NewStringValue("World")}
	v, err := Text(context.Background(), headlessDriver(), "name?", "name", settings, nil, true)
	require.NoError(t, err)
	assert.Equal(t, "World", v.Str)
}

func TestSelect_answerMustBeDeclaredOption(t *testing.T) {
	settings := Settings{"options": entities.NewListValue([]entities.Value{
		entities.NewStringValue("web"), entities.NewStringValue("service"),
	})}
	answer := entities.NewStringValue("unknown")
	_, err := Select(context.Background(), headlessDriver(), "kind?", "kind", settings, &answer, false)
	require.Error(t, err)
}

func TestMultiSelect_rejectsValueOutsideOptions(t *testing.T) {
	settings := Settings{"options": entities.NewListValue([]entities.Value{
		entities.NewStringValue("a"), entities.NewStringValue("b"),
	})}
	answer := entities.NewListValue([]entities.Value{entities.NewStringValue("a"), entities.NewStringValue("z")})
	_, err := MultiSelect(context.Background(), headlessDriver(), "pick?", "pick", settings, &answer, false)
	require.Error(t, err)
}
