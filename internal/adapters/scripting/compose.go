package scripting

import (
	"github.com/archetect/archetect/internal/core/entities"
	"github.com/archetect/archetect/internal/core/usecases"
)

// archetypeFn implements the driver's `Archetype(ref)` constructor: it
// returns an object whose render(subAnswers, destination) method loads and
// renders a nested archetype, returning the child's resolved answers.
func (b *binding) archetypeFn(ref string) map[string]any {
	return map[string]any{
		"render": func(subAnswers map[string]any, destination string) (map[string]any, error) {
			child, err := b.renderNestedArchetype(ref, subAnswers, destination)
			if err != nil {
				return nil, err
			}
			return child.Answers.ToAnyMap(), nil
		},
	}
}

func (b *binding) renderNestedArchetype(ref string, subAnswers map[string]any, destination string) (*usecases.RuntimeContext, error) {
	arch, err := b.host.archetypes.Load(b.ctx, entities.ClassifyReference(ref), b.rc.Offline)
	if err != nil {
		return nil, err
	}

	childAnswers, err := entities.AnswerMapFromAny(nonNil(subAnswers))
	if err != nil {
		return nil, err
	}
	dest := destination
	if dest == "" {
		dest = b.rc.Destination
	}

	child := b.rc.Child(childAnswers, dest)
	if err := b.host.archetypes.Render(b.ctx, arch, child); err != nil {
		return nil, err
	}
	return child, nil
}

// catalogFn implements the driver's `Catalog(ref)` constructor: it returns
// an object whose render(subAnswers, destination) method loads the
// catalog, selects a leaf entry (auto-selecting a lone leaf or prompting
// through the IO driver), and renders that entry's archetype.
func (b *binding) catalogFn(ref string) map[string]any {
	return map[string]any{
		"render": func(subAnswers map[string]any, destination string) (map[string]any, error) {
			catalog, err := b.rc.Catalogs.Load(b.ctx, entities.ClassifyReference(ref), b.rc.Offline)
			if err != nil {
				return nil, err
			}

			selector := usecases.NewSelectCatalogEntry(b.rc.Catalogs, b.rc.IO)
			result, err := selector.Execute(b.ctx, &usecases.SelectCatalogEntryRequest{Catalog: catalog})
			if err != nil {
				return nil, err
			}
			if result.Entry.Source == nil {
				return nil, entities.NewError(entities.KindManifest, "catalog selection resolved to a group, not an archetype")
			}

			child, err := b.renderNestedArchetype(result.Entry.Source.String(), subAnswers, destination)
			if err != nil {
				return nil, err
			}
			return child.Answers.ToAnyMap(), nil
		},
	}
}

func nonNil(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
