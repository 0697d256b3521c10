// Package catalog implements the Catalog Engine (§4.7): loading a YAML
// catalog tree, splicing in any nested catalog references, and walking
// entries to a single leaf archetype selection.
//
// Grounded on other_examples/.../ecoker-launchpad/internal/ai/catalog.go's
// flat catalog + ID lookup + seen-set dedup idiom, generalized here from a
// flat list to a recursive tree walk, and on
// internal/core/entities/catalog.go's Leaves()/IsGroup() tree shape
// already carried over from the teacher's select_template.go concept.
package catalog

import (
	"context"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/archetect/archetect/internal/core/entities"
	"github.com/archetect/archetect/internal/core/usecases"
)

var _ usecases.CatalogEngine = (*Engine)(nil)

// Filename is the conventional catalog-file name (§6).
const Filename = "catalog.yml"

// Engine implements usecases.CatalogEngine.
type Engine struct {
	resolver usecases.SourceResolver
}

// New creates a Catalog Engine resolving catalog sources through resolver.
func New(resolver usecases.SourceResolver) *Engine {
	return &Engine{resolver: resolver}
}

// yamlEntry mirrors §6's Entry grammar, plus a "catalog" extension that
// splices another catalog file's entries in at this point (the
// composition path CatalogCycleError guards against).
type yamlEntry struct {
	Description string      `yaml:"description"`
	Source      string      `yaml:"source"`
	Catalog     string      `yaml:"catalog"`
	Entries     []yamlEntry `yaml:"entries"`
}

type yamlCatalog struct {
	Description string      `yaml:"description"`
	Entries     []yamlEntry `yaml:"entries"`
}

// Load resolves ref, reads its catalog.yml, and parses it into a Catalog
// tree, recursively splicing any "catalog:" references while detecting
// cycles by path-identity of the loaded file.
func (e *Engine) Load(ctx context.Context, ref entities.Reference, offline bool) (entities.Catalog, error) {
	return e.load(ctx, ref, offline, map[string]bool{})
}

func (e *Engine) load(ctx context.Context, ref entities.Reference, offline bool, visiting map[string]bool) (entities.Catalog, error) {
	src, err := e.resolver.Resolve(ctx, ref, offline)
	if err != nil {
		return entities.Catalog{}, entities.Wrap(entities.KindFetch, "failed to resolve catalog source", err)
	}

	catalogPath := filepath.Join(src.LocalPath, Filename)
	abs, err := filepath.Abs(catalogPath)
	if err != nil {
		abs = catalogPath
	}
	if visiting[abs] {
		return entities.Catalog{}, entities.NewError(entities.KindCatalogCycle,
			"catalog at "+abs+" transitively references itself")
	}
	visiting[abs] = true
	defer delete(visiting, abs)

	data, err := os.ReadFile(catalogPath)
	if err != nil {
		return entities.Catalog{}, entities.Wrap(entities.KindManifest, "failed to read "+catalogPath, err)
	}

	var doc yamlCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return entities.Catalog{}, entities.Wrap(entities.KindManifest, "failed to parse "+catalogPath, err)
	}

	entries, err := e.convertEntries(ctx, doc.Entries, offline, visiting)
	if err != nil {
		return entities.Catalog{}, err
	}

	return entities.Catalog{Origin: ref, Entries: entries}, nil
}

func (e *Engine) convertEntries(ctx context.Context, raw []yamlEntry, offline bool, visiting map[string]bool) ([]entities.CatalogEntry, error) {
	out := make([]entities.CatalogEntry, 0, len(raw))
	for _, re := range raw {
		switch {
		case re.Catalog != "":
			sub, err := e.load(ctx, entities.ClassifyReference(re.Catalog), offline, visiting)
			if err != nil {
				return nil, err
			}
			out = append(out, entities.CatalogEntry{Description: re.Description, Entries: sub.Entries})
		case len(re.Entries) > 0:
			children, err := e.convertEntries(ctx, re.Entries, offline, visiting)
			if err != nil {
				return nil, err
			}
			out = append(out, entities.CatalogEntry{Description: re.Description, Entries: children})
		case re.Source != "":
			ref := entities.ClassifyReference(re.Source)
			out = append(out, entities.CatalogEntry{Description: re.Description, Source: &ref})
		default:
			return nil, entities.NewError(entities.KindManifest,
				"catalog entry "+re.Description+" has neither source, entries, nor catalog")
		}
	}
	return out, nil
}

// Select recurses into entries, auto-selecting a lone leaf in a group and
// prompting via driver among siblings otherwise, detecting cycles by
// group identity (the description path walked so far).
func (e *Engine) Select(ctx context.Context, entries []entities.CatalogEntry, driver usecases.IODriver, visited map[string]bool) (entities.CatalogEntry, error) {
	group := entities.Catalog{Entries: entries}
	if leaves := group.Leaves(); len(leaves) == 1 && len(entries) == 1 {
		return leaves[0], nil
	}

	labels := make([]string, len(entries))
	for i, en := range entries {
		labels[i] = en.Description
	}

	resp, err := driver.Request(ctx, entities.CommandRequest{
		Kind: entities.ReqPromptSelect,
		Prompt: &entities.PromptInfo{
			Kind:    entities.PromptSelect,
			Message: "Select an archetype",
			Options: labels,
		},
	})
	if err != nil {
		return entities.CatalogEntry{}, entities.Wrap(entities.KindIO, "catalog selection prompt failed", err)
	}
	if resp.Kind == entities.RespAbort {
		return entities.CatalogEntry{}, entities.NewError(entities.KindScriptAbort, "catalog selection aborted")
	}
	if resp.Kind != entities.RespString {
		return entities.CatalogEntry{}, entities.NewError(entities.KindUnexpectedResponse,
			"expected a String response to catalog selection")
	}

	var chosen *entities.CatalogEntry
	for i := range entries {
		if entries[i].Description == resp.Str {
			chosen = &entries[i]
			break
		}
	}
	if chosen == nil {
		return entities.CatalogEntry{}, entities.NewError(entities.KindGeneral, "unknown catalog selection "+resp.Str)
	}

	if chosen.IsGroup() {
		key := chosen.Description
		if visited[key] {
			return entities.CatalogEntry{}, entities.NewError(entities.KindCatalogCycle,
				"catalog group "+key+" transitively references itself")
		}
		visited[key] = true
		defer delete(visited, key)
		return e.Select(ctx, chosen.Entries, driver, visited)
	}

	return *chosen, nil
}
