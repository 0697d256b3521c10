package usecases

import (
	"context"
	"fmt"

	"github.com/archetect/archetect/internal/core/entities"
)

// RenderRequest defines the input for the RenderArchetype use case: what to
// render, where to put it, and the answer/switch overlays supplied via the
// command line.
type RenderRequest struct {
	Source      entities.Reference
	Destination string
	Answers     entities.AnswerMap // --answer pairs and answer-file layers, already merged by the caller
	Switches    entities.SwitchSet
	Offline     bool
	Headless    bool
}

// RenderResult defines the output of the RenderArchetype use case.
type RenderResult struct {
	Archetype entities.Archetype
}

// RenderArchetype orchestrates one top-level render: resolve the source,
// load its manifest, build a RuntimeContext, and run the driver script.
type RenderArchetype struct {
	resolver  SourceResolver
	engine    ArchetypeEngine
	layout    SystemLayout
	scripting ScriptingHost
	io        IODriver
	templates TemplateEngine
	catalogs  CatalogEngine
	logger    Logger
}

// RenderArchetypeOption is a functional option for configuring RenderArchetype.
type RenderArchetypeOption func(*RenderArchetype)

func WithRenderLogger(l Logger) RenderArchetypeOption {
	return func(r *RenderArchetype) { r.logger = l }
}

func WithRenderCatalogs(c CatalogEngine) RenderArchetypeOption {
	return func(r *RenderArchetype) { r.catalogs = c }
}

// NewRenderArchetype creates a new RenderArchetype use case. resolver,
// engine, layout, scripting, io, and templates are required collaborators;
// logger and catalogs are optional.
func NewRenderArchetype(
	resolver SourceResolver,
	engine ArchetypeEngine,
	layout SystemLayout,
	scripting ScriptingHost,
	io IODriver,
	templates TemplateEngine,
	opts ...RenderArchetypeOption,
) *RenderArchetype {
	uc := &RenderArchetype{
		resolver:  resolver,
		engine:    engine,
		layout:    layout,
		scripting: scripting,
		io:        io,
		templates: templates,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute resolves req.Source, loads its manifest, and runs its driver
// script against a freshly built RuntimeContext.
func (uc *RenderArchetype) Execute(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if uc.logger != nil {
		uc.logger.Info("rendering archetype", "source", req.Source.String(), "destination", req.Destination)
	}

	arch, err := uc.engine.Load(ctx, req.Source, req.Offline)
	if err != nil {
		return nil, fmt.Errorf("failed to load archetype: %w", err)
	}

	builder := NewRuntimeContextBuilder().
		WithLayout(uc.layout).
		WithResolver(uc.resolver).
		WithScripting(uc.scripting).
		WithIO(uc.io).
		WithTemplates(uc.templates).
		WithLogger(uc.logger).
		WithAnswers(req.Answers).
		WithSwitches(req.Switches).
		WithDestination(req.Destination).
		WithOffline(req.Offline).
		WithHeadless(req.Headless)
	if uc.catalogs != nil {
		builder = builder.WithCatalogs(uc.catalogs)
	}
	rc := builder.Build()

	if err := uc.engine.Render(ctx, arch, rc); err != nil {
		return nil, fmt.Errorf("failed to render archetype %s: %w", arch.Name, err)
	}

	if uc.logger != nil {
		uc.logger.Info("rendered archetype", "name", arch.Name, "destination", req.Destination)
	}

	return &RenderResult{Archetype: arch}, nil
}
