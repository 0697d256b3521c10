package usecases

import (
	"github.com/archetect/archetect/internal/core/entities"
)

// RuntimeContext carries every collaborator and piece of accumulated state
// a driver script needs over the lifetime of one render: the resolved
// answers, enabled switches, destination directory, and the ports used to
// reach the outside world (IO, templates, scripting, catalogs).
//
// A RuntimeContext is built once per top-level render via
// RuntimeContextBuilder and then overlaid per nested archetype via Child,
// which returns a child that shares the parent's ports and switches but
// carries its own answers/destination.
type RuntimeContext struct {
	Layout         SystemLayout
	Resolver       SourceResolver
	Scripting      ScriptingHost
	IO             IODriver
	Templates      TemplateEngine
	Catalogs       CatalogEngine
	Logger         Logger

	Answers        entities.AnswerMap
	Switches       entities.SwitchSet
	Destination    string
	Offline        bool
	Headless       bool

	// TemplateRoot and Overwrite are set by the Archetype Engine just
	// before invoking the driver script, so the Scripting Host's render()
	// host function knows what to walk and which overwrite policy
	// governs existing files, without threading extra parameters through
	// the fixed ScriptingHost.Run signature.
	TemplateRoot string
	Overwrite    string
}

// RuntimeContextBuilder assembles a RuntimeContext one concern at a time,
// mirroring the functional-options idiom used elsewhere in this package but
// expressed as a builder since every field here is required for a
// functioning render rather than optional tuning.
type RuntimeContextBuilder struct {
	rc RuntimeContext
}

// NewRuntimeContextBuilder starts a builder with empty answers/switches.
func NewRuntimeContextBuilder() *RuntimeContextBuilder {
	return &RuntimeContextBuilder{
		rc: RuntimeContext{
			Answers:  entities.NewAnswerMap(),
			Switches: entities.NewSwitchSet(),
		},
	}
}

func (b *RuntimeContextBuilder) WithLayout(l SystemLayout) *RuntimeContextBuilder {
	b.rc.Layout = l
	return b
}

func (b *RuntimeContextBuilder) WithResolver(r SourceResolver) *RuntimeContextBuilder {
	b.rc.Resolver = r
	return b
}

func (b *RuntimeContextBuilder) WithScripting(s ScriptingHost) *RuntimeContextBuilder {
	b.rc.Scripting = s
	return b
}

func (b *RuntimeContextBuilder) WithIO(io IODriver) *RuntimeContextBuilder {
	b.rc.IO = io
	return b
}

func (b *RuntimeContextBuilder) WithTemplates(t TemplateEngine) *RuntimeContextBuilder {
	b.rc.Templates = t
	return b
}

func (b *RuntimeContextBuilder) WithCatalogs(c CatalogEngine) *RuntimeContextBuilder {
	b.rc.Catalogs = c
	return b
}

func (b *RuntimeContextBuilder) WithLogger(l Logger) *RuntimeContextBuilder {
	b.rc.Logger = l
	return b
}

func (b *RuntimeContextBuilder) WithAnswers(a entities.AnswerMap) *RuntimeContextBuilder {
	b.rc.Answers = a
	return b
}

func (b *RuntimeContextBuilder) WithSwitches(s entities.SwitchSet) *RuntimeContextBuilder {
	b.rc.Switches = s
	return b
}

func (b *RuntimeContextBuilder) WithDestination(dir string) *RuntimeContextBuilder {
	b.rc.Destination = dir
	return b
}

func (b *RuntimeContextBuilder) WithOffline(offline bool) *RuntimeContextBuilder {
	b.rc.Offline = offline
	return b
}

func (b *RuntimeContextBuilder) WithHeadless(headless bool) *RuntimeContextBuilder {
	b.rc.Headless = headless
	return b
}

// Build returns the assembled RuntimeContext.
func (b *RuntimeContextBuilder) Build() *RuntimeContext {
	rc := b.rc
	return &rc
}

// Child returns a new RuntimeContext sharing rc's ports but scoped to a
// nested archetype composition: per §4.3, the child sees only the
// explicitly forwarded sub-map, not the parent's full answer map, so an
// answer the parent holds but never forwards stays invisible to the
// composed archetype's driver script. Switches, IO driver, and the other
// ports are inherited unchanged; destination is replaced.
func (rc *RuntimeContext) Child(answers entities.AnswerMap, destination string) *RuntimeContext {
	child := *rc
	child.Answers = entities.NewAnswerMap().Merge(answers)
	child.Destination = destination
	return &child
}

// RenderContext is the per-file view a Template Renderer consumes: the
// answers available for expression evaluation and the overwrite policy
// governing what happens when the target path already exists.
type RenderContext struct {
	Answers   entities.AnswerMap
	Overwrite string // "preserve" | "prompt" | "overwrite"
}
