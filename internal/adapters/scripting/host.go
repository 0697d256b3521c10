// Package scripting implements the Scripting Host (§4.3): a goja-backed
// JavaScript VM that runs an archetype's driver script, exposing the
// prompt/render/log/print primitives and the Archetype/Catalog
// composition constructors as native Go functions bound into the VM.
//
// Grounded on original_source/archetect-core/src/script/rhai/modules/
// log_module.rs's `register(engine, archetect)` pattern (host functions
// registered onto a single dynamically-typed engine instance), generalized
// from Rhai to goja since the example pack's only embedded-scripting
// dependency with any pull-through is dop251/goja (transitive via
// oss.terrastruct.com/d2 in the teacher's own dependency graph) — see
// DESIGN.md.
package scripting

import (
	"context"
	"os"

	"github.com/dop251/goja"

	"github.com/archetect/archetect/internal/core/entities"
	"github.com/archetect/archetect/internal/core/usecases"
)

var _ usecases.ScriptingHost = (*Host)(nil)

// Host implements usecases.ScriptingHost.
type Host struct {
	archetypes usecases.ArchetypeEngine
}

// New creates a Scripting Host. archetypes is used to load and render
// nested archetypes reached via the driver script's Archetype(ref)
// constructor.
func New(archetypes usecases.ArchetypeEngine) *Host {
	return &Host{archetypes: archetypes}
}

// Run loads the script at entryPath and executes it against rc, binding
// the runtime primitives into a fresh VM per invocation (driver scripts
// are never shared across renders, so no VM pooling is needed).
func (h *Host) Run(ctx context.Context, entryPath string, rc *usecases.RuntimeContext) error {
	src, err := os.ReadFile(entryPath)
	if err != nil {
		return entities.Wrap(entities.KindIO, "failed to read driver script "+entryPath, err)
	}

	vm := goja.New()
	b := &binding{ctx: ctx, rc: rc, host: h, vm: vm}
	b.install()

	result, err := vm.RunScript(entryPath, string(src))
	if err != nil {
		if ex, ok := err.(*goja.Exception); ok {
			return entities.Wrap(entities.KindScriptAbort, "driver script threw", ex)
		}
		return entities.Wrap(entities.KindGeneral, "driver script failed", err)
	}

	exported := result.Export()
	if m, ok := exported.(map[string]any); ok {
		final, err := entities.AnswerMapFromAny(m)
		if err != nil {
			return err
		}
		rc.Answers = rc.Answers.Merge(final)
	}
	return nil
}

// binding holds the per-run state closed over by every host function
// exposed into the VM.
type binding struct {
	ctx  context.Context
	rc   *usecases.RuntimeContext
	host *Host
	vm   *goja.Runtime
}

func (b *binding) install() {
	b.vm.Set("answers", b.rc.Answers.ToAnyMap())
	b.vm.Set("switches", b.rc.Switches.Names())
	b.vm.Set("log", b.log)
	b.vm.Set("print", b.print)
	b.vm.Set("prompt", b.promptObject())
	b.vm.Set("render", b.render)
	b.vm.Set("Archetype", b.archetypeFn)
	b.vm.Set("Catalog", b.catalogFn)
}

// log implements the driver's `log(level, message)` primitive, mirroring
// log_module.rs's level-to-request-kind dispatch.
func (b *binding) log(level, message string) {
	kind := entities.ReqLogInfo
	switch lowerLevel(level) {
	case "trace":
		kind = entities.ReqLogTrace
	case "debug":
		kind = entities.ReqLogDebug
	case "warn", "warning":
		kind = entities.ReqLogWarn
	case "error":
		kind = entities.ReqLogError
	}
	_, _ = b.rc.IO.Request(b.ctx, entities.CommandRequest{Kind: kind, Text: message})
}

// print implements the driver's `print(message)` primitive: unstyled
// output distinct from a leveled log line.
func (b *binding) print(message string) {
	_, _ = b.rc.IO.Request(b.ctx, entities.CommandRequest{Kind: entities.ReqPrint, Text: message})
}

func lowerLevel(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// render implements the driver's `render()` primitive: walks the
// archetype's template root into the current destination, using the
// overwrite policy the Archetype Engine resolved onto rc.
func (b *binding) render() error {
	if b.rc.TemplateRoot == "" {
		return entities.NewError(entities.KindRender, "render() called with no template root bound to the runtime context")
	}
	return b.rc.Templates.RenderTree(b.ctx, b.rc.TemplateRoot, b.rc.Destination, b.rc.Answers, b.rc.Overwrite, b.rc.IO)
}
