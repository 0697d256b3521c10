// Package template implements the Template Renderer (§4.6): a two-pass
// expander of path names and file contents driven by Go's text/template,
// extended with a small bareword-identifier convenience layer so archetype
// authors can write the Jinja-style `{{ name }}` the spec's examples use,
// in addition to the natural `{{ .name }}` / `{{ .name.field }}` dotted
// map-indexing text/template already provides for nested values.
//
// No Jinja-compatible Go templating library in the example pack has a
// call-site usage anywhere to ground an integration on (gonja appears only
// as an indirect, never-imported dependency of one unrelated repo) — see
// DESIGN.md. text/template plus this thin layer is the verifiable
// alternative, grounded on the FuncMap idiom in
// other_examples/.../fireflyframework-cli/internal/scaffold/engine.go.
package template

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/archetect/archetect/internal/core/entities"
	"github.com/archetect/archetect/internal/core/usecases"
)

var _ usecases.TemplateEngine = (*Engine)(nil)

// ManifestFilename is skipped during a tree walk per §4.6 step 2.
const ManifestFilename = ".archetect.yml"

// binaryExtensions lists extensions copied verbatim rather than rendered,
// per §4.6 step 4's "tagged binary (by extension list or detection)".
var binaryExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true, ".bmp": true,
	".zip": true, ".tar": true, ".gz": true, ".jar": true, ".war": true, ".class": true,
	".pdf": true, ".exe": true, ".dll": true, ".so": true, ".dylib": true, ".bin": true,
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true, ".eot": true,
}

// Engine implements usecases.TemplateEngine.
type Engine struct {
	// IgnoreList names additional rendered path segments to skip, beyond
	// ManifestFilename, matching §4.6 step 2's "configured ignore list".
	IgnoreList []string
}

// NewEngine creates a Template Renderer with the default ignore list.
func NewEngine() *Engine {
	return &Engine{IgnoreList: []string{".git", ".DS_Store"}}
}

// RenderPath expands each "/"-separated segment of path independently,
// dropping any segment that renders empty (enabling conditional files via
// empty identifiers, §4.6 step 2).
func (e *Engine) RenderPath(ctx context.Context, path string, answers entities.AnswerMap) (string, error) {
	segments := strings.Split(filepath.ToSlash(path), "/")
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		rendered, err := e.renderString(seg, answers)
		if err != nil {
			return "", entities.Wrap(entities.KindRender, "failed to render path segment "+seg, err)
		}
		if rendered == "" {
			continue
		}
		out = append(out, rendered)
	}
	return strings.Join(out, "/"), nil
}

// RenderContent expands content as a template. Callers are responsible for
// skipping binary files before calling this (RenderTree does).
func (e *Engine) RenderContent(ctx context.Context, content []byte, answers entities.AnswerMap) ([]byte, error) {
	rendered, err := e.renderString(string(content), answers)
	if err != nil {
		return nil, entities.Wrap(entities.KindRender, "failed to render file content", err)
	}
	return []byte(rendered), nil
}

func (e *Engine) renderString(src string, answers entities.AnswerMap) (string, error) {
	funcs := make(template.FuncMap, len(baseFuncs)+len(answers))
	for k, v := range baseFuncs {
		funcs[k] = v
	}
	for key, val := range answers {
		val := val
		funcs[key] = func() any { return val.ToAny() }
	}

	tmpl, err := template.New("expr").Funcs(funcs).Option("missingkey=zero").Parse(src)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, answers.ToAnyMap()); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderTree walks templateRoot in depth-first pre-order, writing the
// rendered tree under destination per §4.6.
func (e *Engine) RenderTree(ctx context.Context, templateRoot, destination string, answers entities.AnswerMap, overwrite string, driver usecases.IODriver) error {
	if overwrite == "" {
		overwrite = "prompt"
	}

	return filepath.WalkDir(templateRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == templateRoot {
			return nil
		}

		rel, err := filepath.Rel(templateRoot, path)
		if err != nil {
			return err
		}
		if e.isIgnored(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		renderedRel, err := e.RenderPath(ctx, rel, answers)
		if err != nil {
			return err
		}
		if renderedRel == "" {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		target := filepath.Join(destination, renderedRel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		return e.renderFile(ctx, path, target, answers, overwrite, driver)
	})
}

func (e *Engine) isIgnored(rel string) bool {
	base := filepath.Base(rel)
	if base == ManifestFilename {
		return true
	}
	for _, ignore := range e.IgnoreList {
		if base == ignore {
			return true
		}
	}
	return false
}

func (e *Engine) renderFile(ctx context.Context, srcPath, target string, answers entities.AnswerMap, overwrite string, driver usecases.IODriver) error {
	skip, err := e.resolveExisting(ctx, target, overwrite, driver)
	if err != nil {
		return err
	}
	if skip {
		return nil
	}

	content, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	if isBinary(srcPath, content) {
		return os.WriteFile(target, content, 0o644)
	}

	rendered, err := e.RenderContent(ctx, content, answers)
	if err != nil {
		return err
	}
	return os.WriteFile(target, rendered, 0o644)
}

// resolveExisting implements §4.6 step 5's overwrite policy. skip == true
// means target already exists and must be left untouched.
func (e *Engine) resolveExisting(ctx context.Context, target, overwrite string, driver usecases.IODriver) (skip bool, err error) {
	if _, statErr := os.Stat(target); statErr != nil {
		return false, nil // nothing exists yet; nothing to resolve
	}

	switch overwrite {
	case "overwrite":
		return false, nil
	case "preserve":
		return true, nil
	default: // "prompt"
		resp, err := driver.Request(ctx, entities.CommandRequest{
			Kind: entities.ReqPromptBool,
			Prompt: &entities.PromptInfo{
				Kind:    entities.PromptBool,
				Message: "Overwrite " + target + "?",
			},
		})
		if err != nil {
			return false, entities.Wrap(entities.KindIO, "overwrite prompt failed for "+target, err)
		}
		switch resp.Kind {
		case entities.RespBoolean:
			return !resp.Bool, nil
		case entities.RespAbort:
			return false, entities.NewError(entities.KindScriptAbort, "render aborted at overwrite prompt for "+target)
		default:
			return true, nil
		}
	}
}

func isBinary(path string, content []byte) bool {
	if binaryExtensions[strings.ToLower(filepath.Ext(path))] {
		return true
	}
	for _, b := range content[:min(len(content), 8000)] {
		if b == 0 {
			return true
		}
	}
	return false
}
