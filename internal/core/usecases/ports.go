package usecases

import (
	"context"

	"github.com/archetect/archetect/internal/core/entities"
)

// SystemLayout resolves the directories archetect uses for configuration,
// caching, and the user catalog, per the Native/Rooted/Temp layout modes.
//
// Implementations MUST support the XDG Base Directory Specification with
// env var overrides (ARCHETECT_CONFIG_HOME, XDG_CONFIG_HOME, XDG_CACHE_HOME).
type SystemLayout interface {
	// ConfigsDir returns the directory holding config.toml and the
	// catalog.yml answers/catalog registrations.
	ConfigsDir() string

	// CacheDir returns the root cache directory.
	CacheDir() string

	// CatalogCacheDir returns the subdirectory caching resolved catalogs.
	CatalogCacheDir() string

	// GitCacheDir returns the subdirectory caching cloned git sources.
	GitCacheDir() string

	// HTTPCacheDir returns the subdirectory caching unpacked HTTP archives.
	HTTPCacheDir() string

	// AnswersConfigPath returns the path to the global answers file,
	// performing the one-shot answers.yaml -> answers.yml rename on first
	// access if only the legacy name exists.
	AnswersConfigPath() string

	// UserCatalogPath returns the path to the user's personal catalog.yml.
	UserCatalogPath() string
}

// SourceResolver classifies and materializes a Reference into a local,
// usable directory, serializing concurrent fetches of the same cache key
// with a file lock.
type SourceResolver interface {
	// Resolve classifies ref and returns a local directory containing its
	// contents. For ReferenceLocal this is immediate; for git/http
	// references it fetches into the cache unless offline is true and a
	// cached copy already exists, in which case the cached copy is used
	// and refresh is skipped.
	Resolve(ctx context.Context, ref entities.Reference, offline bool) (entities.CachedSource, error)
}

// ScriptingHost executes an archetype's driver script in a sandboxed VM,
// exposing the render/prompt/log primitives as host functions the script
// calls synchronously.
type ScriptingHost interface {
	// Run loads and executes the script at entryPath within rc, blocking
	// until the script returns or calls an abort primitive.
	Run(ctx context.Context, entryPath string, rc *RuntimeContext) error
}

// IODriver is the single blocking request/response boundary between the
// runtime and a human or remote caller. Exactly one CommandResponse answers
// each CommandRequest; Log*/Print requests have no meaningful response.
type IODriver interface {
	Request(ctx context.Context, req entities.CommandRequest) (entities.CommandResponse, error)
}

// TemplateEngine renders a template tree in two passes: path expansion
// (directory and file names may themselves contain expressions) and content
// expansion (file contents are rendered against the current AnswerMap).
type TemplateEngine interface {
	// RenderPath expands any expressions embedded in a relative path.
	RenderPath(ctx context.Context, path string, answers entities.AnswerMap) (string, error)

	// RenderContent expands a file's contents. It does not detect binary
	// files; RenderTree skips them before calling it.
	RenderContent(ctx context.Context, content []byte, answers entities.AnswerMap) ([]byte, error)

	// RenderTree walks templateRoot in depth-first pre-order per §4.6,
	// writing the rendered tree under destination: path segments are
	// expanded and empty segments drop that path component, binary files
	// are copied verbatim, and an existing target is resolved per
	// overwrite ("preserve"|"prompt"|"overwrite"), issuing a
	// PromptForBool through driver when overwrite == "prompt".
	RenderTree(ctx context.Context, templateRoot, destination string, answers entities.AnswerMap, overwrite string, driver IODriver) error
}

// CatalogEngine loads catalog files and walks their tree, auto-selecting a
// single leaf or prompting the IODriver for a choice among siblings.
type CatalogEngine interface {
	// Load resolves and parses a catalog file into a Catalog tree.
	Load(ctx context.Context, ref entities.Reference, offline bool) (entities.Catalog, error)

	// Select walks entries, recursing into groups (auto-selecting a lone
	// leaf, prompting via driver otherwise) until a single leaf is chosen.
	// visited tracks group identities already entered, to detect cycles.
	Select(ctx context.Context, entries []entities.CatalogEntry, driver IODriver, visited map[string]bool) (entities.CatalogEntry, error)
}

// ArchetypeEngine loads an archetype's manifest and executes its driver
// script against a RuntimeContext, orchestrating the render of one
// archetype invocation end to end.
type ArchetypeEngine interface {
	// Load resolves ref, validates the manifest, and returns the Archetype.
	Load(ctx context.Context, ref entities.Reference, offline bool) (entities.Archetype, error)

	// Render executes arch's driver script within rc.
	Render(ctx context.Context, arch entities.Archetype, rc *RuntimeContext) error
}

// FileWatcher defines the interface for monitoring file system changes.
//
// Implementations MUST use efficient file system APIs (e.g., fsnotify on
// Linux/macOS) and batch changes to avoid redundant re-renders during
// `render --watch`.
type FileWatcher interface {
	// Watch starts monitoring a directory for changes.
	Watch(ctx context.Context, rootPath string) (<-chan FileChangeEvent, error)

	// Stop halts file watching and closes all channels.
	Stop() error
}

// FileChangeEvent describes a change detected by the file watcher.
type FileChangeEvent struct {
	// Path relative to the watched root
	Path string
	// Op is one of: create, write, remove, rename, chmod
	Op string
}

// Logger defines the interface for structured logging.
//
// Implementations MUST emit JSON logs to stderr so stdout stays reserved
// for rendered/prompted output.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, err error, keysAndValues ...any)
	WithContext(ctx context.Context) Logger
	WithFields(keysAndValues ...any) Logger
}

// ProgressReporter defines the interface for communicating progress to the
// user during a render.
//
// Implementations MAY use terminal formatting (via lipgloss) for CLI output.
type ProgressReporter interface {
	ReportProgress(step string, current int, total int, message string)
	ReportError(err error)
	ReportSuccess(message string)
	ReportInfo(message string)
}

// OutputEncoder defines the interface for serializing data to various
// formats for `config merged`, `cache list`, and similar inspection
// subcommands.
//
// Implementations MUST support JSON and TOON (token-optimized) formats.
type OutputEncoder interface {
	EncodeJSON(value any) ([]byte, error)
	EncodeTOON(value any) ([]byte, error)
	DecodeJSON(data []byte, value any) error
	DecodeTOON(data []byte, value any) error
}

// ConfigLoader defines the interface for loading and parsing configuration.
//
// Implementations MUST support a global config.toml (resolved via
// SystemLayout) merged under a project-local .archetect.toml when present.
type ConfigLoader interface {
	// LoadConfig reads the global config and, if projectRoot contains a
	// local config file, merges it over the global defaults.
	LoadConfig(ctx context.Context, projectRoot string) (*entities.Configuration, error)

	// SaveConfig persists configuration to the global config.toml.
	SaveConfig(ctx context.Context, config *entities.Configuration) error
}

// AnswerFileDecoder decodes an answer file (YAML, JSON, or script-literal)
// into an AnswerMap.
type AnswerFileDecoder interface {
	DecodeFile(ctx context.Context, path string) (entities.AnswerMap, error)
}
