package entities

// Requirements declares the preconditions a manifest asserts before an
// archetype will run: a minimum archetect version and a list of external
// tool names that must be resolvable on PATH (e.g. "git", "npm").
type Requirements struct {
	MinVersion string
	Tools      []string
}

// Archetype is a resolved, on-disk archetype: its manifest metadata, the
// driver script entry point relative to its root, and the template root
// directory the Template Renderer will walk.
type Archetype struct {
	Root         string // absolute local path, post-resolution
	Name         string
	Description  string
	Requirements Requirements

	// DriverEntry is the path, relative to Root, of the driver script the
	// Scripting Host loads and executes (conventionally "archetype.js").
	DriverEntry string

	// TemplateRoot is the path, relative to Root, containing the template
	// tree the driver script renders (conventionally "templates" or ".").
	TemplateRoot string

	// Overwrite is the manifest-level default overwrite policy applied to
	// rendered files that already exist on disk: "preserve", "prompt", or
	// "overwrite". Empty means the global default ("prompt") applies.
	Overwrite string
}

// Manifest holds the raw decoded contents of an archetype's manifest file,
// prior to being turned into an Archetype by the engine (which also
// resolves Root to an absolute path).
type Manifest struct {
	Name         string       `yaml:"name"`
	Description  string       `yaml:"description"`
	Requirements Requirements `yaml:"requirements"`
	DriverEntry  string       `yaml:"entry"`
	TemplateRoot string       `yaml:"templates"`
	Overwrite    string       `yaml:"overwrite"`
}

// Validate checks the manifest satisfies the minimum fields an Archetype
// requires: a name and a driver entry point.
func (m Manifest) Validate() error {
	if m.Name == "" {
		return NewError(KindManifest, "manifest is missing a name")
	}
	if m.DriverEntry == "" {
		return NewError(KindManifest, "manifest is missing an entry point")
	}
	if m.Overwrite != "" {
		switch m.Overwrite {
		case "preserve", "prompt", "overwrite":
		default:
			return NewError(KindManifest, "manifest overwrite policy must be one of preserve, prompt, overwrite")
		}
	}
	return nil
}
