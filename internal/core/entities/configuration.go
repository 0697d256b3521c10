package entities

// Configuration is the decoded shape of config.toml (global, at
// SystemLayout.ConfigsDir()/config.toml) optionally overlaid by a
// project-local .archetect.toml. Fields mirror the collaborators named in
// the external-interfaces surface: default answers, switches, offline mode,
// the default overwrite policy, and the local catalog path.
type Configuration struct {
	// Answers are default answers applied with the lowest precedence,
	// below answer files and --answer flags.
	Answers map[string]any `toml:"answers"`

	// Switches are enabled by default for every render.
	Switches []string `toml:"switches"`

	// Offline forces the Source Resolver to use cached copies only.
	Offline bool `toml:"offline"`

	// Overwrite is the global default overwrite policy: "preserve",
	// "prompt", or "overwrite". Empty is treated as "prompt".
	Overwrite string `toml:"overwrite"`

	// Catalog is the reference string for the user's default catalog.
	Catalog string `toml:"catalog"`
}

// DefaultConfiguration returns the zero-value configuration used when no
// config.toml exists yet.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		Answers:   map[string]any{},
		Switches:  []string{},
		Overwrite: "prompt",
	}
}

// EffectiveOverwrite returns c.Overwrite, defaulting to "prompt" when unset.
func (c *Configuration) EffectiveOverwrite() string {
	if c == nil || c.Overwrite == "" {
		return "prompt"
	}
	return c.Overwrite
}

// Merge overlays other's non-zero fields on top of c and returns the
// receiver, used to layer a project-local .archetect.toml over the global
// config.toml.
func (c *Configuration) Merge(other *Configuration) *Configuration {
	if other == nil {
		return c
	}
	if len(other.Answers) > 0 {
		if c.Answers == nil {
			c.Answers = map[string]any{}
		}
		for k, v := range other.Answers {
			c.Answers[k] = v
		}
	}
	if len(other.Switches) > 0 {
		c.Switches = append(append([]string{}, c.Switches...), other.Switches...)
	}
	if other.Offline {
		c.Offline = true
	}
	if other.Overwrite != "" {
		c.Overwrite = other.Overwrite
	}
	if other.Catalog != "" {
		c.Catalog = other.Catalog
	}
	return c
}
