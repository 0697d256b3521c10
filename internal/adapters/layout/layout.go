// Package layout implements the System Layout: resolution of the
// directories archetect uses for configuration, caching, and the user
// catalog, under three modes (Native, Rooted, Temp).
package layout

import (
	"os"
	"path/filepath"

	"github.com/archetect/archetect/internal/core/usecases"
)

const appName = "archetect"

// Mode selects how a Layout resolves its base directory.
type Mode int

const (
	// Native resolves XDG-compliant directories under the user's home.
	Native Mode = iota
	// Rooted uses an explicit base directory (e.g. --root, or tests),
	// laying out configs/cache beneath it instead of the user's home.
	Rooted
	// Temp uses a freshly created temporary directory, torn down by the
	// caller once the one-shot render that required it completes.
	Temp
)

var _ usecases.SystemLayout = (*Layout)(nil)

// Layout implements usecases.SystemLayout.
type Layout struct {
	mode       Mode
	configHome string
	cacheHome  string
}

// NewNative creates a Layout resolving XDG-compliant directories, honoring
// ARCHETECT_CONFIG_HOME before XDG_CONFIG_HOME/archetect before
// ~/.config/archetect, and the equivalent chain for the cache directory.
func NewNative() *Layout {
	home, _ := os.UserHomeDir()

	return &Layout{
		mode: Native,
		configHome: resolveDir(
			os.Getenv("ARCHETECT_CONFIG_HOME"),
			envWithSuffix("XDG_CONFIG_HOME", appName),
			filepath.Join(home, ".config", appName),
		),
		cacheHome: resolveDir(
			os.Getenv("ARCHETECT_CACHE_HOME"),
			envWithSuffix("XDG_CACHE_HOME", appName),
			filepath.Join(home, ".cache", appName),
		),
	}
}

// NewRooted creates a Layout confined to root, used for --root invocations
// and for tests that must not touch the real user home. Configs live under
// root/etc and the cache under root/var. Construction performs the one-shot
// answers.yaml -> answers.yml rename if only the legacy file exists.
func NewRooted(root string) *Layout {
	l := &Layout{
		mode:       Rooted,
		configHome: filepath.Join(root, "etc"),
		cacheHome:  filepath.Join(root, "var"),
	}
	l.AnswersConfigPath()
	return l
}

// NewTemp creates a Layout rooted at a freshly made temporary directory.
func NewTemp() (*Layout, error) {
	dir, err := os.MkdirTemp("", appName+"-*")
	if err != nil {
		return nil, err
	}
	return NewRooted(dir), nil
}

func (l *Layout) Mode() Mode { return l.mode }

func (l *Layout) ConfigsDir() string { return l.configHome }

func (l *Layout) CacheDir() string { return l.cacheHome }

func (l *Layout) CatalogCacheDir() string { return filepath.Join(l.cacheHome, "catalogs") }

func (l *Layout) GitCacheDir() string { return filepath.Join(l.cacheHome, "git") }

func (l *Layout) HTTPCacheDir() string { return filepath.Join(l.cacheHome, "http") }

// AnswersConfigPath returns the path to the global answers file. If only
// the legacy "answers.yaml" name exists, it is renamed to "answers.yml"
// once, in place, matching the one-shot migration archetect performs on
// first access of an old-style config directory.
func (l *Layout) AnswersConfigPath() string {
	current := filepath.Join(l.configHome, "answers.yml")
	legacy := filepath.Join(l.configHome, "answers.yaml")

	if _, err := os.Stat(current); err == nil {
		return current
	}
	if _, err := os.Stat(legacy); err == nil {
		if err := os.Rename(legacy, current); err == nil {
			return current
		}
	}
	return current
}

// UserCatalogPath returns the path to the user's personal catalog.yml.
func (l *Layout) UserCatalogPath() string {
	return filepath.Join(l.configHome, "catalog.yml")
}

// EnsureDirs creates every directory this Layout resolves to, lazily
// called before the first write under a given root.
func (l *Layout) EnsureDirs() error {
	dirs := []string{
		l.ConfigsDir(),
		l.CacheDir(),
		l.CatalogCacheDir(),
		l.GitCacheDir(),
		l.HTTPCacheDir(),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// resolveDir returns the first non-empty path from the candidates.
func resolveDir(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// envWithSuffix returns the env var value with appName appended, or empty
// string if not set.
func envWithSuffix(envVar, suffix string) string {
	val := os.Getenv(envVar)
	if val == "" {
		return ""
	}
	return filepath.Join(val, suffix)
}
