// Package resolver implements the Source Resolver (§4.2): it classifies a
// reference string and materializes it into an on-disk working directory,
// serializing concurrent fetches of the same cache key with a directory
// lock file, per §5's "Cache writes are serialized per cache key" rule.
//
// Grounded on internal/adapters/filesystem/watcher.go for the package's
// fsnotify-adjacent error-wrapping idiom, and
// original_source/archetect-lib/src/system/layout.rs for the cache
// directory shape it resolves against.
package resolver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/archetect/archetect/internal/core/entities"
	"github.com/archetect/archetect/internal/core/usecases"
)

var _ usecases.SourceResolver = (*Resolver)(nil)

// VendorAlias maps a git host (e.g. "github.com/acme") to a local
// directory root, enabling --local mode to rewrite known vendor URLs to a
// sibling directory for in-place archetype development.
type VendorAlias struct {
	HostPrefix string
	LocalRoot  string
}

// Resolver implements usecases.SourceResolver over the three Reference
// kinds: local paths pass through unchanged, git URLs are cloned/fetched
// into GitCacheDir, and HTTP URLs are downloaded and extracted into
// HTTPCacheDir.
type Resolver struct {
	layout  usecases.SystemLayout
	local   bool
	vendors []VendorAlias
	clock   func() time.Time

	git  *gitFetcher
	http *httpFetcher
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLocalMode enables --local rewriting of known vendor git URLs to a
// sibling local directory, per §4.2.
func WithLocalMode(vendors ...VendorAlias) Option {
	return func(r *Resolver) {
		r.local = true
		r.vendors = vendors
	}
}

// New creates a Resolver rooted at the cache directories layout resolves.
func New(layout usecases.SystemLayout, opts ...Option) *Resolver {
	r := &Resolver{
		layout: layout,
		clock:  time.Now,
		git:    &gitFetcher{},
		http:   &httpFetcher{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve classifies ref and returns its local working directory,
// fetching/updating the cache as needed.
func (r *Resolver) Resolve(ctx context.Context, ref entities.Reference, offline bool) (entities.CachedSource, error) {
	switch ref.Kind {
	case entities.ReferenceLocal:
		return r.resolveLocal(ref)
	case entities.ReferenceGit:
		return r.resolveGit(ctx, ref, offline)
	case entities.ReferenceHTTP:
		return r.resolveHTTP(ctx, ref, offline)
	default:
		return entities.CachedSource{}, entities.NewError(entities.KindReference, "unclassifiable reference: "+ref.String())
	}
}

// resolveLocal returns the input path unchanged, rewriting known vendor
// URLs to a sibling local directory when --local mode and the path itself
// was originally a git reference resolved through rewriteVendor (callers
// that already hold a Reference of kind Local never trigger the rewrite;
// it only applies from resolveGit).
func (r *Resolver) resolveLocal(ref entities.Reference) (entities.CachedSource, error) {
	info, err := os.Stat(ref.Path)
	if err != nil {
		return entities.CachedSource{}, entities.Wrap(entities.KindReference, "local path does not exist: "+ref.Path, err)
	}
	if !info.IsDir() {
		return entities.CachedSource{}, entities.NewError(entities.KindReference, "local path is not a directory: "+ref.Path)
	}
	return entities.CachedSource{Origin: ref, LocalPath: ref.Path, FetchedAt: r.clock()}, nil
}

// resolveGit clones or fetches a git reference into
// GitCacheDir()/host/owner/repo-at-ref, honoring --local vendor rewriting
// and --offline semantics.
func (r *Resolver) resolveGit(ctx context.Context, ref entities.Reference, offline bool) (entities.CachedSource, error) {
	if r.local {
		if localDir, ok := r.rewriteVendor(ref); ok {
			return r.resolveLocal(entities.Reference{Kind: entities.ReferenceLocal, Path: localDir})
		}
	}

	host, owner, repo, err := splitGitURL(ref.URL)
	if err != nil {
		return entities.CachedSource{}, entities.Wrap(entities.KindReference, "cannot classify git URL", err)
	}
	gitRef := ref.GitRef
	if gitRef == "" {
		gitRef = "HEAD"
	}
	dirName := fmt.Sprintf("%s-%s", repo, sanitizeRef(gitRef))
	cachePath := filepath.Join(r.layout.GitCacheDir(), host, owner, dirName)

	unlock, err := lockDir(cachePath)
	if err != nil {
		return entities.CachedSource{}, entities.Wrap(entities.KindIO, "failed to lock cache directory", err)
	}
	defer unlock()

	exists := dirExists(cachePath)

	if !exists {
		if offline {
			return entities.CachedSource{}, entities.NewError(entities.KindOffline,
				"no cached copy of "+ref.String()+" and --offline is set")
		}
		if err := r.git.clone(ctx, ref.URL, ref.GitRef, cachePath); err != nil {
			return entities.CachedSource{}, entities.Wrap(entities.KindFetch, "git clone failed for "+ref.String(), err)
		}
	} else if !offline {
		if err := r.git.fetch(ctx, ref.GitRef, cachePath); err != nil {
			// A warm cache downgrades a fetch failure to a non-fatal
			// condition: proceed with what's already on disk (§4.2).
			return entities.CachedSource{Origin: ref, LocalPath: cachePath, FetchedAt: r.clock()}, nil
		}
	}

	return entities.CachedSource{Origin: ref, LocalPath: cachePath, FetchedAt: r.clock()}, nil
}

// resolveHTTP downloads and, if the payload is an archive, extracts it
// into HTTPCacheDir()/sha256(url).
func (r *Resolver) resolveHTTP(ctx context.Context, ref entities.Reference, offline bool) (entities.CachedSource, error) {
	sum := sha256.Sum256([]byte(ref.URL))
	cachePath := filepath.Join(r.layout.HTTPCacheDir(), hex.EncodeToString(sum[:]))

	unlock, err := lockDir(cachePath)
	if err != nil {
		return entities.CachedSource{}, entities.Wrap(entities.KindIO, "failed to lock cache directory", err)
	}
	defer unlock()

	exists := dirExists(cachePath)

	if !exists {
		if offline {
			return entities.CachedSource{}, entities.NewError(entities.KindOffline,
				"no cached copy of "+ref.String()+" and --offline is set")
		}
		if err := r.http.fetchAndExtract(ctx, ref.URL, cachePath); err != nil {
			return entities.CachedSource{}, entities.Wrap(entities.KindFetch, "download failed for "+ref.String(), err)
		}
	}

	return entities.CachedSource{Origin: ref, LocalPath: cachePath, FetchedAt: r.clock()}, nil
}

// rewriteVendor rewrites a git Reference to a sibling local directory when
// its host matches a configured VendorAlias, enabling in-place development
// of archetypes under --local.
func (r *Resolver) rewriteVendor(ref entities.Reference) (string, bool) {
	for _, v := range r.vendors {
		if strings.Contains(ref.URL, v.HostPrefix) {
			_, owner, repo, err := splitGitURL(ref.URL)
			if err != nil {
				continue
			}
			return filepath.Join(v.LocalRoot, owner, repo), true
		}
	}
	return "", false
}

var scpPattern = regexp.MustCompile(`^[\w.-]+@([\w.-]+):(.+?)(?:\.git)?$`)

// splitGitURL extracts {host, owner, repo} from an https:// or scp-style
// git URL.
func splitGitURL(raw string) (host, owner, repo string, err error) {
	if m := scpPattern.FindStringSubmatch(raw); m != nil {
		host = m[1]
		parts := strings.Split(strings.Trim(m[2], "/"), "/")
		o, r := pathOwnerRepo(parts)
		return host, o, r, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", "", err
	}
	host = u.Host
	trimmed := strings.TrimSuffix(strings.Trim(u.Path, "/"), ".git")
	parts := strings.Split(trimmed, "/")
	o, r := pathOwnerRepo(parts)
	return host, o, r, nil
}

func pathOwnerRepo(parts []string) (owner, repo string) {
	if len(parts) == 0 {
		return "", ""
	}
	repo = strings.TrimSuffix(parts[len(parts)-1], ".git")
	if len(parts) >= 2 {
		owner = strings.Join(parts[:len(parts)-1], "/")
	}
	return owner, repo
}

func sanitizeRef(ref string) string {
	return strings.NewReplacer("/", "-", "#", "-", ":", "-").Replace(ref)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// lockDir serializes concurrent resolvers of the same cache key with a
// simple lock file under the parent directory: create(O_EXCL), retry with
// backoff until it succeeds or the context-free timeout elapses, then
// remove it on release. This is a portable stand-in for flock(2) that
// needs no additional platform-specific dependency.
func lockDir(cachePath string) (release func(), err error) {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return nil, err
	}
	lockPath := cachePath + ".lock"

	deadline := time.Now().Add(5 * time.Minute)
	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			f.Close()
			return func() { os.Remove(lockPath) }, nil
		}
		if !os.IsExist(err) {
			return nil, err
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("timed out waiting for cache lock %s", lockPath)
		}
		time.Sleep(50 * time.Millisecond)
	}
}
