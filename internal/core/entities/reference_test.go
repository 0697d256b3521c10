package entities

import "testing"

func TestClassifyReference_gitSuffix(t *testing.T) {
	ref := ClassifyReference("https://github.com/acme/widget.git")
	if ref.Kind != ReferenceGit {
		t.Fatalf("expected ReferenceGit, got %s", ref.Kind)
	}
	if ref.URL != "https://github.com/acme/widget.git" {
		t.Fatalf("unexpected URL: %s", ref.URL)
	}
	if ref.GitRef != "" {
		t.Fatalf("expected no GitRef, got %q", ref.GitRef)
	}
}

func TestClassifyReference_gitWithPinnedRef(t *testing.T) {
	ref := ClassifyReference("https://github.com/acme/widget.git#v1.2.3")
	if ref.Kind != ReferenceGit {
		t.Fatalf("expected ReferenceGit, got %s", ref.Kind)
	}
	if ref.GitRef != "v1.2.3" {
		t.Fatalf("expected pinned ref v1.2.3, got %q", ref.GitRef)
	}
	if ref.String() != "https://github.com/acme/widget.git#v1.2.3" {
		t.Fatalf("unexpected String(): %s", ref.String())
	}
}

func TestClassifyReference_scpShaped(t *testing.T) {
	ref := ClassifyReference("git@github.com:acme/widget.git")
	if ref.Kind != ReferenceGit {
		t.Fatalf("expected ReferenceGit, got %s", ref.Kind)
	}
}

func TestClassifyReference_httpURL(t *testing.T) {
	ref := ClassifyReference("https://example.com/archetypes/widget.zip")
	if ref.Kind != ReferenceHTTP {
		t.Fatalf("expected ReferenceHTTP, got %s", ref.Kind)
	}
}

func TestClassifyReference_localPath(t *testing.T) {
	ref := ClassifyReference("./my-archetype")
	if ref.Kind != ReferenceLocal {
		t.Fatalf("expected ReferenceLocal, got %s", ref.Kind)
	}
	if ref.Path != "./my-archetype" {
		t.Fatalf("unexpected Path: %s", ref.Path)
	}
}

func TestReference_cacheKeyDistinguishesRefSpelling(t *testing.T) {
	branch := ClassifyReference("https://github.com/acme/widget.git#main")
	sha := ClassifyReference("https://github.com/acme/widget.git#a1b2c3d")

	if branch.CacheKey() == sha.CacheKey() {
		t.Fatalf("distinct ref spellings must occupy distinct cache keys, got %q for both", branch.CacheKey())
	}
}

func TestReference_localHasNoCacheKey(t *testing.T) {
	ref := ClassifyReference("./my-archetype")
	if ref.CacheKey() != "" {
		t.Fatalf("expected empty cache key for a local reference, got %q", ref.CacheKey())
	}
}
