package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/archetect/archetect/internal/adapters/layout"
	"github.com/archetect/archetect/internal/adapters/resolver"
	"github.com/archetect/archetect/internal/core/entities"
)

func writeCatalog(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, Filename), []byte(content), 0o644))
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	l, err := layout.NewTemp()
	require.NoError(t, err)
	return New(resolver.New(l))
}

func TestLoad_twoLevelTreeWithLeaves(t *testing.T) {
	root := t.TempDir()
	writeCatalog(t, root, `
description: top
entries:
  - description: web
    entries:
      - description: spa
        source: ./spa
  - description: service
    entries:
      - description: grpc
        source: ./grpc
`)

	e := newTestEngine(t)
	cat, err := e.Load(context.Background(), entities.ClassifyReference(root), true)
	require.NoError(t, err)
	require.Len(t, cat.Entries, 2)

	leaves := cat.Leaves()
	require.Len(t, leaves, 2)
}

func TestLoad_cycleDetected(t *testing.T) {
	root := t.TempDir()
	writeCatalog(t, root, `
description: self-referencing
entries:
  - description: loop
    catalog: `+root+`
`)

	e := newTestEngine(t)
	_, err := e.Load(context.Background(), entities.ClassifyReference(root), true)
	require.Error(t, err)

	var terr *entities.Error
	require.ErrorAs(t, err, &terr)
	require.Equal(t, entities.KindCatalogCycle, terr.Kind)
}

func TestLoad_entryMissingSourceAndEntries(t *testing.T) {
	root := t.TempDir()
	writeCatalog(t, root, `
description: broken
entries:
  - description: nothing-here
`)

	e := newTestEngine(t)
	_, err := e.Load(context.Background(), entities.ClassifyReference(root), true)
	require.Error(t, err)
}
