package usecases

import (
	"context"
	"fmt"

	"github.com/archetect/archetect/internal/core/entities"
)

// SelectCatalogEntryRequest defines the input for the SelectCatalogEntry
// use case.
type SelectCatalogEntryRequest struct {
	Catalog entities.Catalog

	// Override, when non-empty, names a leaf entry's description to select
	// directly, bypassing group navigation and prompting entirely.
	Override string
}

// SelectCatalogEntryResult defines the output of the SelectCatalogEntry use case.
type SelectCatalogEntryResult struct {
	Entry   entities.CatalogEntry
	Matched bool
	Reason  string
}

// SelectCatalogEntry walks a Catalog tree to a single leaf entry: an
// explicit override short-circuits the walk, a lone leaf in a group is
// auto-selected, and anything else is resolved by prompting through the
// IODriver, detecting cycles by group identity along the way.
type SelectCatalogEntry struct {
	catalogEngine CatalogEngine
	io            IODriver
}

// NewSelectCatalogEntry creates a new SelectCatalogEntry use case.
func NewSelectCatalogEntry(engine CatalogEngine, io IODriver) *SelectCatalogEntry {
	return &SelectCatalogEntry{catalogEngine: engine, io: io}
}

// Execute selects a catalog entry, honoring an explicit override name
// before falling back to the engine's group-walking selection procedure.
func (uc *SelectCatalogEntry) Execute(ctx context.Context, req *SelectCatalogEntryRequest) (*SelectCatalogEntryResult, error) {
	if req.Override != "" {
		for _, leaf := range req.Catalog.Leaves() {
			if leaf.Description == req.Override {
				return &SelectCatalogEntryResult{
					Entry:   leaf,
					Matched: false,
					Reason:  "explicitly specified by user",
				}, nil
			}
		}
		return nil, fmt.Errorf("catalog entry %q not found", req.Override)
	}

	if leaves := req.Catalog.Leaves(); len(leaves) == 1 {
		return &SelectCatalogEntryResult{
			Entry:   leaves[0],
			Matched: true,
			Reason:  "only one entry in catalog, auto-selected",
		}, nil
	}

	visited := make(map[string]bool)
	entry, err := uc.catalogEngine.Select(ctx, req.Catalog.Entries, uc.io, visited)
	if err != nil {
		return nil, fmt.Errorf("failed to select catalog entry: %w", err)
	}

	return &SelectCatalogEntryResult{
		Entry:   entry,
		Matched: true,
		Reason:  "selected via prompt",
	}, nil
}
