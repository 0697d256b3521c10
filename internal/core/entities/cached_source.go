package entities

import "time"

// CachedSource records a materialized copy of a remote Reference: the local
// working directory the Source Resolver unpacked or cloned it into, the
// Reference it came from, and when the fetch last completed. Local
// references never produce a CachedSource — they are used in place.
type CachedSource struct {
	Origin    Reference
	LocalPath string
	FetchedAt time.Time
}

// Stale reports whether this CachedSource was fetched before cutoff, used
// by the resolver's offline/refresh-policy decisions.
func (c CachedSource) Stale(cutoff time.Time) bool {
	return c.FetchedAt.Before(cutoff)
}
