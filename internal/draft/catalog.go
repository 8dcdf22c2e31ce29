package draft

import (
	"sort"

	"github.com/dyluth/dexteam/pkg/dex"
)

// Catalog is an immutable index from type pair to the entities sharing it.
// It is built once by Partition and only read afterwards; selection attempts
// keep their own working sets instead of copying it.
type Catalog struct {
	keys    []dex.TypePair
	buckets map[dex.TypePair][]dex.Entity
	size    int
}

// Partition groups entities by canonical type pair, keeping catalog order
// inside each bucket. Entities without a valid two-label pair are left out.
func Partition(entities []dex.Entity) *Catalog {
	c := &Catalog{buckets: make(map[dex.TypePair][]dex.Entity)}

	for _, e := range entities {
		if !e.Types.IsValid() {
			continue
		}

		if _, exists := c.buckets[e.Types]; !exists {
			c.keys = append(c.keys, e.Types)
		}
		c.buckets[e.Types] = append(c.buckets[e.Types], e)
		c.size++
	}

	return c
}

// Keys returns the type pairs in first-seen order. The slice is a copy.
func (c *Catalog) Keys() []dex.TypePair {
	keys := make([]dex.TypePair, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// Bucket returns the entities for a pair, or nil if the pair is unknown.
// Callers must not modify the returned slice.
func (c *Catalog) Bucket(pair dex.TypePair) []dex.Entity {
	return c.buckets[pair]
}

// Len returns the number of distinct type pairs.
func (c *Catalog) Len() int {
	return len(c.keys)
}

// Size returns the number of indexed entities.
func (c *Catalog) Size() int {
	return c.size
}

// Labels returns every type label used by at least one pair, sorted.
func (c *Catalog) Labels() []string {
	seen := make(map[string]struct{})
	for _, k := range c.keys {
		seen[k.First] = struct{}{}
		seen[k.Second] = struct{}{}
	}

	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// WithType returns the pairs containing label, in first-seen order.
func (c *Catalog) WithType(label string) []dex.TypePair {
	var pairs []dex.TypePair
	for _, k := range c.keys {
		if k.Has(label) {
			pairs = append(pairs, k)
		}
	}
	return pairs
}
