package draft

import (
	"fmt"

	"github.com/dyluth/dexteam/pkg/dex"
)

// Drafter takes one random entity from each selected bucket.
type Drafter struct {
	catalog *Catalog
	rng     Rand
}

// NewDrafter creates a drafter reading buckets from catalog.
func NewDrafter(catalog *Catalog, rng Rand) *Drafter {
	return &Drafter{catalog: catalog, rng: rng}
}

// Draft builds a team from exactly dex.TeamSize pairs. Pairs are consumed in
// random order and each is used once. No uniqueness or relation checks
// happen here.
func (d *Drafter) Draft(pairs []dex.TypePair) (dex.Team, error) {
	if len(pairs) != dex.TeamSize {
		return dex.Team{}, fmt.Errorf("draft needs %d pairs, got %d", dex.TeamSize, len(pairs))
	}

	remaining := make([]dex.TypePair, len(pairs))
	copy(remaining, pairs)

	members := make([]dex.Entity, 0, dex.TeamSize)
	for len(remaining) > 0 {
		i := d.rng.IntN(len(remaining))
		pair := remaining[i]

		bucket := d.catalog.Bucket(pair)
		if len(bucket) == 0 {
			return dex.Team{}, fmt.Errorf("no entities for type pair %s", pair)
		}
		members = append(members, bucket[d.rng.IntN(len(bucket))])

		remaining = append(remaining[:i], remaining[i+1:]...)
	}

	return dex.Team{Members: members}, nil
}
