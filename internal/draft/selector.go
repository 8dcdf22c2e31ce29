package draft

import (
	"github.com/dyluth/dexteam/pkg/dex"
	"go.uber.org/zap"
)

// DefaultMaxSelectionAttempts bounds the random restarts of a single selection.
const DefaultMaxSelectionAttempts = 1000

// Rand is the randomness the search needs. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Selection is the outcome of a successful pair selection.
type Selection struct {
	Pairs    []dex.TypePair
	Attempts int
}

// Selector picks dex.TeamSize type pairs that share no label.
type Selector struct {
	catalog     *Catalog
	rng         Rand
	maxAttempts int
	logger      *zap.Logger
}

// NewSelector creates a selector over catalog. A non-positive maxAttempts
// uses DefaultMaxSelectionAttempts; a nil logger discards output.
func NewSelector(catalog *Catalog, rng Rand, maxAttempts int, logger *zap.Logger) *Selector {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxSelectionAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{
		catalog:     catalog,
		rng:         rng,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Select runs randomized attempts until one collects dex.TeamSize mutually
// exclusive pairs. Each attempt starts from every catalog key, repeatedly
// picks one uniformly at random and discards every key sharing a label with
// it. An attempt that runs out of keys early is thrown away.
//
// Returns an error wrapping ErrUnsatisfiable when the attempt budget is spent
// or when the catalog is too small to ever succeed.
func (s *Selector) Select() (Selection, error) {
	if err := s.checkFeasible(); err != nil {
		return Selection{}, err
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		pairs, ok := s.attempt()
		if ok {
			s.logger.Debug("Selected exclusive type pairs",
				zap.Int("attempt", attempt),
				zap.Stringers("pairs", pairs))
			return Selection{Pairs: pairs, Attempts: attempt}, nil
		}
	}

	s.logger.Warn("Pair selection exhausted",
		zap.Int("attempts", s.maxAttempts),
		zap.Int("keys", s.catalog.Len()))
	return Selection{}, unsatisfiable(s.maxAttempts, "no %d type-exclusive pairs found among %d pairs", dex.TeamSize, s.catalog.Len())
}

// checkFeasible rejects catalogs that cannot possibly hold a solution.
func (s *Selector) checkFeasible() error {
	if s.catalog.Len() < dex.TeamSize {
		return unsatisfiable(0, "catalog has %d type pairs, need at least %d", s.catalog.Len(), dex.TeamSize)
	}
	if labels := len(s.catalog.Labels()); labels < dex.TeamSize*2 {
		return unsatisfiable(0, "catalog spans %d type labels, need at least %d", labels, dex.TeamSize*2)
	}
	return nil
}

// attempt performs one randomized pass. It returns the chosen pairs and
// whether the pass reached dex.TeamSize.
func (s *Selector) attempt() ([]dex.TypePair, bool) {
	available := s.catalog.Keys()
	chosen := make([]dex.TypePair, 0, dex.TeamSize)

	for len(available) > 0 && len(chosen) < dex.TeamSize {
		pick := available[s.rng.IntN(len(available))]
		chosen = append(chosen, pick)
		available = withoutSharedTypes(available, pick)
	}

	return chosen, len(chosen) == dex.TeamSize
}

// withoutSharedTypes filters keys in place, dropping every key that shares a
// label with pick, pick included.
func withoutSharedTypes(keys []dex.TypePair, pick dex.TypePair) []dex.TypePair {
	kept := keys[:0]
	for _, k := range keys {
		if !k.SharesType(pick) {
			kept = append(kept, k)
		}
	}
	return kept
}
