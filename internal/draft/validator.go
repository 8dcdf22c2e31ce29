package draft

import (
	"context"
	"fmt"

	"github.com/dyluth/dexteam/pkg/dex"
	"go.uber.org/zap"
)

// RelationOracle reports the catalog numbers evolutionarily related to an
// entity. The entity's own number is not part of the set. An entity with no
// documented evolutions yields an empty set.
type RelationOracle interface {
	RelatedIDs(ctx context.Context, e dex.Entity) (map[int]struct{}, error)
}

// RelationTable is an in-memory RelationOracle keyed by catalog number.
type RelationTable map[int][]int

// RelatedIDs implements RelationOracle.
func (t RelationTable) RelatedIDs(_ context.Context, e dex.Entity) (map[int]struct{}, error) {
	related := make(map[int]struct{}, len(t[e.Number]))
	for _, n := range t[e.Number] {
		if n != e.Number {
			related[n] = struct{}{}
		}
	}
	return related, nil
}

// Verdict is the outcome of validating one drafted team.
type Verdict struct {
	Valid    bool
	Reason   string
	Conflict [2]int // Catalog numbers responsible for a rejection
}

// Validator accepts a team only if its numbers are distinct and no member
// is related to another.
type Validator struct {
	oracle RelationOracle
	logger *zap.Logger
}

// NewValidator creates a validator asking oracle for relation data.
func NewValidator(oracle RelationOracle, logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{oracle: oracle, logger: logger}
}

// Validate checks the team. The oracle is consulted once per member, and
// only when the numbers are already distinct. A non-nil error means the
// oracle failed and the verdict is meaningless.
func (v *Validator) Validate(ctx context.Context, team dex.Team) (Verdict, error) {
	if verdict := distinctNumbers(team); !verdict.Valid {
		return verdict, nil
	}

	related := make([]map[int]struct{}, len(team.Members))
	for i, m := range team.Members {
		ids, err := v.oracle.RelatedIDs(ctx, m)
		if err != nil {
			return Verdict{}, fmt.Errorf("failed to look up relations of %s (#%d): %w", m.Name, m.Number, err)
		}
		related[i] = ids
	}

	for i, m := range team.Members {
		for j, other := range team.Members {
			if i == j {
				continue
			}
			if _, linked := related[i][other.Number]; linked {
				v.logger.Debug("Draft rejected: related members",
					zap.Int("member", m.Number),
					zap.Int("related", other.Number))
				return Verdict{
					Reason:   fmt.Sprintf("%s and %s are related by evolution", m.Name, other.Name),
					Conflict: [2]int{m.Number, other.Number},
				}, nil
			}
		}
	}

	return Verdict{Valid: true}, nil
}

// distinctNumbers checks that no catalog number appears twice.
func distinctNumbers(team dex.Team) Verdict {
	seen := make(map[int]string, len(team.Members))
	for _, m := range team.Members {
		if other, exists := seen[m.Number]; exists {
			return Verdict{
				Reason:   fmt.Sprintf("%s and %s share number #%d", other, m.DisplayName(), m.Number),
				Conflict: [2]int{m.Number, m.Number},
			}
		}
		seen[m.Number] = m.DisplayName()
	}
	return Verdict{Valid: true}
}
