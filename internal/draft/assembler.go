package draft

import (
	"context"
	"errors"
	"fmt"

	"github.com/dyluth/dexteam/pkg/dex"
	"go.uber.org/zap"
)

const (
	// DefaultMaxDraftAttempts bounds redrafts from one pair selection.
	DefaultMaxDraftAttempts = 50

	// DefaultMaxRounds bounds how many fresh pair selections a search may make.
	DefaultMaxRounds = 5
)

// Limits are the attempt ceilings of a search. Zero values use the defaults.
type Limits struct {
	MaxSelectionAttempts int
	MaxDraftAttempts     int
	MaxRounds            int
}

func (l Limits) withDefaults() Limits {
	if l.MaxSelectionAttempts <= 0 {
		l.MaxSelectionAttempts = DefaultMaxSelectionAttempts
	}
	if l.MaxDraftAttempts <= 0 {
		l.MaxDraftAttempts = DefaultMaxDraftAttempts
	}
	if l.MaxRounds <= 0 {
		l.MaxRounds = DefaultMaxRounds
	}
	return l
}

// Result is an accepted team together with search statistics.
type Result struct {
	Team              dex.Team
	Pairs             []dex.TypePair
	Rounds            int // Pair selections performed
	Drafts            int // Drafts validated across all rounds
	SelectionAttempts int // Selector attempts across all rounds
}

// Assembler runs selection, drafting and validation until a team is accepted
// or the limits are exhausted.
type Assembler struct {
	selector  *Selector
	drafter   *Drafter
	validator *Validator
	limits    Limits
	logger    *zap.Logger
}

// NewAssembler wires a full search over catalog.
func NewAssembler(catalog *Catalog, oracle RelationOracle, rng Rand, limits Limits, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	limits = limits.withDefaults()

	return &Assembler{
		selector:  NewSelector(catalog, rng, limits.MaxSelectionAttempts, logger),
		drafter:   NewDrafter(catalog, rng),
		validator: NewValidator(oracle, logger),
		limits:    limits,
		logger:    logger,
	}
}

// Assemble searches for an acceptable team. A rejected draft is redrafted
// from the same pairs; once a round's draft budget is spent a fresh pair
// selection starts the next round.
//
// Errors wrap ErrUnsatisfiable when no selection is possible,
// ErrTeamNotAssembled when every round is spent, or the oracle's error.
func (a *Assembler) Assemble(ctx context.Context) (Result, error) {
	var res Result

	for round := 1; round <= a.limits.MaxRounds; round++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		selection, err := a.selector.Select()
		res.SelectionAttempts += selection.Attempts
		if err != nil {
			return Result{}, err
		}
		res.Rounds = round

		team, drafts, err := a.draftRound(ctx, selection.Pairs)
		res.Drafts += drafts
		if err == nil {
			res.Team = team
			res.Pairs = selection.Pairs
			a.logger.Info("Team accepted",
				zap.Int("rounds", res.Rounds),
				zap.Int("drafts", res.Drafts),
				zap.Ints("numbers", team.Numbers()))
			return res, nil
		}
		if !errors.Is(err, errRoundExhausted) {
			return Result{}, err
		}

		a.logger.Info("Draft budget spent, reselecting pairs",
			zap.Int("round", round),
			zap.Stringers("pairs", selection.Pairs))
	}

	return Result{}, notAssembled(res.Drafts, "%d rounds of %d drafts each", a.limits.MaxRounds, a.limits.MaxDraftAttempts)
}

var errRoundExhausted = errors.New("draft attempts exhausted")

// draftRound drafts and validates from one selection. Returns the number of
// drafts made alongside the accepted team.
func (a *Assembler) draftRound(ctx context.Context, pairs []dex.TypePair) (dex.Team, int, error) {
	for attempt := 1; attempt <= a.limits.MaxDraftAttempts; attempt++ {
		team, err := a.drafter.Draft(pairs)
		if err != nil {
			return dex.Team{}, attempt, err
		}

		verdict, err := a.validator.Validate(ctx, team)
		if err != nil {
			return dex.Team{}, attempt, err
		}
		if verdict.Valid {
			return team, attempt, nil
		}

		a.logger.Debug("Draft rejected",
			zap.Int("attempt", attempt),
			zap.String("reason", verdict.Reason))
	}

	return dex.Team{}, a.limits.MaxDraftAttempts, fmt.Errorf("%w after %d drafts", errRoundExhausted, a.limits.MaxDraftAttempts)
}
