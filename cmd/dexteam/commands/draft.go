package commands

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/dyluth/dexteam/internal/config"
	"github.com/dyluth/dexteam/internal/draft"
	"github.com/dyluth/dexteam/internal/printer"
	"github.com/dyluth/dexteam/internal/render"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	draftSeed   uint64
	draftOutput string
	draftTitle  string
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Draft a team and render it as HTML",
	Long: `Draft a team of six and write it as a static HTML page.

Every member has two types, no type appears twice in the team, no two
members share a Pokédex number, and no two members belong to the same
evolution family.

The search picks six type-disjoint type pairs, draws one Pokémon from each,
and checks evolution links. A rejected draft is redrawn from the same pairs;
when the draft budget runs out a new set of pairs is picked. Limits are set
in the draft section of dexteam.yml.

Examples:
  # Draft a team into team.html
  dexteam draft

  # Reproduce an earlier team
  dexteam draft --seed 42

  # Write somewhere else
  dexteam draft -o out/my-team.html`,
	RunE: runDraft,
}

func init() {
	draftCmd.Flags().Uint64Var(&draftSeed, "seed", 0, "Random seed (default: random); the same seed and catalog give the same team")
	draftCmd.Flags().StringVarP(&draftOutput, "output", "o", "", "Output HTML path (default: output.path from dexteam.yml)")
	draftCmd.Flags().StringVar(&draftTitle, "title", render.DefaultTitle, "Page title")
	rootCmd.AddCommand(draftCmd)
}

// draftRun is the outcome of one pipeline run.
type draftRun struct {
	Result  draft.Result
	Catalog *draft.Catalog
	Fetched int
}

func runDraft(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return printer.Error(
			"invalid configuration",
			err.Error(),
			[]string{"Fix dexteam.yml, or run 'dexteam init --force' to recreate it"},
		)
	}

	outPath := cfg.Output.Path
	if draftOutput != "" {
		outPath = draftOutput
	}

	seed := draftSeed
	if !cmd.Flags().Changed("seed") {
		seed = rand.Uint64()
	}

	runID := uuid.NewString()
	log := logger.With(zap.String("run_id", runID), zap.Uint64("seed", seed))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	src, closeSrc, err := openSource(ctx, cfg, log)
	if err != nil {
		return printer.Error("failed to set up catalog source", err.Error(), nil)
	}
	defer closeSrc()

	printer.Step("Fetching catalog from %s\n", cfg.Source.BaseURL)
	run, err := generateTeam(ctx, src, cfg.Draft.Limits(), seed, log)
	if err != nil {
		return draftError(err, cfg, seed)
	}

	page := render.Page{
		Team:        run.Result.Team,
		BaseURL:     cfg.Source.BaseURL,
		Title:       draftTitle,
		RunID:       runID,
		GeneratedAt: time.Now(),
	}
	if cfg.Source.BaseURL == config.DefaultBaseURL {
		page.Stylesheet = render.DefaultStylesheet
	}

	if err := render.WriteFile(outPath, page); err != nil {
		return printer.Error("failed to write team page", err.Error(), nil)
	}

	printer.Info("\n")
	render.FormatTable(printer.Writer(), run.Result.Team)
	printer.Info("\n")
	printer.Success("Wrote %s (seed %d, %d round(s), %d draft(s), %d entities in %d type pairs)\n",
		outPath, seed, run.Result.Rounds, run.Result.Drafts, run.Catalog.Size(), run.Catalog.Len())

	log.Info("Team drafted",
		zap.Ints("numbers", run.Result.Team.Numbers()),
		zap.Int("fetched", run.Fetched),
		zap.String("output", outPath),
	)
	return nil
}

// generateTeam fetches the catalog, partitions it and searches for a team
// with a random source seeded from seed.
func generateTeam(ctx context.Context, src catalogSource, limits draft.Limits, seed uint64, log *zap.Logger) (draftRun, error) {
	entities, err := src.FetchCatalog(ctx)
	if err != nil {
		return draftRun{}, err
	}

	catalog := draft.Partition(entities)
	log.Debug("Catalog partitioned",
		zap.Int("entities", catalog.Size()),
		zap.Int("pairs", catalog.Len()),
		zap.Int("labels", len(catalog.Labels())),
	)

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	assembler := draft.NewAssembler(catalog, src, rng, limits, log)

	result, err := assembler.Assemble(ctx)
	if err != nil {
		return draftRun{Catalog: catalog, Fetched: len(entities)}, err
	}

	return draftRun{Result: result, Catalog: catalog, Fetched: len(entities)}, nil
}

// draftError maps pipeline failures to formatted CLI errors.
func draftError(err error, cfg *config.DexteamConfig, seed uint64) error {
	seedCtx := [2]string{"Seed", strconv.FormatUint(seed, 10)}

	switch {
	case errors.Is(err, draft.ErrUnsatisfiable):
		return printer.ErrorWithContext(
			"no valid team exists",
			err.Error(),
			[][2]string{{"Catalog", cfg.Source.BaseURL + cfg.Source.CatalogPath}, seedCtx},
			[]string{"Check that the catalog page lists dual-typed entries", "Raise draft.max_selection_attempts in dexteam.yml"},
		)
	case errors.Is(err, draft.ErrTeamNotAssembled):
		return printer.ErrorWithContext(
			"could not assemble a valid team",
			err.Error(),
			[][2]string{
				{"Max rounds", strconv.Itoa(cfg.Draft.MaxRounds)},
				{"Max draft attempts", strconv.Itoa(cfg.Draft.MaxDraftAttempts)},
				seedCtx,
			},
			[]string{"Run again with a different --seed", "Raise draft.max_rounds or draft.max_draft_attempts in dexteam.yml"},
		)
	case errors.Is(err, context.Canceled):
		return printer.Error("draft interrupted", err.Error(), nil)
	default:
		return printer.ErrorWithContext(
			fmt.Sprintf("failed to fetch data from %s", cfg.Source.BaseURL),
			err.Error(),
			[][2]string{{"Timeout", cfg.Source.Timeout}, {"Max retries", strconv.Itoa(*cfg.Source.MaxRetries)}},
			[]string{"Check your network connection and try again", "Raise source.timeout or source.max_retries in dexteam.yml"},
		)
	}
}
