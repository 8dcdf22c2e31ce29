package commands

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dyluth/dexteam/internal/config"
	"github.com/dyluth/dexteam/internal/draft"
	"github.com/dyluth/dexteam/internal/pokedb"
	"github.com/dyluth/dexteam/internal/printer"
	"github.com/dyluth/dexteam/pkg/dex"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSite serves testdata pages the way the catalog site lays them out.
type fakeSite struct {
	*httptest.Server
	catalogHits atomic.Int32
	detailHits  atomic.Int32
}

func newFakeSite(t *testing.T) *fakeSite {
	t.Helper()
	catalogPage, err := os.ReadFile(filepath.Join("testdata", "catalog.html"))
	require.NoError(t, err)
	detailPage, err := os.ReadFile(filepath.Join("testdata", "no-evolution.html"))
	require.NoError(t, err)

	site := &fakeSite{}
	mux := http.NewServeMux()
	mux.HandleFunc("/pokedex/all", func(w http.ResponseWriter, r *http.Request) {
		site.catalogHits.Add(1)
		w.Write(catalogPage)
	})
	mux.HandleFunc("/pokedex/", func(w http.ResponseWriter, r *http.Request) {
		site.detailHits.Add(1)
		w.Write(detailPage)
	})
	site.Server = httptest.NewServer(mux)
	t.Cleanup(site.Close)
	return site
}

// writeTestConfig writes a dexteam.yml pointing at site and returns its path.
func writeTestConfig(t *testing.T, baseURL, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dexteam.yml")
	content := fmt.Sprintf(`version: "1.0"
source:
  base_url: %q
  timeout: "5s"
  max_retries: 0
%s`, baseURL, extra)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// runCLI executes the real root command with args, capturing printer output.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	prevColor := color.NoColor
	color.NoColor = true

	var stdout, stderr bytes.Buffer
	printer.SetOutput(&stdout, &stderr)
	t.Cleanup(func() {
		printer.SetOutput(nil, nil)
		color.NoColor = prevColor
		draftOutput, draftSeed, catalogOutputFormat, catalogType, forceInit = "", 0, "default", "", false
		rootCmd.SetArgs(nil)
	})

	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	err := Execute()
	return stdout.String(), stderr.String(), err
}

func sortedNumbers(team dex.Team) []int {
	numbers := team.Numbers()
	sort.Ints(numbers)
	return numbers
}

func TestGenerateTeam(t *testing.T) {
	site := newFakeSite(t)
	client, err := pokedb.NewClient(pokedb.Options{BaseURL: site.URL}, nil)
	require.NoError(t, err)

	run, err := generateTeam(context.Background(), client, draft.Limits{}, 42, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 7, run.Fetched, "single-typed rows are skipped")
	assert.Equal(t, 7, run.Catalog.Len())
	assert.Equal(t, []int{1, 6, 205, 260, 282, 442}, sortedNumbers(run.Result.Team))
	assert.NoError(t, run.Result.Team.Validate())
	assert.Equal(t, int32(1), site.catalogHits.Load())
	assert.Equal(t, int32(6), site.detailHits.Load(), "one relation lookup per member")
}

func TestGenerateTeam_SameSeedSameTeam(t *testing.T) {
	site := newFakeSite(t)
	client, err := pokedb.NewClient(pokedb.Options{BaseURL: site.URL}, nil)
	require.NoError(t, err)

	first, err := generateTeam(context.Background(), client, draft.Limits{}, 7, zap.NewNop())
	require.NoError(t, err)
	second, err := generateTeam(context.Background(), client, draft.Limits{}, 7, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, first.Result.Team, second.Result.Team)
	assert.Equal(t, first.Result.SelectionAttempts, second.Result.SelectionAttempts)
}

func TestGenerateTeam_Errors(t *testing.T) {
	t.Run("unsatisfiable catalog", func(t *testing.T) {
		src := staticSource{entities: []dex.Entity{
			{Number: 1, Name: "Bulbasaur", Types: dex.TypePair{First: "Grass", Second: "Poison"}},
			{Number: 6, Name: "Charizard", Types: dex.TypePair{First: "Fire", Second: "Flying"}},
		}}
		_, err := generateTeam(context.Background(), src, draft.Limits{}, 1, zap.NewNop())
		assert.ErrorIs(t, err, draft.ErrUnsatisfiable)
	})

	t.Run("fetch failure", func(t *testing.T) {
		src := staticSource{err: fmt.Errorf("failed to fetch catalog: %w", &pokedb.StatusError{URL: "x", Code: 503})}
		_, err := generateTeam(context.Background(), src, draft.Limits{}, 1, zap.NewNop())
		assert.ErrorContains(t, err, "HTTP 503")
	})
}

// staticSource serves a fixed catalog with no evolution links.
type staticSource struct {
	entities []dex.Entity
	err      error
}

func (s staticSource) FetchCatalog(ctx context.Context) ([]dex.Entity, error) {
	return s.entities, s.err
}

func (s staticSource) RelatedIDs(ctx context.Context, e dex.Entity) (map[int]struct{}, error) {
	return map[int]struct{}{}, nil
}

func TestDraftError(t *testing.T) {
	prevColor := color.NoColor
	color.NoColor = true
	var stderr bytes.Buffer
	printer.SetOutput(&bytes.Buffer{}, &stderr)
	defer func() {
		printer.SetOutput(nil, nil)
		color.NoColor = prevColor
	}()

	cfg := config.Default()

	tests := []struct {
		name      string
		err       error
		wantTitle string
	}{
		{"unsatisfiable", fmt.Errorf("select: %w", draft.ErrUnsatisfiable), "no valid team exists"},
		{"exhausted", fmt.Errorf("assemble: %w", draft.ErrTeamNotAssembled), "could not assemble a valid team"},
		{"cancelled", fmt.Errorf("assemble: %w", context.Canceled), "draft interrupted"},
		{"fetch", fmt.Errorf("failed to fetch catalog: boom"), "failed to fetch data from https://pokemondb.net"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stderr.Reset()
			err := draftError(tt.err, cfg, 99)
			require.Error(t, err)
			assert.Equal(t, tt.wantTitle, err.Error())
			assert.Contains(t, stderr.String(), tt.err.Error())
		})
	}
}

func TestDraftCommand_WritesPage(t *testing.T) {
	site := newFakeSite(t)
	cfgPath := writeTestConfig(t, site.URL, "")
	out := filepath.Join(t.TempDir(), "team.html")

	stdout, _, err := runCLI(t, "draft", "--config", cfgPath, "--seed", "3", "-o", out)
	require.NoError(t, err)

	page, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(page), `href="`+site.URL+`/pokedex/bulbasaur"`)
	assert.Contains(t, string(page), `href="`+site.URL+`/type/grass"`)
	assert.NotContains(t, string(page), "Greninja")
	assert.NotContains(t, string(page), `rel="stylesheet"`)

	assert.Contains(t, stdout, "Spiritomb")
	assert.Contains(t, stdout, "Wrote "+out+" (seed 3")
}

func TestDraftCommand_MissingExplicitConfig(t *testing.T) {
	_, stderr, err := runCLI(t, "draft", "--config", filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Equal(t, "invalid configuration", err.Error())
	assert.Contains(t, stderr, "failed to read config")
}

func TestDraftCommand_SiteDown(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer site.Close()

	cfgPath := writeTestConfig(t, site.URL, "")
	out := filepath.Join(t.TempDir(), "team.html")

	_, stderr, err := runCLI(t, "draft", "--config", cfgPath, "-o", out)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to fetch data from "))
	assert.Contains(t, stderr, "HTTP 503")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no partial output")
}
