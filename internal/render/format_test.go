package render

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dyluth/dexteam/internal/draft"
	"github.com/dyluth/dexteam/pkg/dex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog() *draft.Catalog {
	return draft.Partition([]dex.Entity{
		{Number: 6, Name: "Charizard", Types: dex.TypePair{First: "Fire", Second: "Flying"}},
		{Number: 146, Name: "Moltres", Types: dex.TypePair{First: "Fire", Second: "Flying"}},
		{Number: 1, Name: "Bulbasaur", Types: dex.TypePair{First: "Grass", Second: "Poison"}},
		{Number: 6, Name: "Charizard", Form: "Mega Charizard X", Types: dex.TypePair{First: "Dragon", Second: "Fire"}},
	})
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(&buf, sampleTeam())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 8, "header, separator and six members")
	assert.True(t, strings.HasPrefix(lines[0], "#     NAME"))
	assert.Contains(t, lines[2], "001")
	assert.Contains(t, lines[2], "Grass / Poison")
	assert.Contains(t, lines[3], "Mega Charizard X")
}

func TestFormatCatalog(t *testing.T) {
	t.Run("all pairs", func(t *testing.T) {
		var buf bytes.Buffer
		n := FormatCatalog(&buf, sampleCatalog(), "")

		assert.Equal(t, 3, n)
		assert.Contains(t, buf.String(), "Fire-Flying")
		assert.Contains(t, buf.String(), "Charizard, Moltres")
		assert.Contains(t, buf.String(), "3 type pairs, 4 entities, 5 labels")
	})

	t.Run("filter is case insensitive", func(t *testing.T) {
		var buf bytes.Buffer
		n := FormatCatalog(&buf, sampleCatalog(), "fire")

		assert.Equal(t, 2, n)
		assert.NotContains(t, buf.String(), "Grass-Poison")
	})

	t.Run("unknown label", func(t *testing.T) {
		var buf bytes.Buffer
		n := FormatCatalog(&buf, sampleCatalog(), "Sound")

		assert.Equal(t, 0, n)
		assert.Equal(t, "No type pairs found containing 'Sound'\n", buf.String())
	})
}

func TestFormatJSONL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSONL(&buf, sampleCatalog(), "Fire"))

	var lines []bucketLine
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var line bucketLine
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}

	require.Len(t, lines, 2)
	assert.Equal(t, "Fire-Flying", lines[0].Pair)
	assert.Equal(t, 2, lines[0].Count)
	assert.Len(t, lines[0].Entities, 2)
	assert.Equal(t, "Dragon-Fire", lines[1].Pair)
	assert.Equal(t, "Mega Charizard X", lines[1].Entities[0].Form)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Bulbasaur", truncate("Bulbasaur", 16))
	assert.Equal(t, "Mega Ch...", truncate("Mega Charizard X", 10))
	assert.Equal(t, "Fla", truncate("Flabébé", 3))
}
