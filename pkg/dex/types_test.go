package dex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPair(t *testing.T, a, b string) TypePair {
	t.Helper()
	p, err := NewTypePair(a, b)
	require.NoError(t, err)
	return p
}

func TestNewTypePair(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		want    TypePair
		wantErr string
	}{
		{name: "already sorted", a: "Fire", b: "Flying", want: TypePair{First: "Fire", Second: "Flying"}},
		{name: "reversed input", a: "Flying", b: "Fire", want: TypePair{First: "Fire", Second: "Flying"}},
		{name: "trims whitespace", a: " Water ", b: "Ground\n", want: TypePair{First: "Ground", Second: "Water"}},
		{name: "empty label", a: "", b: "Fire", wantErr: "cannot be empty"},
		{name: "same label twice", a: "Fire", b: "Fire", wantErr: "must be distinct"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTypePair(tt.a, tt.b)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestParseTypePair(t *testing.T) {
	p, err := ParseTypePair("Poison-Grass")
	require.NoError(t, err)
	assert.Equal(t, "Grass-Poison", p.String())

	_, err = ParseTypePair("Fire")
	assert.Error(t, err)

	_, err = ParseTypePair("Fire-Water-Grass")
	assert.Error(t, err)
}

func TestTypePair_SharesType(t *testing.T) {
	fireFlying := mustPair(t, "Fire", "Flying")

	assert.True(t, fireFlying.SharesType(fireFlying), "a pair shares its types with itself")
	assert.True(t, fireFlying.SharesType(mustPair(t, "Flying", "Normal")))
	assert.True(t, fireFlying.SharesType(mustPair(t, "Fire", "Ground")))
	assert.False(t, fireFlying.SharesType(mustPair(t, "Water", "Ground")))
}

func TestEntity_Validate(t *testing.T) {
	valid := Entity{Number: 6, Name: "Charizard", Types: mustPair(t, "Fire", "Flying")}
	assert.NoError(t, valid.Validate())

	noNumber := valid
	noNumber.Number = 0
	assert.ErrorContains(t, noNumber.Validate(), "number must be positive")

	noName := valid
	noName.Name = ""
	assert.ErrorContains(t, noName.Validate(), "name is required")

	singleType := valid
	singleType.Types = TypePair{First: "Fire"}
	assert.ErrorContains(t, singleType.Validate(), "invalid type pair")
}

func TestEntity_DisplayName(t *testing.T) {
	assert.Equal(t, "Charizard", Entity{Name: "Charizard"}.DisplayName())
	assert.Equal(t, "Charizard (Mega Charizard X)", Entity{Name: "Charizard", Form: "Mega Charizard X"}.DisplayName())
}

func sampleTeam(t *testing.T) Team {
	return Team{Members: []Entity{
		{Number: 6, Name: "Charizard", Types: mustPair(t, "Fire", "Flying")},
		{Number: 260, Name: "Swampert", Types: mustPair(t, "Water", "Ground")},
		{Number: 3, Name: "Venusaur", Types: mustPair(t, "Grass", "Poison")},
		{Number: 82, Name: "Magneton", Types: mustPair(t, "Electric", "Steel")},
		{Number: 282, Name: "Gardevoir", Types: mustPair(t, "Psychic", "Fairy")},
		{Number: 302, Name: "Sableye", Types: mustPair(t, "Dark", "Ghost")},
	}}
}

func TestTeam_Validate(t *testing.T) {
	t.Run("valid team", func(t *testing.T) {
		team := sampleTeam(t)
		require.NoError(t, team.Validate())
		assert.Equal(t, []int{6, 260, 3, 82, 282, 302}, team.Numbers())
		assert.Len(t, team.Pairs(), TeamSize)
	})

	t.Run("wrong size", func(t *testing.T) {
		team := sampleTeam(t)
		team.Members = team.Members[:5]
		assert.ErrorContains(t, team.Validate(), "must have 6 members")
	})

	t.Run("duplicate number", func(t *testing.T) {
		team := sampleTeam(t)
		team.Members[1].Number = 6
		assert.ErrorContains(t, team.Validate(), "duplicate number #6")
	})

	t.Run("shared type", func(t *testing.T) {
		team := sampleTeam(t)
		team.Members[1].Types = mustPair(t, "Water", "Flying")
		assert.ErrorContains(t, team.Validate(), "type Flying used by both")
	})
}
