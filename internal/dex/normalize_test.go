package dex

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokehub/internal/pokeapi"
)

func TestFormatDisplayName(t *testing.T) {
	cases := map[string]string{
		"pikachu":   "Pikachu",
		"mr-mime":   "Mr Mime",
		"ho-oh":     "Ho Oh",
		"porygon-z": "Porygon Z",
		"tapu-koko": "Tapu Koko",
		"charizard": "Charizard",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatDisplayName(in), "input %q", in)
	}
}

func TestFormatStatLabel(t *testing.T) {
	t.Run("known keys", func(t *testing.T) {
		assert.Equal(t, "HP", FormatStatLabel("hp"))
		assert.Equal(t, "Attack", FormatStatLabel("attack"))
		assert.Equal(t, "Defense", FormatStatLabel("defense"))
		assert.Equal(t, "Sp. Atk", FormatStatLabel("special-attack"))
		assert.Equal(t, "Sp. Def", FormatStatLabel("special-defense"))
		assert.Equal(t, "Speed", FormatStatLabel("speed"))
	})

	t.Run("unknown key falls back to display name", func(t *testing.T) {
		assert.Equal(t, "Unknown Stat", FormatStatLabel("unknown-stat"))
	})
}

const rawPikachuJSON = `{
	"id": 25,
	"name": "pikachu",
	"height": 4,
	"weight": 60,
	"types": [{"slot": 1, "type": {"name": "electric"}}],
	"abilities": [
		{"ability": {"name": "static"}, "is_hidden": false},
		{"ability": {"name": "lightning-rod"}, "is_hidden": true}
	],
	"stats": [{"base_stat": 55, "stat": {"name": "special-attack"}}],
	"sprites": {"front_default": "https://img.example/sprite/25.png"}
}`

const speciesPikachuJSON = `{
	"flavor_text_entries": [
		{"flavor_text": "Hält den Schwanz hoch.", "language": {"name": "de"}},
		{"flavor_text": "When several of\fthese POKéMON gather", "language": {"name": "en"}}
	],
	"genera": [{"genus": "Mouse Pokémon", "language": {"name": "en"}}],
	"color": {"name": "yellow"},
	"capture_rate": 190,
	"base_happiness": 50
}`

func rawPikachu(t *testing.T) *pokeapi.Pokemon {
	t.Helper()
	var p pokeapi.Pokemon
	require.NoError(t, json.Unmarshal([]byte(rawPikachuJSON), &p))
	return &p
}

func speciesPikachu(t *testing.T) *pokeapi.Species {
	t.Helper()
	var s pokeapi.Species
	require.NoError(t, json.Unmarshal([]byte(speciesPikachuJSON), &s))
	return &s
}

func TestToPokemon(t *testing.T) {
	t.Run("full mapping with species", func(t *testing.T) {
		p := ToPokemon(rawPikachu(t), speciesPikachu(t))

		assert.Equal(t, 25, p.ID)
		assert.Equal(t, "pikachu", p.Name)
		assert.Equal(t, "Pikachu", p.DisplayName)
		assert.Equal(t, []string{"electric"}, p.Types)
		assert.Equal(t, 0.4, p.Height)
		assert.Equal(t, 6.0, p.Weight)

		if assert.Len(t, p.Abilities, 2) {
			assert.Equal(t, "Static", p.Abilities[0].Name)
			assert.False(t, p.Abilities[0].Hidden)
			assert.Equal(t, "Lightning Rod", p.Abilities[1].Name)
			assert.True(t, p.Abilities[1].Hidden)
		}

		if assert.Len(t, p.Stats, 1) {
			assert.Equal(t, "special-attack", p.Stats[0].Name)
			assert.Equal(t, "Sp. Atk", p.Stats[0].Label)
			assert.Equal(t, 55, p.Stats[0].Value)
		}

		// form feed replaced with a space, first English entry wins
		assert.Equal(t, "When several of these POKéMON gather", p.Description)
		assert.Equal(t, "Mouse Pokémon", p.Genus)
		assert.Equal(t, "yellow", p.Color)
		assert.Equal(t, 190, p.CaptureRate)
		assert.Equal(t, 50, p.BaseHappiness)
	})

	t.Run("nil species degrades to fallbacks", func(t *testing.T) {
		p := ToPokemon(rawPikachu(t), nil)

		assert.Equal(t, "No description available.", p.Description)
		assert.Equal(t, "Unknown", p.Genus)
		assert.Equal(t, "gray", p.Color)
		assert.Equal(t, 0, p.CaptureRate)
		assert.Equal(t, 0, p.BaseHappiness)
	})

	t.Run("species without english entries keeps text fallbacks", func(t *testing.T) {
		sp := speciesPikachu(t)
		sp.FlavorTextEntries = sp.FlavorTextEntries[:1] // german only
		sp.Genera = nil

		p := ToPokemon(rawPikachu(t), sp)

		assert.Equal(t, "No description available.", p.Description)
		assert.Equal(t, "Unknown", p.Genus)
		assert.Equal(t, "yellow", p.Color)
	})

	t.Run("official artwork preferred, sprite fallback", func(t *testing.T) {
		raw := rawPikachu(t)
		raw.Sprites.Other.OfficialArtwork.FrontDefault = "https://img.example/art/25.png"
		assert.Equal(t, "https://img.example/art/25.png", ToPokemon(raw, nil).ImageURL)

		raw.Sprites.Other.OfficialArtwork.FrontDefault = ""
		assert.Equal(t, "https://img.example/sprite/25.png", ToPokemon(raw, nil).ImageURL)
	})
}
