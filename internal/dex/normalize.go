package dex

import (
	"strings"

	"pokehub/internal/pokeapi"
	"pokehub/pkg/models"
)

// Fallback values used when the species record is missing or lacks
// English entries.
const (
	fallbackDescription = "No description available."
	fallbackGenus       = "Unknown"
	fallbackColor       = "gray"
)

// statLabels maps the six known stat keys to their display abbreviations.
// Anything else falls back to FormatDisplayName.
var statLabels = map[string]string{
	"hp":              "HP",
	"attack":          "Attack",
	"defense":         "Defense",
	"special-attack":  "Sp. Atk",
	"special-defense": "Sp. Def",
	"speed":           "Speed",
}

// FormatDisplayName turns a canonical hyphenated key into a display name:
// "mr-mime" -> "Mr Mime".
func FormatDisplayName(key string) string {
	parts := strings.Split(key, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

func FormatStatLabel(statKey string) string {
	if label, ok := statLabels[statKey]; ok {
		return label
	}
	return FormatDisplayName(statKey)
}

// ToPokemon maps a raw record plus an optional species record into the
// display model. It is total: a nil species degrades to fallback values,
// never to an error.
func ToPokemon(raw *pokeapi.Pokemon, species *pokeapi.Species) models.Pokemon {
	p := models.Pokemon{
		ID:          raw.ID,
		Name:        raw.Name,
		DisplayName: FormatDisplayName(raw.Name),
		Height:      float64(raw.Height) / 10, // decimeters -> meters
		Weight:      float64(raw.Weight) / 10, // hectograms -> kilograms
		Description: fallbackDescription,
		Genus:       fallbackGenus,
		Color:       fallbackColor,
	}

	p.Types = make([]string, 0, len(raw.Types))
	for _, t := range raw.Types {
		p.Types = append(p.Types, t.Type.Name)
	}

	p.Abilities = make([]models.Ability, 0, len(raw.Abilities))
	for _, a := range raw.Abilities {
		p.Abilities = append(p.Abilities, models.Ability{
			Name:   FormatDisplayName(a.Ability.Name),
			Hidden: a.IsHidden,
		})
	}

	p.Stats = make([]models.Stat, 0, len(raw.Stats))
	for _, s := range raw.Stats {
		p.Stats = append(p.Stats, models.Stat{
			Name:  s.Stat.Name,
			Label: FormatStatLabel(s.Stat.Name),
			Value: s.BaseStat,
		})
	}

	// prefer official artwork, fall back to the plain sprite
	p.ImageURL = raw.Sprites.Other.OfficialArtwork.FrontDefault
	if p.ImageURL == "" {
		p.ImageURL = raw.Sprites.FrontDefault
	}

	if species == nil {
		return p
	}

	for _, e := range species.FlavorTextEntries {
		if e.Language.Name == "en" {
			p.Description = strings.ReplaceAll(e.FlavorText, "\f", " ")
			break
		}
	}
	for _, g := range species.Genera {
		if g.Language.Name == "en" {
			p.Genus = g.Genus
			break
		}
	}
	if species.Color.Name != "" {
		p.Color = species.Color.Name
	}
	p.CaptureRate = species.CaptureRate
	p.BaseHappiness = species.BaseHappiness

	return p
}
