package models

// Pokemon is the normalized, display-ready form of a Pokémon entry.
//
// The raw PokeAPI record and the optional species record are mapped into
// this structure first, then every layer above (API, CLI, favorites)
// works from this representation.
type Pokemon struct {
	ID            int       `json:"id"`              // upstream numeric id
	Name          string    `json:"name"`            // canonical key (lowercase, hyphenated)
	DisplayName   string    `json:"display_name"`    // "mr-mime" -> "Mr Mime"
	Types         []string  `json:"types"`           // type keys, unchanged
	Height        float64   `json:"height"`          // meters (upstream decimeters / 10)
	Weight        float64   `json:"weight"`          // kilograms (upstream hectograms / 10)
	Abilities     []Ability `json:"abilities"`
	Stats         []Stat    `json:"stats"`
	ImageURL      string    `json:"image_url,omitempty"`
	Description   string    `json:"description"`
	Genus         string    `json:"genus"`
	Color         string    `json:"color"`
	CaptureRate   int       `json:"capture_rate"`
	BaseHappiness int       `json:"base_happiness"`
}

type Ability struct {
	Name   string `json:"name"`
	Hidden bool   `json:"hidden"`
}

type Stat struct {
	Name  string `json:"name"`  // upstream stat key, e.g. "special-attack"
	Label string `json:"label"` // display label, e.g. "Sp. Atk"
	Value int    `json:"value"`
}
