package pokeapi

// NamedRef is the {name, url} pair PokeAPI uses everywhere it links
// one resource to another.
type NamedRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Pokemon is the raw upstream record for a single Pokémon.
// Height is in decimeters, weight in hectograms.
type Pokemon struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Height int    `json:"height"`
	Weight int    `json:"weight"`
	Types  []struct {
		Slot int      `json:"slot"`
		Type NamedRef `json:"type"`
	} `json:"types"`
	Abilities []struct {
		Ability  NamedRef `json:"ability"`
		IsHidden bool     `json:"is_hidden"`
	} `json:"abilities"`
	Stats []struct {
		BaseStat int      `json:"base_stat"`
		Stat     NamedRef `json:"stat"`
	} `json:"stats"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
}

// Species is the optional secondary record with localized and
// qualitative fields. It may not exist for every Pokémon.
type Species struct {
	FlavorTextEntries []struct {
		FlavorText string   `json:"flavor_text"`
		Language   NamedRef `json:"language"`
	} `json:"flavor_text_entries"`
	Genera []struct {
		Genus    string   `json:"genus"`
		Language NamedRef `json:"language"`
	} `json:"genera"`
	Color         NamedRef `json:"color"`
	CaptureRate   int      `json:"capture_rate"`
	BaseHappiness int      `json:"base_happiness"`
}

// Page is one window of the upstream key list plus the catalog-wide total.
type Page struct {
	Total int
	Keys  []string
}
