package pokeapi

// NamedResource is a name plus the URL of the full resource.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ResourceList is the paginated list envelope.
type ResourceList struct {
	Count    int             `json:"count"`
	Next     string          `json:"next"`
	Previous string          `json:"previous"`
	Results  []NamedResource `json:"results"`
}

// LocalizedName is a name in one language.
type LocalizedName struct {
	Name     string        `json:"name"`
	Language NamedResource `json:"language"`
}

// Type is an elemental type resource.
type Type struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Names []LocalizedName `json:"names"`
}

// Generation is a generation resource.
type Generation struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Names []LocalizedName `json:"names"`
}

// PokemonStat is one base stat entry.
type PokemonStat struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// PokemonTypeSlot is one type assigned to a creature.
type PokemonTypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// Artwork holds one artwork variant.
type Artwork struct {
	FrontDefault *string `json:"front_default"`
}

// Sprites holds the creature images.
type Sprites struct {
	FrontDefault *string `json:"front_default"`
	Other        struct {
		OfficialArtwork Artwork `json:"official-artwork"`
	} `json:"other"`
}

// Pokemon is a creature resource.
type Pokemon struct {
	ID      int               `json:"id"`
	Name    string            `json:"name"`
	Height  int               `json:"height"`
	Weight  int               `json:"weight"`
	Stats   []PokemonStat     `json:"stats"`
	Types   []PokemonTypeSlot `json:"types"`
	Sprites Sprites           `json:"sprites"`
	Species NamedResource     `json:"species"`
}

// FlavorText is one species description.
type FlavorText struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
	Version    NamedResource `json:"version"`
}

// Species is a species resource.
type Species struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	EvolutionChain struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
	FlavorTextEntries []FlavorText    `json:"flavor_text_entries"`
	Generation        NamedResource   `json:"generation"`
	Names             []LocalizedName `json:"names"`
}

// ChainLink is one node of an evolution chain.
type ChainLink struct {
	Species   NamedResource `json:"species"`
	EvolvesTo []ChainLink   `json:"evolves_to"`
}

// EvolutionChain is an evolution chain resource.
type EvolutionChain struct {
	ID    int       `json:"id"`
	Chain ChainLink `json:"chain"`
}

func localized(names []LocalizedName, language, fallback string) string {
	for _, n := range names {
		if n.Language.Name == language && n.Name != "" {
			return n.Name
		}
	}
	return fallback
}
