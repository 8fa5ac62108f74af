// Package catalogv1 is the wire contract of the catalog RPC service.
//
// Messages are plain structs exchanged with the JSON codec registered by
// internal/platform/grpc/jsoncodec.
package catalogv1

// Generation is a release wave.
type Generation struct {
	Id     int32  `json:"id"`
	Handle string `json:"handle"`
	Name   string `json:"name"`
}

// PokemonType is an elemental type.
type PokemonType struct {
	Id     int32  `json:"id"`
	Handle string `json:"handle"`
	Name   string `json:"name"`
}

// Stats are base stats.
type Stats struct {
	Hp             int32 `json:"hp"`
	Attack         int32 `json:"attack"`
	Defense        int32 `json:"defense"`
	SpecialAttack  int32 `json:"special_attack"`
	SpecialDefense int32 `json:"special_defense"`
	Speed          int32 `json:"speed"`
}

// Pokemon is one catalog entry. SearchMatch is set on search results only.
type Pokemon struct {
	Id             int32          `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	ImageUrl       string         `json:"image_url"`
	EvolutionLines []string       `json:"evolution_lines"`
	EvolutionStage int32          `json:"evolution_stage"`
	Height         int32          `json:"height"`
	Weight         int32          `json:"weight"`
	Stats          *Stats         `json:"stats,omitempty"`
	Generation     *Generation    `json:"generation,omitempty"`
	Types          []*PokemonType `json:"types"`
	SearchMatch    string         `json:"search_match,omitempty"`
}

// ListPokemonsRequest filters and pages the catalog. Filter is an AIP-160
// expression over name, type and generation.
type ListPokemonsRequest struct {
	Name       string `json:"name,omitempty"`
	Type       string `json:"type,omitempty"`
	Generation string `json:"generation,omitempty"`
	Filter     string `json:"filter,omitempty"`
	Limit      int32  `json:"limit,omitempty"`
	Offset     int32  `json:"offset,omitempty"`
}

// ListPokemonsResponse is one page of the catalog.
type ListPokemonsResponse struct {
	Count       int32      `json:"count"`
	CurrentPage int32      `json:"current_page"`
	IsLast      bool       `json:"is_last"`
	Pokemons    []*Pokemon `json:"pokemons"`
}

// GetPokemonRequest identifies one creature.
type GetPokemonRequest struct {
	Id int32 `json:"id"`
}

// GetPokemonResponse carries one creature.
type GetPokemonResponse struct {
	Pokemon *Pokemon `json:"pokemon"`
}

// FindEvolutionsRequest names evolution lines.
type FindEvolutionsRequest struct {
	EvolutionLines []string `json:"evolution_lines"`
}

// FindEvolutionsResponse lists related creatures by stage.
type FindEvolutionsResponse struct {
	Pokemons []*Pokemon `json:"pokemons"`
}

// ListGenerationsRequest is empty.
type ListGenerationsRequest struct{}

// ListGenerationsResponse lists every generation.
type ListGenerationsResponse struct {
	Generations []*Generation `json:"generations"`
}

// ListPokemonTypesRequest is empty.
type ListPokemonTypesRequest struct{}

// ListPokemonTypesResponse lists every type.
type ListPokemonTypesResponse struct {
	PokemonTypes []*PokemonType `json:"pokemon_types"`
}
