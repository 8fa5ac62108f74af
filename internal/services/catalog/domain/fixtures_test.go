package domain

func fixtureCatalog() []Pokemon {
	grass := PokemonType{ID: 12, Handle: "grass", Name: "Grass"}
	poison := PokemonType{ID: 4, Handle: "poison", Name: "Poison"}
	fire := PokemonType{ID: 10, Handle: "fire", Name: "Fire"}
	normal := PokemonType{ID: 1, Handle: "normal", Name: "Normal"}
	water := PokemonType{ID: 11, Handle: "water", Name: "Water"}
	fairy := PokemonType{ID: 18, Handle: "fairy", Name: "Fairy"}
	gen1 := Generation{ID: 1, Handle: "generation-i", Name: "Generation I"}
	gen6 := Generation{ID: 6, Handle: "generation-vi", Name: "Generation VI"}

	return []Pokemon{
		{ID: 1, Name: "Bulbasaur", EvolutionLines: []string{"bulbasaur"}, EvolutionStage: 1, Generation: gen1, Types: []PokemonType{grass, poison}},
		{ID: 2, Name: "Ivysaur", EvolutionLines: []string{"bulbasaur"}, EvolutionStage: 2, Generation: gen1, Types: []PokemonType{grass, poison}},
		{ID: 3, Name: "Venusaur", EvolutionLines: []string{"bulbasaur"}, EvolutionStage: 3, Generation: gen1, Types: []PokemonType{grass, poison}},
		{ID: 4, Name: "Charmander", EvolutionLines: []string{"charmander"}, EvolutionStage: 1, Generation: gen1, Types: []PokemonType{fire}},
		{ID: 133, Name: "Eevee", EvolutionLines: []string{"eevee"}, EvolutionStage: 1, Generation: gen1, Types: []PokemonType{normal}},
		{ID: 134, Name: "Vaporeon", EvolutionLines: []string{"eevee", "vaporeon"}, EvolutionStage: 2, Generation: gen1, Types: []PokemonType{water}},
		{ID: 136, Name: "Flareon", EvolutionLines: []string{"eevee", "flareon"}, EvolutionStage: 2, Generation: gen1, Types: []PokemonType{fire}},
		{ID: 669, Name: "Flabébé", EvolutionLines: []string{"flabebe"}, EvolutionStage: 1, Generation: gen6, Types: []PokemonType{fairy}},
	}
}

func listedIDs(items []ListedPokemon) []int {
	ids := make([]int, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}
