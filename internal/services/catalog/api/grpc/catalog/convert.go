package catalog

import (
	catalogv1 "github.com/ajmonfue/poke-explorer/api/catalog/v1"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/domain"
)

func pokemonToProto(p domain.Pokemon) *catalogv1.Pokemon {
	out := &catalogv1.Pokemon{
		Id:             int32(p.ID),
		Name:           p.Name,
		Description:    p.Description,
		ImageUrl:       p.ImageURL,
		EvolutionLines: append([]string{}, p.EvolutionLines...),
		EvolutionStage: int32(p.EvolutionStage),
		Height:         int32(p.Height),
		Weight:         int32(p.Weight),
		Stats: &catalogv1.Stats{
			Hp:             int32(p.Stats.HP),
			Attack:         int32(p.Stats.Attack),
			Defense:        int32(p.Stats.Defense),
			SpecialAttack:  int32(p.Stats.SpecialAttack),
			SpecialDefense: int32(p.Stats.SpecialDefense),
			Speed:          int32(p.Stats.Speed),
		},
		Generation: generationToProto(p.Generation),
		Types:      make([]*catalogv1.PokemonType, 0, len(p.Types)),
	}
	for _, t := range p.Types {
		out.Types = append(out.Types, pokemonTypeToProto(t))
	}
	return out
}

func generationToProto(g domain.Generation) *catalogv1.Generation {
	return &catalogv1.Generation{Id: int32(g.ID), Handle: g.Handle, Name: g.Name}
}

func pokemonTypeToProto(t domain.PokemonType) *catalogv1.PokemonType {
	return &catalogv1.PokemonType{Id: int32(t.ID), Handle: t.Handle, Name: t.Name}
}
