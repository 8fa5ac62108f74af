// Package datasource defines the read contract every catalog backend
// satisfies, so callers never know whether data comes from the relational
// store or from PokeAPI.
package datasource

import (
	"context"
	"errors"
	"fmt"

	"github.com/ajmonfue/poke-explorer/internal/services/catalog/domain"
)

var (
	// ErrNotFound indicates a requested catalog record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrUnknownKind indicates an unsupported data source kind.
	ErrUnknownKind = errors.New("unknown data source kind")
)

// Kind names a data source backend.
type Kind string

const (
	// KindSQLite reads the seeded relational store.
	KindSQLite Kind = "sqlite"
	// KindPokeAPI reads the public PokeAPI.
	KindPokeAPI Kind = "pokeapi"
)

// ParseKind resolves a configured kind. Empty selects KindPokeAPI.
func ParseKind(value string) (Kind, error) {
	switch Kind(value) {
	case "", KindPokeAPI:
		return KindPokeAPI, nil
	case KindSQLite:
		return KindSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, value)
	}
}

// DataSource serves catalog reads.
type DataSource interface {
	FindAllPokemons(ctx context.Context, filter domain.ListFilter) (domain.Page[domain.ListedPokemon], error)
	FindPokemonByID(ctx context.Context, id int) (domain.Pokemon, error)
	FindEvolutions(ctx context.Context, lines []string) ([]domain.Pokemon, error)
	FindGenerations(ctx context.Context) ([]domain.Generation, error)
	FindPokemonTypes(ctx context.Context) ([]domain.PokemonType, error)
}
