package catalog

import (
	"context"
	"errors"
	"strings"

	catalogv1 "github.com/ajmonfue/poke-explorer/api/catalog/v1"
	"github.com/ajmonfue/poke-explorer/internal/platform/grpc/pagination"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/datasource"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/domain"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/filter"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var listLimits = pagination.LimitConfig{Default: domain.DefaultLimit, Max: domain.MaxLimit}

// Service exposes catalog.v1 gRPC operations.
type Service struct {
	catalogv1.UnimplementedCatalogServiceServer
	source datasource.DataSource
}

// NewService creates a catalog service backed by a data source.
func NewService(source datasource.DataSource) *Service {
	return &Service{source: source}
}

func (s *Service) ready() error {
	if s == nil || s.source == nil {
		return status.Error(codes.Internal, "catalog data source is not configured")
	}
	return nil
}

// FindAllPokemons returns one filtered page of the catalog.
func (s *Service) FindAllPokemons(ctx context.Context, in *catalogv1.ListPokemonsRequest) (*catalogv1.ListPokemonsResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "list pokemons request is required")
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	if in.Limit < 0 {
		return nil, status.Error(codes.InvalidArgument, "limit must not be negative")
	}
	if in.Offset < 0 {
		return nil, status.Error(codes.InvalidArgument, "offset must not be negative")
	}

	listFilter, err := filter.Apply(in.Filter, domain.ListFilter{
		Name:       in.Name,
		Type:       in.Type,
		Generation: in.Generation,
		Limit:      pagination.ClampLimit(in.Limit, listLimits),
		Offset:     pagination.ClampOffset(in.Offset),
	})
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	page, err := s.source.FindAllPokemons(ctx, domain.ClampListFilter(listFilter))
	if err != nil {
		return nil, toStatus(ctx, err, "list pokemons")
	}
	resp := &catalogv1.ListPokemonsResponse{
		Count:       int32(page.Count),
		CurrentPage: int32(page.CurrentPage),
		IsLast:      page.IsLast,
		Pokemons:    make([]*catalogv1.Pokemon, 0, len(page.Data)),
	}
	for _, item := range page.Data {
		p := pokemonToProto(item.Pokemon)
		p.SearchMatch = string(item.SearchMatch)
		resp.Pokemons = append(resp.Pokemons, p)
	}
	return resp, nil
}

// FindPokemonById returns one creature.
func (s *Service) FindPokemonById(ctx context.Context, in *catalogv1.GetPokemonRequest) (*catalogv1.GetPokemonResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get pokemon request is required")
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	if in.Id <= 0 {
		return nil, status.Error(codes.InvalidArgument, "pokemon id must be greater than zero")
	}

	p, err := s.source.FindPokemonByID(ctx, int(in.Id))
	if err != nil {
		return nil, toStatus(ctx, err, "get pokemon")
	}
	return &catalogv1.GetPokemonResponse{Pokemon: pokemonToProto(p)}, nil
}

// FindPokemonEvolutions returns every creature sharing the requested lines.
func (s *Service) FindPokemonEvolutions(ctx context.Context, in *catalogv1.FindEvolutionsRequest) (*catalogv1.FindEvolutionsResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "find evolutions request is required")
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(in.EvolutionLines))
	for _, line := range in.EvolutionLines {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return &catalogv1.FindEvolutionsResponse{Pokemons: []*catalogv1.Pokemon{}}, nil
	}

	pokemons, err := s.source.FindEvolutions(ctx, lines)
	if err != nil {
		return nil, toStatus(ctx, err, "find evolutions")
	}
	resp := &catalogv1.FindEvolutionsResponse{Pokemons: make([]*catalogv1.Pokemon, 0, len(pokemons))}
	for _, p := range pokemons {
		resp.Pokemons = append(resp.Pokemons, pokemonToProto(p))
	}
	return resp, nil
}

// FindGenerations lists every generation.
func (s *Service) FindGenerations(ctx context.Context, in *catalogv1.ListGenerationsRequest) (*catalogv1.ListGenerationsResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	generations, err := s.source.FindGenerations(ctx)
	if err != nil {
		return nil, toStatus(ctx, err, "list generations")
	}
	resp := &catalogv1.ListGenerationsResponse{Generations: make([]*catalogv1.Generation, 0, len(generations))}
	for _, g := range generations {
		resp.Generations = append(resp.Generations, generationToProto(g))
	}
	return resp, nil
}

// FindPokemonTypes lists every type.
func (s *Service) FindPokemonTypes(ctx context.Context, in *catalogv1.ListPokemonTypesRequest) (*catalogv1.ListPokemonTypesResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	types, err := s.source.FindPokemonTypes(ctx)
	if err != nil {
		return nil, toStatus(ctx, err, "list pokemon types")
	}
	resp := &catalogv1.ListPokemonTypesResponse{PokemonTypes: make([]*catalogv1.PokemonType, 0, len(types))}
	for _, t := range types {
		resp.PokemonTypes = append(resp.PokemonTypes, pokemonTypeToProto(t))
	}
	return resp, nil
}

// toStatus maps data source errors onto gRPC codes.
func toStatus(ctx context.Context, err error, op string) error {
	switch {
	case errors.Is(err, datasource.ErrNotFound):
		return status.Error(codes.NotFound, "pokemon not found")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, op+": canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, op+": deadline exceeded")
	case errors.Is(err, filter.ErrInvalidFilter):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	zerolog.Ctx(ctx).Error().Err(err).Str("op", op).Msg("catalog data source failed")
	return status.Errorf(codes.Unavailable, "%s: %v", op, err)
}
