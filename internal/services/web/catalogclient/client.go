// Package catalogclient adapts the catalog gRPC API to the domain types the
// web pages render.
package catalogclient

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	catalogv1 "github.com/ajmonfue/poke-explorer/api/catalog/v1"
	platformgrpc "github.com/ajmonfue/poke-explorer/internal/platform/grpc"
	"github.com/ajmonfue/poke-explorer/internal/platform/timeouts"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/domain"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Client is the catalog surface consumed by web handlers.
type Client interface {
	FindAllPokemons(ctx context.Context, filter domain.ListFilter) (domain.Page[domain.ListedPokemon], error)
	FindPokemonByID(ctx context.Context, id int) (domain.Pokemon, error)
	FindEvolutions(ctx context.Context, lines []string) ([]domain.Pokemon, error)
	FindGenerations(ctx context.Context) ([]domain.Generation, error)
	FindPokemonTypes(ctx context.Context) ([]domain.PokemonType, error)
}

// GRPC implements Client over a catalog service connection.
type GRPC struct {
	client  catalogv1.CatalogServiceClient
	timeout time.Duration
	conn    *grpc.ClientConn
}

// New wraps an existing catalog service client.
func New(client catalogv1.CatalogServiceClient) *GRPC {
	return &GRPC{client: client, timeout: timeouts.GRPCRequest}
}

// Dial connects to the catalog service at addr and waits for it to report
// healthy.
func Dial(ctx context.Context, addr string, dialTimeout time.Duration) (*GRPC, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("catalog address is required")
	}
	if dialTimeout <= 0 {
		dialTimeout = timeouts.GRPCDial
	}
	conn, err := platformgrpc.DialWithHealth(ctx, platformgrpc.DialConfig{
		Addr:    addr,
		Timeout: dialTimeout,
		Health: platformgrpc.HealthCheck{
			Service: catalogv1.ServiceName,
			Logger:  zerolog.Ctx(ctx).With().Str("component", "catalogclient").Logger(),
		},
		Options: platformgrpc.DefaultClientDialOptions(),
	})
	if err != nil {
		return nil, fmt.Errorf("dial catalog %s: %w", addr, err)
	}
	c := New(catalogv1.NewCatalogServiceClient(conn))
	c.conn = conn
	return c, nil
}

// Close closes the underlying connection when Dial created it.
func (c *GRPC) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *GRPC) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// FindAllPokemons lists one page of the catalog.
func (c *GRPC) FindAllPokemons(ctx context.Context, filter domain.ListFilter) (domain.Page[domain.ListedPokemon], error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()
	resp, err := c.client.FindAllPokemons(ctx, &catalogv1.ListPokemonsRequest{
		Name:       filter.Name,
		Type:       filter.Type,
		Generation: filter.Generation,
		Limit:      clampInt32(filter.Limit),
		Offset:     clampInt32(filter.Offset),
	})
	if err != nil {
		return domain.Page[domain.ListedPokemon]{}, err
	}
	page := domain.Page[domain.ListedPokemon]{
		Count:       int(resp.Count),
		CurrentPage: int(resp.CurrentPage),
		IsLast:      resp.IsLast,
		Data:        make([]domain.ListedPokemon, 0, len(resp.Pokemons)),
	}
	for _, p := range resp.Pokemons {
		if p == nil {
			continue
		}
		page.Data = append(page.Data, domain.ListedPokemon{
			Pokemon:     pokemonFromProto(p),
			SearchMatch: domain.SearchMatch(p.SearchMatch),
		})
	}
	return page, nil
}

// FindPokemonByID fetches one creature. Ids outside the wire range are
// reported as not found without a round trip.
func (c *GRPC) FindPokemonByID(ctx context.Context, id int) (domain.Pokemon, error) {
	if id < math.MinInt32 || id > math.MaxInt32 {
		return domain.Pokemon{}, status.Errorf(codes.NotFound, "pokemon %d not found", id)
	}
	ctx, cancel := c.callContext(ctx)
	defer cancel()
	resp, err := c.client.FindPokemonById(ctx, &catalogv1.GetPokemonRequest{Id: int32(id)})
	if err != nil {
		return domain.Pokemon{}, err
	}
	if resp.Pokemon == nil {
		return domain.Pokemon{}, fmt.Errorf("catalog returned empty pokemon %d", id)
	}
	return pokemonFromProto(resp.Pokemon), nil
}

// clampInt32 saturates paging values that do not fit the wire type.
func clampInt32(v int) int32 {
	return int32(max(math.MinInt32, min(v, math.MaxInt32)))
}

// FindEvolutions lists every creature on the given lines.
func (c *GRPC) FindEvolutions(ctx context.Context, lines []string) ([]domain.Pokemon, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()
	resp, err := c.client.FindPokemonEvolutions(ctx, &catalogv1.FindEvolutionsRequest{EvolutionLines: lines})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Pokemon, 0, len(resp.Pokemons))
	for _, p := range resp.Pokemons {
		if p != nil {
			out = append(out, pokemonFromProto(p))
		}
	}
	return out, nil
}

// FindGenerations lists generations.
func (c *GRPC) FindGenerations(ctx context.Context) ([]domain.Generation, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()
	resp, err := c.client.FindGenerations(ctx, &catalogv1.ListGenerationsRequest{})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Generation, 0, len(resp.Generations))
	for _, g := range resp.Generations {
		if g != nil {
			out = append(out, generationFromProto(g))
		}
	}
	return out, nil
}

// FindPokemonTypes lists types.
func (c *GRPC) FindPokemonTypes(ctx context.Context) ([]domain.PokemonType, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()
	resp, err := c.client.FindPokemonTypes(ctx, &catalogv1.ListPokemonTypesRequest{})
	if err != nil {
		return nil, err
	}
	out := make([]domain.PokemonType, 0, len(resp.PokemonTypes))
	for _, t := range resp.PokemonTypes {
		if t != nil {
			out = append(out, pokemonTypeFromProto(t))
		}
	}
	return out, nil
}

func pokemonFromProto(p *catalogv1.Pokemon) domain.Pokemon {
	out := domain.Pokemon{
		ID:             int(p.Id),
		Name:           p.Name,
		Description:    p.Description,
		ImageURL:       p.ImageUrl,
		EvolutionLines: append([]string{}, p.EvolutionLines...),
		EvolutionStage: int(p.EvolutionStage),
		Height:         int(p.Height),
		Weight:         int(p.Weight),
		Types:          make([]domain.PokemonType, 0, len(p.Types)),
	}
	if p.Stats != nil {
		out.Stats = domain.Stats{
			HP:             int(p.Stats.Hp),
			Attack:         int(p.Stats.Attack),
			Defense:        int(p.Stats.Defense),
			SpecialAttack:  int(p.Stats.SpecialAttack),
			SpecialDefense: int(p.Stats.SpecialDefense),
			Speed:          int(p.Stats.Speed),
		}
	}
	if p.Generation != nil {
		out.Generation = generationFromProto(p.Generation)
	}
	for _, t := range p.Types {
		if t != nil {
			out.Types = append(out.Types, pokemonTypeFromProto(t))
		}
	}
	return out
}

func generationFromProto(g *catalogv1.Generation) domain.Generation {
	return domain.Generation{ID: int(g.Id), Handle: g.Handle, Name: g.Name}
}

func pokemonTypeFromProto(t *catalogv1.PokemonType) domain.PokemonType {
	return domain.PokemonType{ID: int(t.Id), Handle: t.Handle, Name: t.Name}
}
