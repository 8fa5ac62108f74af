// Package pokeapi provides the catalog data source backed by the public
// PokeAPI. The whole catalog is assembled once, cached without expiry and
// served from memory.
package pokeapi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/ajmonfue/poke-explorer/internal/services/catalog/cache"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/datasource"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/domain"
	"golang.org/x/sync/errgroup"
)

const (
	// CatalogKey is the cache key of the assembled catalog.
	CatalogKey = "pokemons"
	// DefaultLanguage selects localized names and descriptions.
	DefaultLanguage = "en"
	// DefaultPokemonLimit is the page size used to list every creature.
	DefaultPokemonLimit = 10000
	// DefaultConcurrency bounds parallel upstream fetches.
	DefaultConcurrency = 16
)

// Config configures the adapter.
type Config struct {
	BaseURL           string
	Language          string
	PokemonLimit      int
	Concurrency       int
	RequestsPerSecond float64
	Burst             int
	ResponseTTL       time.Duration
	HTTPClient        *http.Client
	Cache             *cache.Cache
}

// Snapshot is one assembled catalog.
type Snapshot struct {
	Pokemons    []domain.Pokemon
	Types       []domain.PokemonType
	Generations []domain.Generation
}

// Adapter serves catalog reads from PokeAPI data.
type Adapter struct {
	client      *Client
	cache       *cache.Cache
	language    string
	limit       int
	concurrency int
}

// New builds an adapter. The catalog is loaded on first use.
func New(cfg Config) *Adapter {
	shared := cfg.Cache
	if shared == nil {
		shared = cache.New()
	}
	language := strings.TrimSpace(cfg.Language)
	if language == "" {
		language = DefaultLanguage
	}
	limit := cfg.PokemonLimit
	if limit <= 0 {
		limit = DefaultPokemonLimit
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Adapter{
		client: NewClient(ClientOptions{
			BaseURL:           cfg.BaseURL,
			HTTPClient:        cfg.HTTPClient,
			Cache:             shared,
			TTL:               cfg.ResponseTTL,
			RequestsPerSecond: cfg.RequestsPerSecond,
			Burst:             cfg.Burst,
		}),
		cache:       shared,
		language:    language,
		limit:       limit,
		concurrency: concurrency,
	}
}

// FindAllPokemons returns one page of the filtered catalog.
func (a *Adapter) FindAllPokemons(ctx context.Context, filter domain.ListFilter) (domain.Page[domain.ListedPokemon], error) {
	snap, err := a.snapshot(ctx)
	if err != nil {
		return domain.Page[domain.ListedPokemon]{}, err
	}
	filter = domain.ClampListFilter(filter)
	return domain.NewPage(domain.ApplyListFilter(snap.Pokemons, filter), filter), nil
}

// FindPokemonByID returns one creature or datasource.ErrNotFound.
func (a *Adapter) FindPokemonByID(ctx context.Context, id int) (domain.Pokemon, error) {
	snap, err := a.snapshot(ctx)
	if err != nil {
		return domain.Pokemon{}, err
	}
	i := sort.Search(len(snap.Pokemons), func(i int) bool { return snap.Pokemons[i].ID >= id })
	if i < len(snap.Pokemons) && snap.Pokemons[i].ID == id {
		return snap.Pokemons[i], nil
	}
	return domain.Pokemon{}, datasource.ErrNotFound
}

// FindEvolutions returns the creatures sharing any of lines, by stage.
func (a *Adapter) FindEvolutions(ctx context.Context, lines []string) ([]domain.Pokemon, error) {
	if len(lines) == 0 {
		return []domain.Pokemon{}, nil
	}
	snap, err := a.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterEvolutions(snap.Pokemons, lines), nil
}

// FindGenerations returns every generation ordered by id.
func (a *Adapter) FindGenerations(ctx context.Context) ([]domain.Generation, error) {
	snap, err := a.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return append([]domain.Generation(nil), snap.Generations...), nil
}

// FindPokemonTypes returns every type ordered by id.
func (a *Adapter) FindPokemonTypes(ctx context.Context) ([]domain.PokemonType, error) {
	snap, err := a.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return append([]domain.PokemonType(nil), snap.Types...), nil
}

// Refresh reassembles the catalog and swaps it in. On failure the previous
// catalog stays in place.
func (a *Adapter) Refresh(ctx context.Context) error {
	snap, err := a.Load(ctx)
	if err != nil {
		return err
	}
	a.cache.Set(CatalogKey, snap)
	return nil
}

func (a *Adapter) snapshot(ctx context.Context) (Snapshot, error) {
	return cache.Get(ctx, a.cache, CatalogKey, cache.NoExpiry, a.Load)
}

// Load assembles a catalog from upstream resources.
func (a *Adapter) Load(ctx context.Context) (Snapshot, error) {
	types, err := fetchAll[Type](ctx, a, a.client.URL("type"))
	if err != nil {
		return Snapshot{}, fmt.Errorf("load types: %w", err)
	}
	generations, err := fetchAll[Generation](ctx, a, a.client.URL("generation"))
	if err != nil {
		return Snapshot{}, fmt.Errorf("load generations: %w", err)
	}

	typesByName := make(map[string]Type, len(types))
	snap := Snapshot{
		Types:       make([]domain.PokemonType, 0, len(types)),
		Generations: make([]domain.Generation, 0, len(generations)),
	}
	for _, t := range types {
		typesByName[t.Name] = t
		snap.Types = append(snap.Types, domain.PokemonType{ID: t.ID, Handle: t.Name, Name: localized(t.Names, a.language, t.Name)})
	}
	generationsByName := make(map[string]domain.Generation, len(generations))
	for _, g := range generations {
		gen := domain.Generation{ID: g.ID, Handle: g.Name, Name: localized(g.Names, a.language, g.Name)}
		generationsByName[g.Name] = gen
		snap.Generations = append(snap.Generations, gen)
	}
	sort.Slice(snap.Types, func(i, j int) bool { return snap.Types[i].ID < snap.Types[j].ID })
	sort.Slice(snap.Generations, func(i, j int) bool { return snap.Generations[i].ID < snap.Generations[j].ID })

	list, err := fetch[ResourceList](ctx, a.client, a.client.URL(fmt.Sprintf("pokemon?limit=%d&offset=0", a.limit)))
	if err != nil {
		return Snapshot{}, fmt.Errorf("load pokemon list: %w", err)
	}

	snap.Pokemons = make([]domain.Pokemon, len(list.Results))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, item := range list.Results {
		g.Go(func() error {
			p, err := a.loadPokemon(gctx, item.URL, typesByName, generationsByName)
			if err != nil {
				return fmt.Errorf("load pokemon %s: %w", item.Name, err)
			}
			snap.Pokemons[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	sort.SliceStable(snap.Pokemons, func(i, j int) bool { return snap.Pokemons[i].ID < snap.Pokemons[j].ID })
	return snap, nil
}

func (a *Adapter) loadPokemon(ctx context.Context, url string, types map[string]Type, generations map[string]domain.Generation) (domain.Pokemon, error) {
	apiPokemon, err := fetch[Pokemon](ctx, a.client, url)
	if err != nil {
		return domain.Pokemon{}, err
	}
	species, err := fetch[Species](ctx, a.client, apiPokemon.Species.URL)
	if err != nil {
		return domain.Pokemon{}, err
	}
	var chain EvolutionChain
	if species.EvolutionChain.URL != "" {
		chain, err = fetch[EvolutionChain](ctx, a.client, species.EvolutionChain.URL)
		if err != nil {
			return domain.Pokemon{}, err
		}
	}
	return a.toDomain(apiPokemon, species, chain, types, generations), nil
}

func (a *Adapter) toDomain(p Pokemon, species Species, chain EvolutionChain, types map[string]Type, generations map[string]domain.Generation) domain.Pokemon {
	speciesName := species.Name
	if speciesName == "" {
		speciesName = p.Species.Name
	}
	stage, lines := placeEvolution(chain.Chain, speciesName)

	out := domain.Pokemon{
		ID:             p.ID,
		Name:           p.Name,
		Description:    a.description(species),
		ImageURL:       imageURL(p.Sprites),
		EvolutionLines: lines,
		EvolutionStage: stage,
		Height:         p.Height,
		Weight:         p.Weight,
		Types:          make([]domain.PokemonType, 0, len(p.Types)),
	}
	for _, s := range p.Stats {
		out.Stats.Set(s.Stat.Name, s.BaseStat)
	}
	slots := append([]PokemonTypeSlot(nil), p.Types...)
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Slot < slots[j].Slot })
	for _, slot := range slots {
		t, ok := types[slot.Type.Name]
		if !ok {
			out.Types = append(out.Types, domain.PokemonType{Handle: slot.Type.Name, Name: slot.Type.Name})
			continue
		}
		out.Types = append(out.Types, domain.PokemonType{ID: t.ID, Handle: t.Name, Name: localized(t.Names, a.language, t.Name)})
	}
	if gen, ok := generations[species.Generation.Name]; ok {
		out.Generation = gen
	} else {
		out.Generation = domain.Generation{Handle: species.Generation.Name, Name: species.Generation.Name}
	}
	return out
}

func (a *Adapter) description(species Species) string {
	for _, entry := range species.FlavorTextEntries {
		if entry.Language.Name == a.language {
			return strings.Join(strings.Fields(entry.FlavorText), " ")
		}
	}
	return ""
}

func imageURL(sprites Sprites) string {
	if art := sprites.Other.OfficialArtwork.FrontDefault; art != nil && *art != "" {
		return *art
	}
	if sprites.FrontDefault != nil {
		return *sprites.FrontDefault
	}
	return ""
}

// fetchAll lists a collection and fetches every item in parallel.
func fetchAll[T any](ctx context.Context, a *Adapter, listURL string) ([]T, error) {
	list, err := fetch[ResourceList](ctx, a.client, listURL)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(list.Results))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, item := range list.Results {
		g.Go(func() error {
			v, err := fetch[T](gctx, a.client, item.URL)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ datasource.DataSource = (*Adapter)(nil)
