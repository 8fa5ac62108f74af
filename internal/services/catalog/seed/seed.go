// Package seed loads the bundled catalog dataset into a relational store.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/ajmonfue/poke-explorer/internal/services/catalog/domain"
	"gopkg.in/yaml.v3"
)

// ArtworkURLPattern is the official artwork location for a dex number.
const ArtworkURLPattern = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/%d.png"

//go:embed data/catalog.yaml
var embeddedDataset []byte

// NamedRecord is a type or generation entry.
type NamedRecord struct {
	ID     int    `yaml:"id"`
	Handle string `yaml:"handle"`
	Name   string `yaml:"name"`
}

// StatsRecord holds base stats.
type StatsRecord struct {
	HP             int `yaml:"hp"`
	Attack         int `yaml:"attack"`
	Defense        int `yaml:"defense"`
	SpecialAttack  int `yaml:"special_attack"`
	SpecialDefense int `yaml:"special_defense"`
	Speed          int `yaml:"speed"`
}

// PokemonRecord is one creature entry. Generation and Types are handles.
type PokemonRecord struct {
	Dex         int         `yaml:"dex"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Generation  string      `yaml:"generation"`
	Types       []string    `yaml:"types"`
	Lines       []string    `yaml:"lines"`
	Stage       int         `yaml:"stage"`
	Height      int         `yaml:"height"`
	Weight      int         `yaml:"weight"`
	Stats       StatsRecord `yaml:"stats"`
}

// Dataset is a complete seed file.
type Dataset struct {
	Types       []NamedRecord   `yaml:"types"`
	Generations []NamedRecord   `yaml:"generations"`
	Records     []PokemonRecord `yaml:"pokemons"`
}

// Writer is the store surface the seeder needs.
type Writer interface {
	UpsertGeneration(ctx context.Context, g domain.Generation) error
	UpsertPokemonType(ctx context.Context, t domain.PokemonType) error
	UpsertPokemon(ctx context.Context, p domain.Pokemon) error
}

// Summary counts written records.
type Summary struct {
	Types       int
	Generations int
	Pokemons    int
}

// Embedded returns the bundled dataset.
func Embedded() (Dataset, error) {
	return Decode(bytes.NewReader(embeddedDataset))
}

// Decode reads a YAML dataset.
func Decode(r io.Reader) (Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		return Dataset{}, fmt.Errorf("decode seed dataset: %w", err)
	}
	return ds, nil
}

// Pokemons resolves every creature record against the dataset's types and
// generations. Unknown handles are errors.
func (ds Dataset) Pokemons() ([]domain.Pokemon, error) {
	types := make(map[string]domain.PokemonType, len(ds.Types))
	for _, t := range ds.Types {
		types[t.Handle] = domain.PokemonType{ID: t.ID, Handle: t.Handle, Name: t.Name}
	}
	generations := make(map[string]domain.Generation, len(ds.Generations))
	for _, g := range ds.Generations {
		generations[g.Handle] = domain.Generation{ID: g.ID, Handle: g.Handle, Name: g.Name}
	}

	out := make([]domain.Pokemon, 0, len(ds.Records))
	for _, rec := range ds.Records {
		if rec.Dex <= 0 {
			return nil, fmt.Errorf("pokemon %q: dex number is required", rec.Name)
		}
		gen, ok := generations[rec.Generation]
		if !ok {
			return nil, fmt.Errorf("pokemon %q: unknown generation %q", rec.Name, rec.Generation)
		}
		p := domain.Pokemon{
			ID:             rec.Dex,
			Name:           strings.TrimSpace(rec.Name),
			Description:    strings.TrimSpace(rec.Description),
			ImageURL:       fmt.Sprintf(ArtworkURLPattern, rec.Dex),
			EvolutionLines: append([]string{}, rec.Lines...),
			EvolutionStage: rec.Stage,
			Height:         rec.Height,
			Weight:         rec.Weight,
			Stats: domain.Stats{
				HP:             rec.Stats.HP,
				Attack:         rec.Stats.Attack,
				Defense:        rec.Stats.Defense,
				SpecialAttack:  rec.Stats.SpecialAttack,
				SpecialDefense: rec.Stats.SpecialDefense,
				Speed:          rec.Stats.Speed,
			},
			Generation: gen,
			Types:      make([]domain.PokemonType, 0, len(rec.Types)),
		}
		for _, handle := range rec.Types {
			t, ok := types[handle]
			if !ok {
				return nil, fmt.Errorf("pokemon %q: unknown type %q", rec.Name, handle)
			}
			p.Types = append(p.Types, t)
		}
		out = append(out, p)
	}
	return out, nil
}

// Apply writes the dataset through w. Types and generations go first so
// creature relations resolve.
func Apply(ctx context.Context, w Writer, ds Dataset) (Summary, error) {
	if w == nil {
		return Summary{}, fmt.Errorf("seed writer is required")
	}
	pokemons, err := ds.Pokemons()
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	for _, t := range ds.Types {
		if err := w.UpsertPokemonType(ctx, domain.PokemonType{ID: t.ID, Handle: t.Handle, Name: t.Name}); err != nil {
			return summary, fmt.Errorf("seed type %s: %w", t.Handle, err)
		}
		summary.Types++
	}
	for _, g := range ds.Generations {
		if err := w.UpsertGeneration(ctx, domain.Generation{ID: g.ID, Handle: g.Handle, Name: g.Name}); err != nil {
			return summary, fmt.Errorf("seed generation %s: %w", g.Handle, err)
		}
		summary.Generations++
	}
	for _, p := range pokemons {
		if err := w.UpsertPokemon(ctx, p); err != nil {
			return summary, fmt.Errorf("seed pokemon %s: %w", p.Name, err)
		}
		summary.Pokemons++
	}
	return summary, nil
}
