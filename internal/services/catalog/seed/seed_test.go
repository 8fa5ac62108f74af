package seed

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ajmonfue/poke-explorer/internal/services/catalog/datasource/sqlite"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/domain"
	"github.com/google/go-cmp/cmp"
)

func TestEmbeddedDatasetResolves(t *testing.T) {
	ds, err := Embedded()
	if err != nil {
		t.Fatalf("embedded: %v", err)
	}
	if len(ds.Types) != 18 || len(ds.Generations) != 9 {
		t.Fatalf("types/generations = %d/%d, want 18/9", len(ds.Types), len(ds.Generations))
	}
	pokemons, err := ds.Pokemons()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(pokemons) != 21 {
		t.Fatalf("pokemons = %d, want 21", len(pokemons))
	}
	seen := map[int]bool{}
	for _, p := range pokemons {
		if seen[p.ID] {
			t.Fatalf("duplicate dex %d", p.ID)
		}
		seen[p.ID] = true
		if p.EvolutionStage < 1 || len(p.EvolutionLines) == 0 || len(p.Types) == 0 {
			t.Fatalf("incomplete pokemon %+v", p)
		}
	}
}

func TestPokemonsBuildsArtworkURL(t *testing.T) {
	ds := Dataset{
		Types:       []NamedRecord{{ID: 13, Handle: "electric", Name: "Electric"}},
		Generations: []NamedRecord{{ID: 1, Handle: "generation-i", Name: "Generation I"}},
		Records: []PokemonRecord{{
			Dex: 25, Name: " Pikachu ", Generation: "generation-i", Types: []string{"electric"},
			Lines: []string{"pichu"}, Stage: 2, Stats: StatsRecord{HP: 35, Speed: 90},
		}},
	}
	got, err := ds.Pokemons()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := []domain.Pokemon{{
		ID:             25,
		Name:           "Pikachu",
		ImageURL:       "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/25.png",
		EvolutionLines: []string{"pichu"},
		EvolutionStage: 2,
		Stats:          domain.Stats{HP: 35, Speed: 90},
		Generation:     domain.Generation{ID: 1, Handle: "generation-i", Name: "Generation I"},
		Types:          []domain.PokemonType{{ID: 13, Handle: "electric", Name: "Electric"}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("pokemons mismatch (-want +got):\n%s", diff)
	}
}

func TestPokemonsRejectsUnknownHandles(t *testing.T) {
	base := Dataset{
		Types:       []NamedRecord{{ID: 1, Handle: "normal", Name: "Normal"}},
		Generations: []NamedRecord{{ID: 1, Handle: "generation-i", Name: "Generation I"}},
	}
	tests := []PokemonRecord{
		{Dex: 1, Name: "A", Generation: "generation-x", Types: []string{"normal"}},
		{Dex: 1, Name: "B", Generation: "generation-i", Types: []string{"cosmic"}},
		{Dex: 0, Name: "C", Generation: "generation-i"},
	}
	for _, rec := range tests {
		ds := base
		ds.Records = []PokemonRecord{rec}
		if _, err := ds.Pokemons(); err == nil {
			t.Fatalf("expected error for %+v", rec)
		}
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	if _, err := Decode(strings.NewReader("types: []\ncolour: red\n")); err == nil {
		t.Fatal("expected unknown field error")
	}
}

type failingWriter struct {
	Writer
	err error
}

func (f failingWriter) UpsertPokemonType(context.Context, domain.PokemonType) error { return f.err }

func TestApplyStopsOnWriteError(t *testing.T) {
	boom := errors.New("boom")
	ds := Dataset{Types: []NamedRecord{{ID: 1, Handle: "normal", Name: "Normal"}}}
	if _, err := Apply(context.Background(), failingWriter{err: boom}, ds); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if _, err := Apply(context.Background(), nil, ds); err == nil {
		t.Fatal("expected nil writer error")
	}
}

func TestApplyEmbeddedIntoSQLite(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	ds, err := Embedded()
	if err != nil {
		t.Fatalf("embedded: %v", err)
	}
	summary, err := Apply(ctx, store, ds)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if summary != (Summary{Types: 18, Generations: 9, Pokemons: 21}) {
		t.Fatalf("summary = %+v", summary)
	}
	if _, err := Apply(ctx, store, ds); err != nil {
		t.Fatalf("re-apply: %v", err)
	}

	page, err := store.FindAllPokemons(ctx, domain.ListFilter{Name: "umbreon"})
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if page.Count != 9 {
		t.Fatalf("eevee family count = %d, want 9", page.Count)
	}

	evolutions, err := store.FindEvolutions(ctx, []string{"pichu"})
	if err != nil {
		t.Fatalf("find evolutions: %v", err)
	}
	roots := domain.BuildEvolutionTree(evolutions)
	if len(roots) != 1 || roots[0].Name != "Pichu" || roots[0].NextEvolutions[0].Name != "Pikachu" {
		t.Fatalf("pichu tree = %+v", roots)
	}
}
