package pokeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// fakeAPI serves canned PokeAPI resources keyed by request path.
type fakeAPI struct {
	t      *testing.T
	server *httptest.Server

	mu     sync.Mutex
	routes map[string]any
	hits   map[string]int
	fail   map[string]int
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{t: t, hits: map[string]int{}, fail: map[string]int{}}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	f.routes = f.fixtures()
	return f
}

func (f *fakeAPI) url(path string) string {
	return f.server.URL + "/api/v2/" + strings.TrimLeft(path, "/")
}

func (f *fakeAPI) hitCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeAPI) failWith(path string, status int) {
	f.mu.Lock()
	f.fail[path] = status
	f.mu.Unlock()
}

func (f *fakeAPI) set(path string, value any) {
	f.mu.Lock()
	f.routes[path] = value
	f.mu.Unlock()
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/api/v2/")
	f.mu.Lock()
	f.hits[key]++
	status := f.fail[key]
	body, ok := f.routes[key]
	f.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		f.t.Errorf("encode %s: %v", key, err)
	}
}

func strptr(s string) *string { return &s }

func english(name string) []LocalizedName {
	return []LocalizedName{
		{Name: name + " (ja)", Language: NamedResource{Name: "ja"}},
		{Name: name, Language: NamedResource{Name: "en"}},
	}
}

func (f *fakeAPI) list(kind string, names ...string) ResourceList {
	out := ResourceList{Count: len(names)}
	for _, name := range names {
		out.Results = append(out.Results, NamedResource{Name: name, URL: f.url(kind + "/" + name)})
	}
	return out
}

func (f *fakeAPI) pokemon(id int, name, species string, types ...string) Pokemon {
	p := Pokemon{
		ID:      id,
		Name:    name,
		Height:  7,
		Weight:  69,
		Species: NamedResource{Name: species, URL: f.url("pokemon-species/" + species)},
		Stats: []PokemonStat{
			{BaseStat: 45, Stat: NamedResource{Name: "hp"}},
			{BaseStat: 49, Stat: NamedResource{Name: "attack"}},
			{BaseStat: 49, Stat: NamedResource{Name: "defense"}},
			{BaseStat: 65, Stat: NamedResource{Name: "special-attack"}},
			{BaseStat: 65, Stat: NamedResource{Name: "special-defense"}},
			{BaseStat: 45, Stat: NamedResource{Name: "speed"}},
		},
	}
	for i := len(types) - 1; i >= 0; i-- {
		p.Types = append(p.Types, PokemonTypeSlot{Slot: i + 1, Type: NamedResource{Name: types[i], URL: f.url("type/" + types[i])}})
	}
	p.Sprites.FrontDefault = strptr("https://img.example/" + name + ".png")
	p.Sprites.Other.OfficialArtwork.FrontDefault = strptr("https://img.example/art/" + name + ".png")
	return p
}

func (f *fakeAPI) species(name, chain string) Species {
	s := Species{Name: name, Generation: NamedResource{Name: "generation-i", URL: f.url("generation/generation-i")}}
	s.EvolutionChain.URL = f.url("evolution-chain/" + chain)
	s.FlavorTextEntries = []FlavorText{
		{FlavorText: "説明", Language: NamedResource{Name: "ja"}},
		{FlavorText: "A strange seed was\nplanted on its\fback at birth.", Language: NamedResource{Name: "en"}},
		{FlavorText: "Second english entry.", Language: NamedResource{Name: "en"}},
	}
	return s
}

func link(name string, next ...ChainLink) ChainLink {
	return ChainLink{Species: NamedResource{Name: name}, EvolvesTo: next}
}

func (f *fakeAPI) fixtures() map[string]any {
	routes := map[string]any{
		"type":                      f.list("type", "normal", "grass", "poison", "water", "fire"),
		"type/normal":               Type{ID: 1, Name: "normal", Names: english("Normal")},
		"type/poison":               Type{ID: 4, Name: "poison", Names: english("Poison")},
		"type/fire":                 Type{ID: 10, Name: "fire", Names: english("Fire")},
		"type/water":                Type{ID: 11, Name: "water", Names: english("Water")},
		"type/grass":                Type{ID: 12, Name: "grass", Names: english("Grass")},
		"generation":                f.list("generation", "generation-i"),
		"generation/generation-i":   Generation{ID: 1, Name: "generation-i", Names: english("Generation I")},
		"pokemon":                   f.list("pokemon", "ivysaur", "bulbasaur", "venusaur-mega", "eevee", "vaporeon", "flareon"),
		"pokemon/bulbasaur":         f.pokemon(1, "bulbasaur", "bulbasaur", "grass", "poison"),
		"pokemon/ivysaur":           f.pokemon(2, "ivysaur", "ivysaur", "grass", "poison"),
		"pokemon/venusaur-mega":     f.pokemon(10033, "venusaur-mega", "venusaur", "grass", "poison"),
		"pokemon/eevee":             f.pokemon(133, "eevee", "eevee", "normal"),
		"pokemon/vaporeon":          f.pokemon(134, "vaporeon", "vaporeon", "water"),
		"pokemon/flareon":           f.pokemon(136, "flareon", "flareon", "fire"),
		"pokemon-species/bulbasaur": f.species("bulbasaur", "1"),
		"pokemon-species/ivysaur":   f.species("ivysaur", "1"),
		"pokemon-species/venusaur":  f.species("venusaur", "1"),
		"pokemon-species/eevee":     f.species("eevee", "67"),
		"pokemon-species/vaporeon":  f.species("vaporeon", "67"),
		"pokemon-species/flareon":   f.species("flareon", "67"),
		"evolution-chain/1":         EvolutionChain{ID: 1, Chain: link("bulbasaur", link("ivysaur", link("venusaur")))},
		"evolution-chain/67":        EvolutionChain{ID: 67, Chain: link("eevee", link("vaporeon"), link("jolteon"), link("flareon"))},
	}

	mega := routes["pokemon/venusaur-mega"].(Pokemon)
	mega.Sprites.Other.OfficialArtwork.FrontDefault = nil
	routes["pokemon/venusaur-mega"] = mega
	return routes
}
