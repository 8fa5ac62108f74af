package web

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/ajmonfue/poke-explorer/internal/services/catalog/domain"
	apperrors "github.com/ajmonfue/poke-explorer/internal/services/web/platform/errors"
	"github.com/ajmonfue/poke-explorer/internal/services/web/platform/httpx"
)

type evolutionsResponse struct {
	Pokemons []domain.Pokemon    `json:"pokemons"`
	Tree     []*domain.Evolution `json:"tree"`
}

type generationsResponse struct {
	Generations []domain.Generation `json:"generations"`
}

type pokemonTypesResponse struct {
	PokemonTypes []domain.PokemonType `json:"pokemon_types"`
}

func (h *handlers) apiListPokemons(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, err := optionalInt(query.Get("limit"), "limit")
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	offset, err := optionalInt(query.Get("offset"), "offset")
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	page, err := h.catalog.FindAllPokemons(httpx.RequestContext(r), domain.ListFilter{
		Name:       strings.TrimSpace(query.Get("name")),
		Type:       strings.TrimSpace(query.Get("type")),
		Generation: strings.TrimSpace(query.Get("generation")),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if page.Data == nil {
		page.Data = []domain.ListedPokemon{}
	}
	_ = httpx.WriteJSON(w, http.StatusOK, page)
}

func (h *handlers) apiPokemon(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		httpx.WriteError(w, apperrors.E(apperrors.KindInvalidInput, "id must be a positive integer"))
		return
	}
	pokemon, err := h.catalog.FindPokemonByID(httpx.RequestContext(r), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, pokemon)
}

func (h *handlers) apiEvolutions(w http.ResponseWriter, r *http.Request) {
	var lines []string
	for _, line := range r.URL.Query()["line"] {
		for _, part := range strings.Split(line, ",") {
			if part = strings.TrimSpace(part); part != "" {
				lines = append(lines, part)
			}
		}
	}
	resp := evolutionsResponse{Pokemons: []domain.Pokemon{}, Tree: []*domain.Evolution{}}
	if len(lines) > 0 {
		pokemons, err := h.catalog.FindEvolutions(httpx.RequestContext(r), lines)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		resp.Pokemons = pokemons
		resp.Tree = domain.BuildEvolutionTree(pokemons)
	}
	_ = httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *handlers) apiGenerations(w http.ResponseWriter, r *http.Request) {
	generations, err := h.catalog.FindGenerations(httpx.RequestContext(r))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, generationsResponse{Generations: generations})
}

func (h *handlers) apiPokemonTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.catalog.FindPokemonTypes(httpx.RequestContext(r))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, pokemonTypesResponse{PokemonTypes: types})
}

// optionalInt parses a non-negative paging value. Values past the 32-bit
// range saturate, so an oversized offset reads as an empty page.
func optionalInt(raw, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 32)
	if errors.Is(err, strconv.ErrRange) && value > 0 {
		return math.MaxInt32, nil
	}
	if err != nil || value < 0 {
		return 0, apperrors.E(apperrors.KindInvalidInput, name+" must be a non-negative integer")
	}
	return int(value), nil
}
