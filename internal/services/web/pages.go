package web

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/ajmonfue/poke-explorer/internal/platform/grpc/pagination"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/domain"
	"github.com/ajmonfue/poke-explorer/internal/services/web/catalogclient"
	apperrors "github.com/ajmonfue/poke-explorer/internal/services/web/platform/errors"
	"github.com/ajmonfue/poke-explorer/internal/services/web/platform/httpx"
	"github.com/ajmonfue/poke-explorer/internal/services/web/templates"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ItemsPerPage is the list page size.
const ItemsPerPage = 12

// maxPage is the last page whose offset still fits the catalog wire type.
const maxPage = math.MaxInt32/ItemsPerPage + 1

type handlers struct {
	catalog catalogclient.Client
}

func (h *handlers) listPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	listQuery := templates.ListQuery{
		Search:     strings.TrimSpace(query.Get("q")),
		Type:       strings.TrimSpace(query.Get("type")),
		Generation: strings.TrimSpace(query.Get("generation")),
	}
	page := parsePage(query.Get("page"))

	view := templates.ListView{Query: listQuery}
	ctx := httpx.RequestContext(r)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		result, err := h.catalog.FindAllPokemons(groupCtx, domain.ListFilter{
			Name:       listQuery.Search,
			Type:       listQuery.Type,
			Generation: listQuery.Generation,
			Limit:      ItemsPerPage,
			Offset:     pagination.OffsetForPage(page, ItemsPerPage),
		})
		view.Page = result
		return err
	})
	group.Go(func() error {
		types, err := h.catalog.FindPokemonTypes(groupCtx)
		view.Types = types
		return err
	})
	group.Go(func() error {
		generations, err := h.catalog.FindGenerations(groupCtx)
		view.Generations = generations
		return err
	})
	if err := group.Wait(); err != nil {
		h.renderError(w, r, err)
		return
	}

	view.Pagination = templates.BuildPagination(page, pagination.TotalPages(view.Page.Count, ItemsPerPage))
	renderPage(w, r, http.StatusOK, templates.ListPage(view))
}

func (h *handlers) detailPage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		h.notFound(w, r)
		return
	}
	ctx := httpx.RequestContext(r)
	pokemon, err := h.catalog.FindPokemonByID(ctx, id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	view := templates.DetailView{Pokemon: pokemon}
	if len(pokemon.EvolutionLines) > 0 {
		evolutions, err := h.catalog.FindEvolutions(ctx, pokemon.EvolutionLines)
		if err != nil {
			h.renderError(w, r, err)
			return
		}
		view.Evolutions = domain.BuildEvolutionTree(evolutions)
	}
	renderPage(w, r, http.StatusOK, templates.DetailPage(view))
}

func (h *handlers) notFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		_ = httpx.WriteJSONError(w, http.StatusNotFound, "not found")
		return
	}
	renderPage(w, r, http.StatusNotFound, templates.NotFoundPage())
}

func (h *handlers) renderError(w http.ResponseWriter, r *http.Request, err error) {
	if apperrors.IsNotFound(err) {
		h.notFound(w, r)
		return
	}
	status := apperrors.HTTPStatus(err)
	zerolog.Ctx(r.Context()).Error().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("catalog request failed")
	renderPage(w, r, status, templates.StatusPage(http.StatusText(status), apperrors.PublicMessage(err)))
}

func renderPage(w http.ResponseWriter, r *http.Request, status int, page templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Render(r.Context(), w); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("render page")
	}
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return min(page, maxPage)
}

// parseID accepts positive ids that fit in 32 bits; anything larger cannot
// name a catalog entry.
func parseID(raw string) (int, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int(id), true
}
