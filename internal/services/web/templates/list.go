package templates

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/domain"
)

// ListQuery is the search state carried in list page URLs.
type ListQuery struct {
	Search     string
	Type       string
	Generation string
}

// URL builds the list page path for page, omitting empty fields.
func (q ListQuery) URL(page int) string {
	values := url.Values{}
	if q.Search != "" {
		values.Set("q", q.Search)
	}
	if q.Type != "" {
		values.Set("type", q.Type)
	}
	if q.Generation != "" {
		values.Set("generation", q.Generation)
	}
	if page > 1 {
		values.Set("page", strconv.Itoa(page))
	}
	if len(values) == 0 {
		return "/"
	}
	return "/?" + values.Encode()
}

// ListView is everything the list page renders.
type ListView struct {
	Query       ListQuery
	Types       []domain.PokemonType
	Generations []domain.Generation
	Page        domain.Page[domain.ListedPokemon]
	Pagination  Pagination
}

// ListPage renders the searchable catalog list.
func ListPage(view ListView) templ.Component {
	return Layout("", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.component(searchForm(view))

		h.raw(`<p class="result-count">`)
		h.text(resultCount(view.Page.Count))
		h.raw(`</p>`)

		if len(view.Page.Data) == 0 {
			h.raw(`<p class="empty">No pokemon match these filters.</p>`)
		} else {
			h.raw(`<ul class="pokemon-grid">`)
			for _, item := range view.Page.Data {
				h.raw(`<li>`)
				h.component(PokemonCard(item))
				h.raw(`</li>`)
			}
			h.raw(`</ul>`)
		}
		h.component(Pager(view.Pagination, view.Query.URL))
		return h.err
	}))
}

func resultCount(n int) string {
	if n == 1 {
		return "1 pokemon"
	}
	return strconv.Itoa(n) + " pokemon"
}

func searchForm(view ListView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<form class="filters" method="get" action="/">`)
		h.raw(`<input type="search" name="q" placeholder="Search by name" aria-label="Search by name"`)
		h.attr("value", view.Query.Search)
		h.raw(`>`)

		h.raw(`<select name="type" aria-label="Type"><option value="">All types</option>`)
		for _, t := range view.Types {
			option(h, t.Handle, t.Name, t.Handle == view.Query.Type)
		}
		h.raw(`</select>`)

		h.raw(`<select name="generation" aria-label="Generation"><option value="">All generations</option>`)
		for _, g := range view.Generations {
			option(h, g.Handle, g.Name, g.Handle == view.Query.Generation)
		}
		h.raw(`</select>`)

		h.raw(`<button type="submit">Search</button></form>`)
		return h.err
	})
}

func option(h *htmlWriter, value, label string, selected bool) {
	h.raw(`<option`)
	h.attr("value", value)
	if selected {
		h.raw(` selected`)
	}
	h.raw(`>`)
	h.text(label)
	h.raw(`</option>`)
}

// PokemonCard renders one list entry linking to its detail page.
func PokemonCard(item domain.ListedPokemon) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<a class="pokemon-card"`)
		h.href(PokemonURL(item.ID))
		h.raw(`><div class="card-image"><img loading="lazy"`)
		h.attr("src", item.ImageURL)
		h.attr("alt", item.Name)
		h.raw(`></div><div class="card-body"><div class="dex-number">`)
		h.text(PaddedID(item.ID))
		h.raw(`</div><h2>`)
		h.text(item.Name)
		h.raw(`</h2><div class="type-tags">`)
		for _, t := range item.Types {
			h.component(TypeTag(t.Handle, t.Name))
		}
		h.raw(`</div><div class="generation">`)
		h.text(item.Generation.Name)
		h.raw(`</div>`)
		if item.SearchMatch == domain.SearchMatchEvolution {
			h.raw(`<div class="match-note">Related by evolution</div>`)
		}
		h.raw(`</div></a>`)
		return h.err
	})
}
