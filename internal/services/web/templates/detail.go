package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/domain"
)

// DetailView is everything the detail page renders.
type DetailView struct {
	Pokemon    domain.Pokemon
	Evolutions []*domain.Evolution
}

// DetailPage renders one creature with its evolution chain and stats.
func DetailPage(view DetailView) templ.Component {
	p := view.Pokemon
	return Layout(p.Name, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<a class="back-link" href="/">Back to list</a>`)

		h.raw(`<article class="pokemon-detail"><div class="detail-hero"><img class="detail-image"`)
		h.attr("src", p.ImageURL)
		h.attr("alt", p.Name+" image")
		h.raw(`><div><div class="dex-number">`)
		h.text(PaddedID(p.ID))
		h.raw(`</div><h1>`)
		h.text(p.Name)
		h.raw(`</h1><div class="type-tags">`)
		for _, t := range p.Types {
			h.component(TypeTag(t.Handle, t.Name))
		}
		h.raw(`</div><div class="generation">`)
		h.text(p.Generation.Name)
		h.raw(`</div><dl class="measures"><div><dt>Weight</dt><dd>`)
		h.text(FormatWeight(p.Weight))
		h.raw(`</dd></div><div><dt>Height</dt><dd>`)
		h.text(FormatHeight(p.Height))
		h.raw(`</dd></div></dl></div></div>`)

		h.raw(`<section class="about"><h2>About</h2><p>`)
		h.text(p.Description)
		h.raw(`</p></section></article>`)

		h.raw(`<div class="detail-panels">`)
		h.component(EvolutionChain(view.Evolutions, p.ID))
		h.component(StatBars(p.Stats))
		h.raw(`</div>`)
		return h.err
	}))
}

// EvolutionChain renders the evolution tree with currentID highlighted.
func EvolutionChain(roots []*domain.Evolution, currentID int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<section class="panel evolution-chain"><h2>Evolution Chain</h2><div class="evolution-roots">`)
		for _, root := range roots {
			evolutionNode(h, root, currentID, true)
		}
		h.raw(`</div></section>`)
		return h.err
	})
}

func evolutionNode(h *htmlWriter, node *domain.Evolution, currentID int, isRoot bool) {
	if node == nil {
		return
	}
	h.raw(`<div class="evolution">`)
	if !isRoot {
		h.raw(`<span class="evolution-arrow" aria-hidden="true">&rarr;</span>`)
	}
	class := "evolution-entry"
	if node.ID == currentID {
		class += " current"
	}
	h.raw(`<a`)
	h.attr("class", class)
	h.href(PokemonURL(node.ID))
	h.raw(`><img`)
	h.attr("src", node.ImageURL)
	h.attr("alt", node.Name)
	h.raw(`><span class="dex-number">`)
	h.text(PaddedID(node.ID))
	h.raw(`</span><span class="evolution-name">`)
	h.text(node.Name)
	h.raw(`</span></a>`)
	if len(node.NextEvolutions) > 0 {
		class := "evolution-next"
		if len(node.NextEvolutions) > 1 {
			class += " branching"
		}
		h.raw(`<div`)
		h.attr("class", class)
		h.raw(`>`)
		for _, next := range node.NextEvolutions {
			evolutionNode(h, next, currentID, false)
		}
		h.raw(`</div>`)
	}
	h.raw(`</div>`)
}

// StatWidth is the bar width percentage of a base stat.
func StatWidth(value int) string {
	value = max(0, min(value, domain.MaxBaseStat))
	return strconv.FormatFloat(float64(value)*100/domain.MaxBaseStat, 'f', 1, 64) + "%"
}

// StatBars renders the base stats with their total.
func StatBars(stats domain.Stats) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<section class="panel base-stats"><h2>Base Stats</h2>`)
		for _, entry := range stats.Entries() {
			h.raw(`<div class="stat"><div class="stat-label"><span>`)
			h.text(entry.Label)
			h.raw(`</span><span>`, strconv.Itoa(entry.Value), `</span></div><div class="stat-track"><div`)
			h.attr("class", "stat-bar stat-"+entry.Key)
			h.attr("style", "width: "+StatWidth(entry.Value))
			h.raw(`></div></div></div>`)
		}
		h.raw(`<div class="stat-total"><span>Total</span><span>`, strconv.Itoa(stats.Total()), `</span></div></section>`)
		return h.err
	})
}
