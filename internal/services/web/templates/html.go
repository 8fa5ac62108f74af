// Package templates renders the web pages as templ components.
//
// Components are written by hand in the shape templ generates for .templ
// files: each is a templ.ComponentFunc that streams escaped markup to the
// writer through htmlWriter, using templ.EscapeString for text and
// attributes and templ.URL for links.
package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// htmlWriter accumulates the first write error so component bodies read
// top to bottom.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTMLWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

// raw writes trusted markup.
func (h *htmlWriter) raw(parts ...string) {
	for _, part := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, part)
	}
}

// text writes escaped text.
func (h *htmlWriter) text(value string) {
	h.raw(templ.EscapeString(value))
}

// attr writes name="value" with the value escaped.
func (h *htmlWriter) attr(name, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// href writes a sanitized href attribute.
func (h *htmlWriter) href(url string) {
	h.attr("href", string(templ.URL(url)))
}

func (h *htmlWriter) component(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// PaddedID formats a dex number as #001.
func PaddedID(id int) string {
	return fmt.Sprintf("#%03d", id)
}

// FormatWeight converts hectograms to kilograms.
func FormatWeight(hectograms int) string {
	return strconv.FormatFloat(float64(hectograms)/10, 'f', 1, 64) + " kg"
}

// FormatHeight converts decimeters to meters.
func FormatHeight(decimeters int) string {
	return strconv.FormatFloat(float64(decimeters)/10, 'f', 1, 64) + " m"
}

// PokemonURL is the detail page path for a creature.
func PokemonURL(id int) string {
	return "/pokemon/" + strconv.Itoa(id)
}
