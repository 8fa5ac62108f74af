package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// AppName is shown in the header and page titles.
const AppName = "Poke Explorer"

// Layout wraps content in the document shell.
func Layout(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		fullTitle := AppName
		if title != "" {
			fullTitle = title + " | " + AppName
		}
		h.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(fullTitle)
		h.raw(`</title><link rel="stylesheet" href="/static/app.css"></head><body>`)
		h.raw(`<header class="site-header"><a class="brand" href="/">`)
		h.text(AppName)
		h.raw(`</a></header><main class="container">`)
		h.component(content)
		h.raw(`</main></body></html>`)
		return h.err
	})
}

// TypeTag renders a colored type label.
func TypeTag(handle, name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<span`)
		h.attr("class", "type-tag type-"+handle)
		h.raw(`>`)
		h.text(name)
		h.raw(`</span>`)
		return h.err
	})
}

// StatusPage renders a message page for 404 and server failures.
func StatusPage(title, message string) templ.Component {
	return Layout(title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<section class="status-page"><h1>`)
		h.text(title)
		h.raw(`</h1><p>`)
		h.text(message)
		h.raw(`</p><a class="back-link" href="/">Back to list</a></section>`)
		return h.err
	}))
}

// NotFoundPage renders the missing-resource page.
func NotFoundPage() templ.Component {
	return StatusPage("Not found", "We could not find the pokemon you were looking for.")
}
