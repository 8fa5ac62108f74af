// Package static embeds the web stylesheet.
package static

import "embed"

// FS holds the files served under /static/.
//
//go:embed app.css
var FS embed.FS
