// Package web serves the browser pages and the JSON query API over the
// catalog service.
package web
