package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// isbnParam is the route parameter naming a book.
const isbnParam = "isbn"

// getPathISBN extracts the isbn from the URL path. chi routes on the raw
// path, so an escaped segment such as a%2Fb is decoded here. An isbn that
// matches no book is a not-found condition, never a bad request.
func getPathISBN(r *http.Request) string {
	raw := chi.URLParam(r, isbnParam)
	if isbn, err := url.PathUnescape(raw); err == nil {
		return isbn
	}
	return raw
}
